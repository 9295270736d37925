package services

import (
	"context"
	"time"

	"carwash/config"
	"carwash/internal/database"
	"carwash/internal/events"
	"carwash/internal/models"
	"carwash/internal/repositories"
	"carwash/internal/scheduling"
	"carwash/internal/types"
	"carwash/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type BookingRequest struct {
	CustomerID uuid.UUID       `json:"-"`
	ServiceID  uuid.UUID       `json:"serviceId"`
	Date       time.Time       `json:"date"`
	Location   models.Location `json:"location"`
	Notes      *string         `json:"notes,omitempty"`
}

// CompleteJobRequest finishes a job. BeforePhotos on a scheduled job folds
// the start into the same call.
type CompleteJobRequest struct {
	JobID        uuid.UUID `json:"-"`
	EmployeeID   uuid.UUID `json:"-"`
	BeforePhotos []string  `json:"beforePhotos,omitempty"`
	AfterPhotos  []string  `json:"afterPhotos,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

type RateJobRequest struct {
	JobID      uuid.UUID `json:"-"`
	CustomerID uuid.UUID `json:"-"`
	Rating     int       `json:"rating"`
	Feedback   *string   `json:"feedback,omitempty"`
}

// JobService owns every job status transition.
type JobService struct {
	db          database.DB
	repos       repositories.Repository
	transaction *TransactionService
	assignment  *AssignmentService
	employees   *EmployeeService
	media       *MediaService
	eventBus    *events.EventBus
	maxPhotos   int
	now         Clock
	log         logger.Logger
}

func NewJobService(
	db database.DB,
	repos repositories.Repository,
	transaction *TransactionService,
	assignment *AssignmentService,
	employees *EmployeeService,
	media *MediaService,
	eventBus *events.EventBus,
	config config.Config,
) *JobService {
	maxPhotos := config.MaxJobPhotos
	if maxPhotos <= 0 {
		maxPhotos = 5
	}

	return &JobService{
		db:          db,
		repos:       repos,
		transaction: transaction,
		assignment:  assignment,
		employees:   employees,
		media:       media,
		eventBus:    eventBus,
		maxPhotos:   maxPhotos,
		now:         utcNow,
		log:         logger.New("JobService"),
	}
}

// BookAdHocJob places a single job outside any subscription.
func (s *JobService) BookAdHocJob(ctx context.Context, req BookingRequest) (*models.Job, error) {
	log := s.log.Function("BookAdHocJob").TraceFromContext(ctx)

	if req.Date.IsZero() {
		return nil, types.Validation("booking date is required")
	}
	if req.Date.Before(utils.StartOfDay(s.now())) {
		return nil, types.Validation("booking date %s is in the past", req.Date.Format(types.DateLayout))
	}

	var job *models.Job
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		service, err := s.repos.Service.GetByID(ctx, tx, req.ServiceID)
		if err != nil {
			return err
		}
		if !service.IsActive {
			return types.Validation("service %s is not bookable", service.Name)
		}

		job, _, err = s.assignment.Assign(ctx, tx, AssignmentRequest{
			Date:       utils.StartOfDay(req.Date),
			CustomerID: req.CustomerID,
			ServiceID:  service.ID,
			Location:   req.Location,
			Price:      &service.Price,
			Notes:      utils.CleanNote(req.Notes),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.JOB_SCHEDULED, job, nil)
	log.Info("Ad-hoc job booked", "jobID", job.ID, "employeeID", job.EmployeeID)
	return job, nil
}

func (s *JobService) StartJob(ctx context.Context, jobID, employeeID uuid.UUID) (*models.Job, error) {
	var job *models.Job
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		job, err = s.ownedJob(ctx, tx, jobID, employeeID)
		if err != nil {
			return err
		}
		if err := checkTransition(job, models.JobStatusInProgress); err != nil {
			return err
		}

		now := s.now()
		job.Status = models.JobStatusInProgress
		job.StartTime = &now
		return s.repos.Job.Update(ctx, tx, job)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.JOB_STARTED, job, nil)
	return job, nil
}

func (s *JobService) CompleteJob(ctx context.Context, req CompleteJobRequest) (*models.Job, error) {
	log := s.log.Function("CompleteJob").TraceFromContext(ctx)

	if err := s.checkPhotoCount(req.BeforePhotos); err != nil {
		return nil, err
	}
	if err := s.checkPhotoCount(req.AfterPhotos); err != nil {
		return nil, err
	}

	var job *models.Job
	var stale []string
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		job, err = s.ownedJob(ctx, tx, req.JobID, req.EmployeeID)
		if err != nil {
			return err
		}

		now := s.now()
		switch job.Status {
		case models.JobStatusInProgress:
		case models.JobStatusScheduled:
			if len(req.BeforePhotos) == 0 {
				return types.InvalidState("job %s has not been started", job.ID)
			}
			job.StartTime = &now
		default:
			return types.InvalidState("cannot complete job %s in status %s", job.ID, job.Status)
		}

		if len(req.BeforePhotos) > 0 {
			stale = append(stale, job.BeforePhotos...)
			job.BeforePhotos = datatypes.JSONSlice[string](req.BeforePhotos)
		}
		if len(req.AfterPhotos) > 0 {
			stale = append(stale, job.AfterPhotos...)
			job.AfterPhotos = datatypes.JSONSlice[string](req.AfterPhotos)
		}
		if notes := utils.CleanNote(req.Notes); notes != nil {
			job.Notes = notes
		}

		job.Status = models.JobStatusCompleted
		job.EndTime = &now
		job.CompletedDate = &now
		if err := s.repos.Job.Update(ctx, tx, job); err != nil {
			return err
		}

		if err := s.repos.Employee.IncrementCompleted(ctx, tx, job.EmployeeID); err != nil {
			return err
		}

		if job.SubscriptionID != nil {
			if err := s.advanceSubscription(ctx, tx, *job.SubscriptionID, now); err != nil {
				return err
			}
		}

		return s.employees.RefreshAssignedToday(ctx, tx, job.EmployeeID)
	})
	if err != nil {
		return nil, err
	}

	s.media.DeleteStale(ctx, stale, append(append([]string{}, job.BeforePhotos...), job.AfterPhotos...))
	s.publish(ctx, events.JOB_COMPLETED, job, nil)
	log.Info("Job completed", "jobID", job.ID, "employeeID", job.EmployeeID)
	return job, nil
}

// advanceSubscription counts the completed wash and steps nextWashDate one
// period forward from today. A step past the end date expires the plan.
func (s *JobService) advanceSubscription(
	ctx context.Context,
	tx *gorm.DB,
	subscriptionID uuid.UUID,
	now time.Time,
) error {
	subscription, err := s.repos.Subscription.GetByID(ctx, tx, subscriptionID)
	if err != nil {
		return err
	}

	service, err := s.repos.Service.GetByID(ctx, tx, subscription.ServiceID)
	if err != nil {
		return err
	}

	frequency, err := scheduling.ParseFrequency(service.Frequency)
	if err != nil {
		return err
	}

	subscription.CompletedWashes++
	next, ok := frequency.Next(utils.StartOfDay(now))
	switch {
	case !ok:
		subscription.NextWashDate = nil
	case next.After(subscription.EndDate):
		subscription.NextWashDate = nil
		if subscription.Status.CanTransitionTo(models.SubscriptionStatusExpired) {
			subscription.Status = models.SubscriptionStatusExpired
		}
	default:
		subscription.NextWashDate = &next
	}

	return s.repos.Subscription.Update(ctx, tx, subscription)
}

func (s *JobService) CancelJob(ctx context.Context, jobID, employeeID uuid.UUID, reason string) (*models.Job, error) {
	return s.closeJob(ctx, jobID, employeeID, models.JobStatusCancelled, reason, events.JOB_CANCELLED)
}

// MarkNoShow records that the customer or vehicle was not there.
func (s *JobService) MarkNoShow(ctx context.Context, jobID, employeeID uuid.UUID, reason string) (*models.Job, error) {
	return s.closeJob(ctx, jobID, employeeID, models.JobStatusNoShow, reason, events.JOB_NO_SHOW)
}

func (s *JobService) closeJob(
	ctx context.Context,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	status models.JobStatus,
	reason string,
	eventType events.MessageType,
) (*models.Job, error) {
	var job *models.Job
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		job, err = s.ownedJob(ctx, tx, jobID, employeeID)
		if err != nil {
			return err
		}
		if err := checkTransition(job, status); err != nil {
			return err
		}

		job.Status = status
		if notes := utils.CleanNote(&reason); notes != nil {
			job.Notes = notes
		}
		if status == models.JobStatusNoShow {
			now := s.now()
			job.EndTime = &now
		}
		if err := s.repos.Job.Update(ctx, tx, job); err != nil {
			return err
		}

		return s.employees.RefreshAssignedToday(ctx, tx, job.EmployeeID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventType, job, map[string]any{"reason": reason})
	return job, nil
}

func (s *JobService) RateJob(ctx context.Context, req RateJobRequest) (*models.Job, error) {
	log := s.log.Function("RateJob").TraceFromContext(ctx)

	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, types.Validation("rating must be between %d and %d", MinRating, MaxRating)
	}

	var job *models.Job
	var employee *models.Employee
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		job, err = s.repos.Job.GetByID(ctx, tx, req.JobID)
		if err != nil {
			return err
		}
		if job.CustomerID != req.CustomerID {
			return types.Unauthorized("job %s does not belong to customer %s", job.ID, req.CustomerID)
		}
		if job.Status != models.JobStatusCompleted {
			return types.InvalidState("job %s is %s, only completed jobs can be rated", job.ID, job.Status)
		}
		if job.CustomerRating != nil {
			return types.InvalidState("job %s has already been rated", job.ID)
		}

		rating := req.Rating
		job.CustomerRating = &rating
		job.CustomerFeedback = utils.CleanNote(req.Feedback)
		if err := s.repos.Job.Update(ctx, tx, job); err != nil {
			return err
		}

		employee, err = s.repos.Employee.GetByID(ctx, tx, job.EmployeeID)
		if err != nil {
			return err
		}
		employee.ApplyRating(rating)
		return s.repos.Employee.UpdateRating(ctx, tx, employee)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.JOB_RATED, job, map[string]any{"rating": req.Rating})
	log.Info("Job rated", "jobID", job.ID, "employeeID", employee.ID, "newAverage", employee.Rating)
	return job, nil
}

// ReplacePhotos overwrites one photo set. Refs dropped by the new set are
// deleted from the media host after the job is saved.
func (s *JobService) ReplacePhotos(
	ctx context.Context,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	kind models.PhotoKind,
	refs []string,
) (*models.Job, error) {
	if kind != models.PhotoKindBefore && kind != models.PhotoKindAfter {
		return nil, types.Validation("unknown photo kind %q", kind)
	}
	if err := s.checkPhotoCount(refs); err != nil {
		return nil, err
	}

	var job *models.Job
	var previous []string
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		job, err = s.ownedJob(ctx, tx, jobID, employeeID)
		if err != nil {
			return err
		}
		if job.Status == models.JobStatusCancelled || job.Status == models.JobStatusNoShow {
			return types.InvalidState("job %s is %s", job.ID, job.Status)
		}

		previous = append(previous, job.Photos(kind)...)
		if kind == models.PhotoKindBefore {
			job.BeforePhotos = datatypes.JSONSlice[string](refs)
		} else {
			job.AfterPhotos = datatypes.JSONSlice[string](refs)
		}
		return s.repos.Job.Update(ctx, tx, job)
	})
	if err != nil {
		return nil, err
	}

	s.media.DeleteStale(ctx, previous, refs)
	return job, nil
}

func (s *JobService) ListForEmployee(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]*models.Job, error) {
	filter := repositories.JobFilter{EmployeeID: &employeeID}
	if !date.IsZero() {
		filter.From, filter.To = utils.DayWindow(date)
	}
	return s.repos.Job.List(ctx, s.db.SQLWithContext(ctx), filter)
}

func (s *JobService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Job, error) {
	return s.repos.Job.List(ctx, s.db.SQLWithContext(ctx), repositories.JobFilter{CustomerID: &customerID})
}

func (s *JobService) ownedJob(ctx context.Context, tx *gorm.DB, jobID, employeeID uuid.UUID) (*models.Job, error) {
	job, err := s.repos.Job.GetByID(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployeeID != employeeID {
		return nil, types.Unauthorized("job %s is not assigned to employee %s", job.ID, employeeID)
	}
	return job, nil
}

func (s *JobService) checkPhotoCount(refs []string) error {
	if len(refs) > s.maxPhotos {
		return types.Validation("at most %d photos allowed, got %d", s.maxPhotos, len(refs))
	}
	return nil
}

func (s *JobService) publish(ctx context.Context, eventType events.MessageType, job *models.Job, data map[string]any) {
	if err := s.eventBus.PublishJob(eventType, job.ID, job.EmployeeID, job.CustomerID, data); err != nil {
		s.log.Function("publish").TraceFromContext(ctx).
			Warn("failed to publish job event", "type", eventType, "jobID", job.ID, "error", err)
	}
}

func checkTransition(job *models.Job, next models.JobStatus) error {
	if job.Status.IsTerminal() {
		return types.InvalidState("job %s is %s and can no longer change", job.ID, job.Status)
	}
	if !job.Status.CanTransitionTo(next) {
		return types.InvalidState("cannot move job %s from %s to %s", job.ID, job.Status, next)
	}
	return nil
}
