package services

import (
	"context"
	"errors"
	"time"

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

type CreateSubscriptionRequest struct {
	CustomerID uuid.UUID       `json:"-"`
	ServiceID  uuid.UUID       `json:"serviceId"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	Location   models.Location `json:"location"`
}

type DateFailure struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// MaterializeResult reports a createSubscriptionJobs run. Failed dates did
// not get a job; every other date did, in this run or an earlier one.
type MaterializeResult struct {
	SubscriptionID uuid.UUID     `json:"subscriptionId"`
	Created        []*models.Job `json:"created"`
	Skipped        []time.Time   `json:"skipped"`
	Failed         []DateFailure `json:"failed"`
}

// SubscriptionService turns subscriptions into jobs and manages their status.
type SubscriptionService struct {
	db          database.DB
	repos       repositories.Repository
	transaction *TransactionService
	assignment  *AssignmentService
	employees   *EmployeeService
	eventBus    *events.EventBus
	now         Clock
	log         logger.Logger
}

func NewSubscriptionService(
	db database.DB,
	repos repositories.Repository,
	transaction *TransactionService,
	assignment *AssignmentService,
	employees *EmployeeService,
	eventBus *events.EventBus,
) *SubscriptionService {
	return &SubscriptionService{
		db:          db,
		repos:       repos,
		transaction: transaction,
		assignment:  assignment,
		employees:   employees,
		eventBus:    eventBus,
		now:         utcNow,
		log:         logger.New("SubscriptionService"),
	}
}

// CreateSubscription stores an active subscription and materializes its
// jobs. The subscription survives when some dates were fully booked; any
// other failure removes it together with the jobs created so far.
func (s *SubscriptionService) CreateSubscription(
	ctx context.Context,
	req CreateSubscriptionRequest,
) (*models.Subscription, *MaterializeResult, error) {
	log := s.log.Function("CreateSubscription").TraceFromContext(ctx)
	tx := s.db.SQLWithContext(ctx)

	if req.StartDate.IsZero() {
		return nil, nil, types.Validation("start date is required")
	}
	if req.StartDate.Before(utils.StartOfDay(s.now())) {
		return nil, nil, types.Validation("start date %s is in the past", req.StartDate.Format(types.DateLayout))
	}
	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return nil, nil, types.Validation("end date is before start date")
	}

	service, err := s.repos.Service.GetByID(ctx, tx, req.ServiceID)
	if err != nil {
		return nil, nil, err
	}
	if !service.IsActive {
		return nil, nil, types.Validation("service %s is not bookable", service.Name)
	}
	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = utils.AddMonthsClamped(utils.StartOfDay(req.StartDate), 1)
	}
	if _, err := scheduling.Materialize(req.StartDate, endDate, service.Frequency); err != nil {
		return nil, nil, err
	}

	subscription := &models.Subscription{
		CustomerID: req.CustomerID,
		ServiceID:  service.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Location:   datatypes.NewJSONType(req.Location),
	}
	if err := s.repos.Subscription.Create(ctx, tx, subscription); err != nil {
		return nil, nil, err
	}
	log.Info("Subscription created", "subscriptionID", subscription.ID, "frequency", service.Frequency)

	result, err := s.CreateSubscriptionJobs(ctx, subscription.ID)
	if err != nil {
		if discardErr := s.discard(ctx, subscription.ID, result); discardErr != nil {
			log.Er("failed to discard subscription", discardErr, "subscriptionID", subscription.ID)
		}
		return nil, nil, err
	}

	subscription, err = s.repos.Subscription.GetByID(ctx, s.db.SQLWithContext(ctx), subscription.ID)
	if err != nil {
		return nil, nil, err
	}

	return subscription, result, nil
}

// discard removes a subscription whose jobs could not be created, along with
// any jobs the partial run committed.
func (s *SubscriptionService) discard(
	ctx context.Context,
	subscriptionID uuid.UUID,
	result *MaterializeResult,
) error {
	return s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		employees := make(map[uuid.UUID]struct{})
		if result != nil {
			for _, job := range result.Created {
				if err := s.repos.Job.Delete(ctx, tx, job.ID); err != nil {
					return err
				}
				employees[job.EmployeeID] = struct{}{}
			}
		}

		if err := s.repos.Subscription.Delete(ctx, tx, subscriptionID); err != nil {
			return err
		}

		for employeeID := range employees {
			if err := s.employees.RefreshAssignedToday(ctx, tx, employeeID); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateSubscriptionJobs materializes the subscription's dates and assigns
// each one. Dates that already have a job or lie in the past are skipped, so
// the call can be repeated. A fully booked day is recorded as a failure and
// the remaining dates still run.
func (s *SubscriptionService) CreateSubscriptionJobs(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*MaterializeResult, error) {
	log := s.log.Function("CreateSubscriptionJobs").TraceFromContext(ctx)
	tx := s.db.SQLWithContext(ctx)

	subscription, err := s.repos.Subscription.GetByID(ctx, tx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.Status != models.SubscriptionStatusActive {
		return nil, types.InvalidState("subscription %s is %s", subscription.ID, subscription.Status)
	}

	service, err := s.repos.Service.GetByID(ctx, tx, subscription.ServiceID)
	if err != nil {
		return nil, err
	}

	dates, err := scheduling.Materialize(subscription.StartDate, subscription.EndDate, service.Frequency)
	if err != nil {
		return nil, err
	}

	existing, err := s.repos.Job.ScheduledDatesForSubscription(ctx, tx, subscription.ID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, date := range existing {
		taken[date.Format(types.DateLayout)] = struct{}{}
	}

	today := utils.StartOfDay(s.now())
	location := subscription.Location.Data()
	result := &MaterializeResult{
		SubscriptionID: subscription.ID,
		Created:        make([]*models.Job, 0, len(dates)),
		Skipped:        make([]time.Time, 0),
		Failed:         make([]DateFailure, 0),
	}

	for _, date := range dates {
		if _, ok := taken[date.Format(types.DateLayout)]; ok || date.Before(today) {
			result.Skipped = append(result.Skipped, date)
			continue
		}

		var job *models.Job
		err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
			var err error
			job, _, err = s.assignment.Assign(ctx, tx, AssignmentRequest{
				Date:           date,
				CustomerID:     subscription.CustomerID,
				ServiceID:      service.ID,
				SubscriptionID: &subscription.ID,
				Location:       location,
				Price:          &service.Price,
			})
			return err
		})
		if err != nil {
			if errors.Is(err, types.ErrCapacityExhausted) {
				result.Failed = append(result.Failed, DateFailure{Date: date, Reason: err.Error()})
				continue
			}
			return result, err
		}

		result.Created = append(result.Created, job)
		s.publish(ctx, job)
	}

	if subscription.AssignedEmployeeID == nil && len(result.Created) > 0 {
		employeeID := result.Created[0].EmployeeID
		subscription.AssignedEmployeeID = &employeeID
		if err := s.repos.Subscription.Update(ctx, s.db.SQLWithContext(ctx), subscription); err != nil {
			return result, err
		}
	}

	log.Info(
		"Subscription jobs materialized",
		"subscriptionID", subscription.ID,
		"dates", len(dates),
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)

	return result, nil
}

// UpdateStatus applies a customer or admin status change. A nil customerID
// skips the ownership check. Cancelling also cancels the plan's future
// scheduled jobs.
func (s *SubscriptionService) UpdateStatus(
	ctx context.Context,
	subscriptionID uuid.UUID,
	customerID *uuid.UUID,
	status models.SubscriptionStatus,
) (*models.Subscription, error) {
	log := s.log.Function("UpdateStatus").TraceFromContext(ctx)

	if !status.IsValid() || status == models.SubscriptionStatusExpired {
		return nil, types.Validation("status %q cannot be requested", status)
	}

	var subscription *models.Subscription
	var affected []uuid.UUID
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		subscription, err = s.repos.Subscription.GetByID(ctx, tx, subscriptionID)
		if err != nil {
			return err
		}
		if customerID != nil && subscription.CustomerID != *customerID {
			return types.Unauthorized("subscription %s does not belong to customer %s", subscription.ID, *customerID)
		}
		if !subscription.Status.CanTransitionTo(status) {
			return types.InvalidState(
				"cannot move subscription %s from %s to %s",
				subscription.ID,
				subscription.Status,
				status,
			)
		}

		subscription.Status = status
		if err := s.repos.Subscription.Update(ctx, tx, subscription); err != nil {
			return err
		}

		if status != models.SubscriptionStatusCancelled {
			return nil
		}

		affected, err = s.repos.Job.CancelScheduledForSubscription(ctx, tx, subscription.ID, s.now())
		if err != nil {
			return err
		}
		for _, employeeID := range affected {
			if err := s.employees.RefreshAssignedToday(ctx, tx, employeeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Subscription status changed", "subscriptionID", subscriptionID, "status", status, "affectedEmployees", len(affected))
	return subscription, nil
}

// OverrideEmployee pins the subscription's preferred employee. Existing jobs
// keep their assignment.
func (s *SubscriptionService) OverrideEmployee(
	ctx context.Context,
	subscriptionID uuid.UUID,
	employeeID uuid.UUID,
) (*models.Subscription, error) {
	var subscription *models.Subscription
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		employee, err := s.repos.Employee.GetByID(ctx, tx, employeeID)
		if err != nil {
			return err
		}

		subscription, err = s.repos.Subscription.GetByID(ctx, tx, subscriptionID)
		if err != nil {
			return err
		}

		subscription.AssignedEmployeeID = &employee.ID
		return s.repos.Subscription.Update(ctx, tx, subscription)
	})
	if err != nil {
		return nil, err
	}

	s.log.Function("OverrideEmployee").TraceFromContext(ctx).
		Info("Subscription employee overridden", "subscriptionID", subscriptionID, "employeeID", employeeID)
	return subscription, nil
}

func (s *SubscriptionService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Subscription, error) {
	return s.repos.Subscription.ListByCustomer(ctx, s.db.SQLWithContext(ctx), customerID)
}

func (s *SubscriptionService) publish(ctx context.Context, job *models.Job) {
	err := s.eventBus.PublishJob(events.JOB_SCHEDULED, job.ID, job.EmployeeID, job.CustomerID, map[string]any{
		"subscriptionId": job.SubscriptionID.String(),
		"date":           job.ScheduledDate.Format(types.DateLayout),
	})
	if err != nil {
		s.log.Function("publish").TraceFromContext(ctx).Warn("failed to publish job event", "jobID", job.ID, "error", err)
	}
}
