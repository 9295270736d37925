package services

import (
	"context"
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
	"gorm.io/gorm"
)

type RebalanceFailure struct {
	JobID      uuid.UUID `json:"jobId"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Reason     string    `json:"reason"`
}

type RebalanceSummary struct {
	Date              string             `json:"date"`
	TotalJobs         int                `json:"totalJobs"`
	OverAssignedCount int                `json:"overAssignedCount"`
	ReassignedCount   int                `json:"reassignedCount"`
	Failures          []RebalanceFailure `json:"failures"`
}

// RebalanceService moves jobs off employees who hold more active jobs than
// their limit, or who are no longer available, for one day.
type RebalanceService struct {
	db          database.DB
	repos       repositories.Repository
	transaction *TransactionService
	assignment  *AssignmentService
	employees   *EmployeeService
	eventBus    *events.EventBus
	now         Clock
	log         logger.Logger
}

func NewRebalanceService(
	db database.DB,
	repos repositories.Repository,
	transaction *TransactionService,
	assignment *AssignmentService,
	employees *EmployeeService,
	eventBus *events.EventBus,
) *RebalanceService {
	return &RebalanceService{
		db:          db,
		repos:       repos,
		transaction: transaction,
		assignment:  assignment,
		employees:   employees,
		eventBus:    eventBus,
		now:         utcNow,
		log:         logger.New("RebalanceService"),
	}
}

// Rebalance flags the excess over each employee's limit, taking the most
// recently created scheduled jobs first, plus every scheduled job held by an
// unavailable employee. Started jobs never move. Each flagged job is
// replaced through the assignment path; a job that cannot be placed stays
// where it is and is reported in Failures. A second run with no new bookings
// flags nothing.
func (s *RebalanceService) Rebalance(ctx context.Context, date time.Time) (*RebalanceSummary, error) {
	log := s.log.Function("Rebalance").TraceFromContext(ctx)
	tx := s.db.SQLWithContext(ctx)
	day := utils.StartOfDay(date)

	summary := &RebalanceSummary{
		Date:     day.Format(types.DateLayout),
		Failures: make([]RebalanceFailure, 0),
	}

	total, err := s.repos.Job.CountActiveForDay(ctx, tx, day)
	if err != nil {
		return nil, err
	}
	summary.TotalJobs = total

	flagged, err := s.flagOverAssigned(ctx, tx, day)
	if err != nil {
		return nil, err
	}
	summary.OverAssignedCount = len(flagged)

	for _, original := range flagged {
		replacement, err := s.replace(ctx, original)
		if err != nil {
			log.Warn("Could not reassign job", "jobID", original.ID, "employeeID", original.EmployeeID, "error", err)
			summary.Failures = append(summary.Failures, RebalanceFailure{
				JobID:      original.ID,
				EmployeeID: original.EmployeeID,
				Reason:     err.Error(),
			})
			continue
		}

		summary.ReassignedCount++
		s.publishReassigned(ctx, original, replacement)
	}

	log.Info(
		"Rebalance finished",
		"date", summary.Date,
		"totalJobs", summary.TotalJobs,
		"overAssigned", summary.OverAssignedCount,
		"reassigned", summary.ReassignedCount,
		"failed", len(summary.Failures),
	)

	if err := s.eventBus.Publish(events.REBALANCE_CHANNEL, events.Event{
		Type: events.REBALANCE_COMPLETE,
		Data: map[string]any{
			"date":              summary.Date,
			"totalJobs":         summary.TotalJobs,
			"overAssignedCount": summary.OverAssignedCount,
			"reassignedCount":   summary.ReassignedCount,
		},
	}); err != nil {
		log.Warn("failed to publish rebalance summary", "error", err)
	}

	return summary, nil
}

// RebalanceRange sweeps from through from+days inclusive.
func (s *RebalanceService) RebalanceRange(ctx context.Context, from time.Time, days int) ([]*RebalanceSummary, error) {
	summaries := make([]*RebalanceSummary, 0, days+1)
	start := utils.StartOfDay(from)
	for offset := 0; offset <= days; offset++ {
		summary, err := s.Rebalance(ctx, start.AddDate(0, 0, offset))
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// RebalanceUpcoming sweeps today and the next days days.
func (s *RebalanceService) RebalanceUpcoming(ctx context.Context, days int) ([]*RebalanceSummary, error) {
	return s.RebalanceRange(ctx, s.now(), days)
}

func (s *RebalanceService) flagOverAssigned(ctx context.Context, tx *gorm.DB, day time.Time) ([]*models.Job, error) {
	employees, err := s.repos.Employee.List(ctx, tx)
	if err != nil {
		return nil, err
	}

	counts, err := s.repos.Job.CountActiveByEmployee(ctx, tx, day)
	if err != nil {
		return nil, err
	}

	flagged := make([]*models.Job, 0)
	for _, employee := range employees {
		load := counts[employee.ID]
		if load == 0 {
			continue
		}

		excess := scheduling.NewWorkload(employee.ID, employee.DailyJobLimit, load).Excess()
		if !employee.IsAvailable {
			excess = load
		}
		if excess <= 0 {
			continue
		}

		scheduled, err := s.repos.Job.ListScheduledForEmployeeDay(ctx, tx, employee.ID, day)
		if err != nil {
			return nil, err
		}
		if excess > len(scheduled) {
			excess = len(scheduled)
		}
		flagged = append(flagged, scheduled[:excess]...)
	}

	return flagged, nil
}

// replace inserts the successor through the assignment path and then
// soft deletes the original, in one transaction.
func (s *RebalanceService) replace(ctx context.Context, original *models.Job) (*models.Job, error) {
	var replacement *models.Job
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		replacement, _, err = s.assignment.Assign(ctx, tx, AssignmentRequest{
			Date:           original.ScheduledDate,
			CustomerID:     original.CustomerID,
			ServiceID:      original.ServiceID,
			SubscriptionID: original.SubscriptionID,
			Location:       original.Location.Data(),
			Price:          &original.Price,
			Notes:          original.Notes,
			ReplacesJobID:  &original.ID,
		})
		if err != nil {
			return err
		}

		if err := s.repos.Job.Delete(ctx, tx, original.ID); err != nil {
			return err
		}

		return s.employees.RefreshAssignedToday(ctx, tx, original.EmployeeID)
	})

	return replacement, err
}

func (s *RebalanceService) publishReassigned(ctx context.Context, original, replacement *models.Job) {
	err := s.eventBus.PublishJob(
		events.JOB_REASSIGNED,
		replacement.ID,
		replacement.EmployeeID,
		replacement.CustomerID,
		map[string]any{
			"replacesJobId":      original.ID.String(),
			"previousEmployeeId": original.EmployeeID.String(),
		},
	)
	if err != nil {
		s.log.Function("publishReassigned").TraceFromContext(ctx).
			Warn("failed to publish reassignment", "jobID", replacement.ID, "error", err)
	}
}
