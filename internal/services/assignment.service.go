package services

import (
	"context"
	"time"

	"carwash/internal/models"
	"carwash/internal/repositories"
	"carwash/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssignmentRequest describes one occurrence to place. Price defaults to the
// service's current price; ReplacesJobID is set by the rebalancer.
type AssignmentRequest struct {
	Date           time.Time
	CustomerID     uuid.UUID
	ServiceID      uuid.UUID
	SubscriptionID *uuid.UUID
	Location       models.Location
	Price          *decimal.Decimal
	Notes          *string
	ReplacesJobID  *uuid.UUID
}

// AssignmentService places a job on the least loaded employee with headroom.
// There is no lock between the capacity read and the insert; concurrent
// bookings can overfill a day and the rebalancer corrects it.
type AssignmentService struct {
	repos     repositories.Repository
	capacity  *CapacityService
	employees *EmployeeService
	log       logger.Logger
}

func NewAssignmentService(
	repos repositories.Repository,
	capacity *CapacityService,
	employees *EmployeeService,
) *AssignmentService {
	return &AssignmentService{
		repos:     repos,
		capacity:  capacity,
		employees: employees,
		log:       logger.New("AssignmentService"),
	}
}

func (s *AssignmentService) Assign(
	ctx context.Context,
	tx *gorm.DB,
	req AssignmentRequest,
) (*models.Job, *models.Employee, error) {
	log := s.log.Function("Assign").TraceFromContext(ctx)

	if req.Date.IsZero() {
		return nil, nil, types.Validation("scheduled date is required")
	}
	if req.CustomerID == uuid.Nil {
		return nil, nil, types.Validation("customer id is required")
	}

	price := req.Price
	if price == nil {
		service, err := s.repos.Service.GetByID(ctx, tx, req.ServiceID)
		if err != nil {
			return nil, nil, err
		}
		price = &service.Price
	}

	candidates, err := s.capacity.CapacityFor(ctx, tx, req.Date)
	if err != nil {
		return nil, nil, err
	}

	employee, err := s.repos.Employee.GetByID(ctx, tx, candidates[0].EmployeeID)
	if err != nil {
		return nil, nil, err
	}

	job := &models.Job{
		EmployeeID:     employee.ID,
		CustomerID:     req.CustomerID,
		ServiceID:      req.ServiceID,
		SubscriptionID: req.SubscriptionID,
		ReplacesJobID:  req.ReplacesJobID,
		ScheduledDate:  req.Date.UTC(),
		Status:         models.JobStatusScheduled,
		Price:          *price,
		Location:       datatypes.NewJSONType(req.Location),
		Notes:          req.Notes,
	}
	if err := s.repos.Job.Create(ctx, tx, job); err != nil {
		return nil, nil, err
	}

	if err := s.employees.RefreshAssignedToday(ctx, tx, employee.ID); err != nil {
		return nil, nil, err
	}

	log.Info(
		"Job assigned",
		"jobID", job.ID,
		"employeeID", employee.ID,
		"date", job.ScheduledDate,
		"load", candidates[0].CurrentLoad+1,
		"limit", candidates[0].DailyJobLimit,
	)

	return job, employee, nil
}
