package services

import (
	"context"
	"strings"

	"carwash/config"
	"carwash/internal/database"
	"carwash/internal/models"
	"carwash/internal/repositories"
	"carwash/internal/types"
	"carwash/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HireEmployeeRequest struct {
	Name          string  `json:"name"`
	Phone         *string `json:"phone,omitempty"`
	DailyJobLimit int     `json:"dailyJobLimit"`
}

// UpdateEmployeeRequest carries a partial update. Nil fields are left as is.
type UpdateEmployeeRequest struct {
	IsAvailable   *bool `json:"isAvailable,omitempty"`
	DailyJobLimit *int  `json:"dailyJobLimit,omitempty"`
}

// EmployeeStatus is a roster entry with the assigned-jobs counter as of now.
type EmployeeStatus struct {
	*models.Employee
	AssignedJobsToday int `json:"assignedJobsToday"`
}

// EmployeeService is the employee directory.
type EmployeeService struct {
	db           database.DB
	repos        repositories.Repository
	defaultLimit int
	now          Clock
	log          logger.Logger
}

func NewEmployeeService(db database.DB, repos repositories.Repository, config config.Config) *EmployeeService {
	limit := config.DefaultDailyJobLimit
	if limit <= 0 {
		limit = models.DefaultDailyJobLimit
	}

	return &EmployeeService{
		db:           db,
		repos:        repos,
		defaultLimit: limit,
		now:          utcNow,
		log:          logger.New("EmployeeService"),
	}
}

func (s *EmployeeService) Hire(ctx context.Context, req HireEmployeeRequest) (*models.Employee, error) {
	log := s.log.Function("Hire").TraceFromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, types.Validation("employee name is required")
	}
	if req.DailyJobLimit < 0 {
		return nil, types.Validation("daily job limit cannot be negative")
	}

	limit := req.DailyJobLimit
	if limit == 0 {
		limit = s.defaultLimit
	}

	employee := &models.Employee{
		Name:          name,
		Phone:         req.Phone,
		IsAvailable:   true,
		DailyJobLimit: limit,
	}
	if err := s.repos.Employee.Create(ctx, s.db.SQLWithContext(ctx), employee); err != nil {
		return nil, err
	}

	log.Info("Employee hired", "employeeID", employee.ID, "dailyJobLimit", limit)
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	return s.repos.Employee.List(ctx, s.db.SQLWithContext(ctx))
}

// Roster lists every employee. A counter stamped for an earlier day reads
// as zero.
func (s *EmployeeService) Roster(ctx context.Context) ([]EmployeeStatus, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	roster := make([]EmployeeStatus, 0, len(employees))
	for _, employee := range employees {
		roster = append(roster, EmployeeStatus{
			Employee:          employee,
			AssignedJobsToday: employee.EffectiveAssignedJobsToday(now),
		})
	}
	return roster, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.repos.Employee.GetByID(ctx, s.db.SQLWithContext(ctx), id)
}

func (s *EmployeeService) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateEmployeeRequest,
) (*models.Employee, error) {
	log := s.log.Function("Update").TraceFromContext(ctx)
	tx := s.db.SQLWithContext(ctx)

	employee, err := s.repos.Employee.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if req.DailyJobLimit != nil {
		if *req.DailyJobLimit <= 0 {
			return nil, types.Validation("daily job limit must be positive")
		}
		employee.DailyJobLimit = *req.DailyJobLimit
	}
	if req.IsAvailable != nil {
		employee.IsAvailable = *req.IsAvailable
	}

	if err := s.repos.Employee.Update(ctx, tx, employee); err != nil {
		return nil, err
	}

	log.Info(
		"Employee updated",
		"employeeID", id,
		"isAvailable", employee.IsAvailable,
		"dailyJobLimit", employee.DailyJobLimit,
	)
	return employee, nil
}

// RefreshAssignedToday recomputes the cached daily counter from today's
// active jobs.
func (s *EmployeeService) RefreshAssignedToday(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	today := utils.StartOfDay(s.now())

	count, err := s.repos.Job.CountActiveForEmployee(ctx, tx, id, today)
	if err != nil {
		return err
	}

	return s.repos.Employee.SetAssignedToday(ctx, tx, id, count, today)
}
