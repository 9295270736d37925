package services

import (
	"context"
	"time"

	"carwash/internal/repositories"
	"carwash/internal/scheduling"
	"carwash/internal/types"
	"carwash/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeWorkload pairs an employee with its load on one day.
type EmployeeWorkload struct {
	scheduling.Workload
	Name string `json:"name"`
}

// CapacityService answers which employees can take another job on a day.
// Loads are always counted live from job records.
type CapacityService struct {
	repos repositories.Repository
	log   logger.Logger
}

func NewCapacityService(repos repositories.Repository) *CapacityService {
	return &CapacityService{
		repos: repos,
		log:   logger.New("CapacityService"),
	}
}

// LoadsFor returns every available employee's workload on date, full ones
// included, least loaded first.
func (s *CapacityService) LoadsFor(ctx context.Context, tx *gorm.DB, date time.Time) ([]EmployeeWorkload, error) {
	workloads, names, err := s.workloads(ctx, tx, date)
	if err != nil {
		return nil, err
	}

	scheduling.SortByLoad(workloads)
	return withNames(workloads, names), nil
}

// CapacityFor returns the employees with headroom on date, least loaded
// first. An empty roster or a fully booked day is a CapacityExhausted error.
func (s *CapacityService) CapacityFor(ctx context.Context, tx *gorm.DB, date time.Time) ([]EmployeeWorkload, error) {
	log := s.log.Function("CapacityFor").TraceFromContext(ctx)

	workloads, names, err := s.workloads(ctx, tx, date)
	if err != nil {
		return nil, err
	}

	candidates := scheduling.RankCandidates(workloads)
	if len(candidates) == 0 {
		log.Warn("No employee has capacity", "date", utils.StartOfDay(date), "available", len(workloads))
		return nil, types.CapacityExhausted(date)
	}

	return withNames(candidates, names), nil
}

func (s *CapacityService) workloads(
	ctx context.Context,
	tx *gorm.DB,
	date time.Time,
) ([]scheduling.Workload, map[uuid.UUID]string, error) {
	employees, err := s.repos.Employee.ListAvailable(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	counts, err := s.repos.Job.CountActiveByEmployee(ctx, tx, date)
	if err != nil {
		return nil, nil, err
	}

	names := make(map[uuid.UUID]string, len(employees))
	workloads := make([]scheduling.Workload, 0, len(employees))
	for _, employee := range employees {
		names[employee.ID] = employee.Name
		workloads = append(
			workloads,
			scheduling.NewWorkload(employee.ID, employee.DailyJobLimit, counts[employee.ID]),
		)
	}

	return workloads, names, nil
}

func withNames(workloads []scheduling.Workload, names map[uuid.UUID]string) []EmployeeWorkload {
	result := make([]EmployeeWorkload, 0, len(workloads))
	for _, w := range workloads {
		result = append(result, EmployeeWorkload{Workload: w, Name: names[w.EmployeeID]})
	}
	return result
}
