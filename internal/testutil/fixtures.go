package testutil

import (
	"testing"
	"time"

	"carwash/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func CreateEmployee(t *testing.T, db *gorm.DB, name string, limit int) *models.Employee {
	t.Helper()

	employee := &models.Employee{Name: name, DailyJobLimit: limit, IsAvailable: true}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func CreateService(t *testing.T, db *gorm.DB, name, frequency string) *models.Service {
	t.Helper()

	service := &models.Service{
		Name:            name,
		Frequency:       frequency,
		Price:           decimal.RequireFromString("25.00"),
		DurationMinutes: 45,
		IsActive:        true,
	}
	require.NoError(t, db.Create(service).Error)
	return service
}

// CreateJob inserts an active job directly, bypassing assignment.
func CreateJob(
	t *testing.T,
	db *gorm.DB,
	employeeID uuid.UUID,
	serviceID uuid.UUID,
	day time.Time,
	status models.JobStatus,
) *models.Job {
	t.Helper()

	job := &models.Job{
		EmployeeID:    employeeID,
		CustomerID:    uuid.New(),
		ServiceID:     serviceID,
		ScheduledDate: day,
		Status:        status,
		Price:         decimal.RequireFromString("25.00"),
		Location:      datatypes.NewJSONType(models.Location{Address: "1 Main St"}),
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
