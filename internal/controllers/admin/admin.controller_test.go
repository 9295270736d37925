package adminController

import (
	"context"
	"errors"
	"testing"
	"time"

	"carwash/config"
	"carwash/internal/models"
	"carwash/internal/services"
	"carwash/internal/testutil"
	"carwash/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminController(t *testing.T) {
	day := testutil.Day(2024, 6, 1)
	db := testutil.NewTestDB(t)
	svc, err := services.New(db, config.Config{DefaultDailyJobLimit: 6, MaxJobPhotos: 3}, nil)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return day })

	controller := New(svc, db)
	ctx := context.Background()

	wash := testutil.CreateService(t, db.SQL, "Exterior", "weekly")

	t.Run("employees", func(t *testing.T) {
		hired, err := controller.HireEmployee(ctx, services.HireEmployeeRequest{Name: "A", DailyJobLimit: 2})
		require.NoError(t, err)

		limit := 4
		updated, err := controller.UpdateEmployee(ctx, hired.ID, services.UpdateEmployeeRequest{DailyJobLimit: &limit})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.DailyJobLimit)

		limit = 2
		_, err = controller.UpdateEmployee(ctx, hired.ID, services.UpdateEmployeeRequest{DailyJobLimit: &limit})
		require.NoError(t, err)

		employees, err := controller.ListEmployees(ctx)
		require.NoError(t, err)
		assert.Len(t, employees, 1)
	})

	employees, err := controller.ListEmployees(ctx)
	require.NoError(t, err)
	a := employees[0]
	for i := 0; i < 3; i++ {
		testutil.CreateJob(t, db.SQL, a.ID, wash.ID, day, models.JobStatusScheduled)
	}
	b, err := controller.HireEmployee(ctx, services.HireEmployeeRequest{Name: "B"})
	require.NoError(t, err)

	t.Run("capacity", func(t *testing.T) {
		_, err := controller.Capacity(ctx, "")
		assert.True(t, errors.Is(err, types.ErrValidation))

		response, err := controller.Capacity(ctx, "2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", response.Date)
		require.Len(t, response.Employees, 2)
		assert.Equal(t, b.ID, response.Employees[0].EmployeeID)
		assert.Equal(t, 3, response.Employees[1].CurrentLoad)
		assert.Equal(t, -1, response.Employees[1].RemainingCapacity)
	})

	t.Run("rebalance defaults to today", func(t *testing.T) {
		_, err := controller.Rebalance(ctx, "first of june")
		assert.True(t, errors.Is(err, types.ErrValidation))

		summary, err := controller.Rebalance(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", summary.Date)
		assert.Equal(t, 1, summary.ReassignedCount)

		again, err := controller.Rebalance(ctx, "2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, 0, again.OverAssignedCount)
	})

	t.Run("subscription management", func(t *testing.T) {
		subscription := &models.Subscription{
			CustomerID: uuid.New(),
			ServiceID:  wash.ID,
			StartDate:  testutil.Day(2024, 6, 2),
			EndDate:    testutil.Day(2024, 6, 16),
		}
		require.NoError(t, db.SQL.Create(subscription).Error)

		result, err := controller.MaterializeSubscription(ctx, subscription.ID)
		require.NoError(t, err)
		assert.Len(t, result.Created, 3)

		_, err = controller.OverrideEmployee(ctx, subscription.ID, OverrideEmployeeRequest{})
		assert.True(t, errors.Is(err, types.ErrValidation))

		overridden, err := controller.OverrideEmployee(ctx, subscription.ID, OverrideEmployeeRequest{EmployeeID: a.ID})
		require.NoError(t, err)
		assert.Equal(t, a.ID, *overridden.AssignedEmployeeID)
	})
}

func TestAdminController_ListEmployeesRollsCounterOver(t *testing.T) {
	now := testutil.Day(2024, 6, 1).Add(9 * time.Hour)
	db := testutil.NewTestDB(t)
	svc, err := services.New(db, config.Config{DefaultDailyJobLimit: 6, MaxJobPhotos: 3}, nil)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return now })

	controller := New(svc, db)
	ctx := context.Background()

	wash := testutil.CreateService(t, db.SQL, "Exterior", "one-time")
	hired, err := controller.HireEmployee(ctx, services.HireEmployeeRequest{Name: "A"})
	require.NoError(t, err)

	customer := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := svc.Job.BookAdHocJob(ctx, services.BookingRequest{
			CustomerID: customer,
			ServiceID:  wash.ID,
			Date:       now,
		})
		require.NoError(t, err)
	}

	roster, err := controller.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, hired.ID, roster[0].ID)
	assert.Equal(t, 2, roster[0].AssignedJobsToday)

	now = now.Add(24 * time.Hour)

	roster, err = controller.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, roster[0].AssignedJobsToday)
}
