package subscriptionController

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

func TestSubscriptionController(t *testing.T) {
	day := testutil.Day(2024, 6, 1)
	db := testutil.NewTestDB(t)
	svc, err := services.New(db, config.Config{DefaultDailyJobLimit: 6, MaxJobPhotos: 3}, nil)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return day })

	controller := New(svc)
	ctx := context.Background()
	customer := uuid.New()

	wash := testutil.CreateService(t, db.SQL, "Weekly Wash", "weekly-once")
	testutil.CreateEmployee(t, db.SQL, "A", 6)

	t.Run("rejects malformed dates", func(t *testing.T) {
		tests := []CreateSubscriptionRequest{
			{ServiceID: wash.ID},
			{ServiceID: wash.ID, StartDate: "June 1st"},
			{ServiceID: wash.ID, StartDate: "2024-06-01", EndDate: "soon"},
			{StartDate: "2024-06-01"},
		}
		for _, req := range tests {
			_, err := controller.Create(ctx, customer, req)
			assert.True(t, errors.Is(err, types.ErrValidation), "got %v", err)
		}
	})

	response, err := controller.Create(ctx, customer, CreateSubscriptionRequest{
		ServiceID: wash.ID,
		StartDate: "2024-06-01",
		EndDate:   "2024-06-29",
	})
	require.NoError(t, err)
	assert.Len(t, response.Jobs.Created, 5)
	assert.Equal(t, models.SubscriptionStatusActive, response.Subscription.Status)

	t.Run("defaults end date to one month", func(t *testing.T) {
		other, err := controller.Create(ctx, uuid.New(), CreateSubscriptionRequest{
			ServiceID: wash.ID,
			StartDate: "2024-06-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-07-01", other.Subscription.EndDate.Format(types.DateLayout))
	})

	paused, err := controller.UpdateStatus(ctx, response.Subscription.ID, customer, UpdateStatusRequest{Status: " Paused "})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusPaused, paused.Status)

	_, err = controller.UpdateStatus(ctx, response.Subscription.ID, uuid.New(), UpdateStatusRequest{Status: "active"})
	assert.True(t, errors.Is(err, types.ErrUnauthorized))

	list, err := controller.List(ctx, customer)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
