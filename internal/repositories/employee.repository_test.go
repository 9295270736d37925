package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carwash/internal/repositories"
	"carwash/internal/testutil"
	"carwash/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_ListAvailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewEmployeeRepository()
	ctx := context.Background()

	alice := testutil.CreateEmployee(t, db.SQL, "Alice", 6)
	bob := testutil.CreateEmployee(t, db.SQL, "Bob", 6)
	bob.IsAvailable = false
	require.NoError(t, repo.Update(ctx, db.SQL, bob))

	available, err := repo.ListAvailable(ctx, db.SQL)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, alice.ID, available[0].ID)

	all, err := repo.List(ctx, db.SQL)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEmployeeRepository_Counters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewEmployeeRepository()
	ctx := context.Background()

	employee := testutil.CreateEmployee(t, db.SQL, "Alice", 0)
	assert.Equal(t, 6, employee.DailyJobLimit)
	assert.Equal(t, 5.0, employee.Rating)

	day := testutil.Day(2024, 6, 1)
	require.NoError(t, repo.SetAssignedToday(ctx, db.SQL, employee.ID, 3, day))
	require.NoError(t, repo.IncrementCompleted(ctx, db.SQL, employee.ID))
	require.NoError(t, repo.IncrementCompleted(ctx, db.SQL, employee.ID))

	employee.ApplyRating(4)
	require.NoError(t, repo.UpdateRating(ctx, db.SQL, employee))

	found, err := repo.GetByID(ctx, db.SQL, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.EffectiveAssignedJobsToday(day.Add(8*time.Hour)))
	assert.Equal(t, 0, found.EffectiveAssignedJobsToday(day.AddDate(0, 0, 1)))
	assert.Equal(t, 2, found.TotalJobsCompleted)
	assert.InDelta(t, 4.0, found.Rating, 0.001)
	assert.Equal(t, 1, found.TotalRatings)
}

func TestEmployeeRepository_GetByIDNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewEmployeeRepository()

	_, err := repo.GetByID(context.Background(), db.SQL, uuid.New())
	assert.True(t, errors.Is(err, types.ErrNotFound))
}
