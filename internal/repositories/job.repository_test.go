package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carwash/internal/models"
	"carwash/internal/repositories"
	"carwash/internal/testutil"
	"carwash/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepository_CountActiveByEmployee(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()
	ctx := context.Background()
	sql := db.SQL

	alice := testutil.CreateEmployee(t, sql, "Alice", 6)
	bob := testutil.CreateEmployee(t, sql, "Bob", 6)
	wash := testutil.CreateService(t, sql, "Exterior", "daily")
	day := testutil.Day(2024, 6, 1)

	testutil.CreateJob(t, sql, alice.ID, wash.ID, day, models.JobStatusScheduled)
	testutil.CreateJob(t, sql, alice.ID, wash.ID, day, models.JobStatusInProgress)
	testutil.CreateJob(t, sql, alice.ID, wash.ID, day, models.JobStatusCompleted)
	testutil.CreateJob(t, sql, alice.ID, wash.ID, day.AddDate(0, 0, 1), models.JobStatusScheduled)
	testutil.CreateJob(t, sql, bob.ID, wash.ID, day, models.JobStatusCancelled)
	deleted := testutil.CreateJob(t, sql, bob.ID, wash.ID, day, models.JobStatusScheduled)
	require.NoError(t, repo.Delete(ctx, sql, deleted.ID))

	counts, err := repo.CountActiveByEmployee(ctx, sql, day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, map[uuid.UUID]int{alice.ID: 2}, counts)

	aliceCount, err := repo.CountActiveForEmployee(ctx, sql, alice.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 2, aliceCount)

	total, err := repo.CountActiveForDay(ctx, sql, day)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestJobRepository_GetAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()
	ctx := context.Background()

	employee := testutil.CreateEmployee(t, db.SQL, "Alice", 6)
	wash := testutil.CreateService(t, db.SQL, "Exterior", "daily")
	job := testutil.CreateJob(t, db.SQL, employee.ID, wash.ID, testutil.Day(2024, 6, 1), models.JobStatusScheduled)

	found, err := repo.GetByID(ctx, db.SQL, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)
	assert.Equal(t, "1 Main St", found.Location.Data().Address)

	require.NoError(t, repo.Delete(ctx, db.SQL, job.ID))

	_, err = repo.GetByID(ctx, db.SQL, job.ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	err = repo.Delete(ctx, db.SQL, job.ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestJobRepository_ListScheduledForEmployeeDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()
	ctx := context.Background()

	employee := testutil.CreateEmployee(t, db.SQL, "Alice", 6)
	wash := testutil.CreateService(t, db.SQL, "Exterior", "daily")
	day := testutil.Day(2024, 6, 1)

	first := testutil.CreateJob(t, db.SQL, employee.ID, wash.ID, day, models.JobStatusScheduled)
	testutil.CreateJob(t, db.SQL, employee.ID, wash.ID, day, models.JobStatusInProgress)
	second := testutil.CreateJob(t, db.SQL, employee.ID, wash.ID, day, models.JobStatusScheduled)

	jobs, err := repo.ListScheduledForEmployeeDay(ctx, db.SQL, employee.ID, day)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)
}

func TestJobRepository_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()
	ctx := context.Background()

	alice := testutil.CreateEmployee(t, db.SQL, "Alice", 6)
	bob := testutil.CreateEmployee(t, db.SQL, "Bob", 6)
	wash := testutil.CreateService(t, db.SQL, "Exterior", "daily")

	testutil.CreateJob(t, db.SQL, alice.ID, wash.ID, testutil.Day(2024, 6, 1), models.JobStatusScheduled)
	testutil.CreateJob(t, db.SQL, alice.ID, wash.ID, testutil.Day(2024, 6, 3), models.JobStatusCompleted)
	testutil.CreateJob(t, db.SQL, bob.ID, wash.ID, testutil.Day(2024, 6, 2), models.JobStatusScheduled)

	tests := []struct {
		name     string
		filter   repositories.JobFilter
		expected int
	}{
		{name: "no filter", filter: repositories.JobFilter{}, expected: 3},
		{name: "by employee", filter: repositories.JobFilter{EmployeeID: &alice.ID}, expected: 2},
		{name: "by status", filter: repositories.JobFilter{Status: models.JobStatusScheduled}, expected: 2},
		{
			name: "by window",
			filter: repositories.JobFilter{
				From: testutil.Day(2024, 6, 2),
				To:   testutil.Day(2024, 6, 3),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.List(ctx, db.SQL, tt.filter)
			require.NoError(t, err)
			assert.Len(t, jobs, tt.expected)
		})
	}
}

func TestJobRepository_SubscriptionJobs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()
	ctx := context.Background()

	employee := testutil.CreateEmployee(t, db.SQL, "Alice", 6)
	wash := testutil.CreateService(t, db.SQL, "Exterior", "daily")
	subscriptionID := uuid.New()

	days := []int{1, 2, 3}
	statuses := []models.JobStatus{models.JobStatusInProgress, models.JobStatusScheduled, models.JobStatusScheduled}
	for i, d := range days {
		job := testutil.CreateJob(t, db.SQL, employee.ID, wash.ID, testutil.Day(2024, 6, d), statuses[i])
		job.SubscriptionID = &subscriptionID
		require.NoError(t, repo.Update(ctx, db.SQL, job))
	}

	dates, err := repo.ScheduledDatesForSubscription(ctx, db.SQL, subscriptionID)
	require.NoError(t, err)
	assert.Len(t, dates, 3)

	affected, err := repo.CancelScheduledForSubscription(ctx, db.SQL, subscriptionID, testutil.Day(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{employee.ID}, affected)

	remaining, err := repo.CountActiveForDay(ctx, db.SQL, testutil.Day(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	affected, err = repo.CancelScheduledForSubscription(ctx, db.SQL, subscriptionID, testutil.Day(2024, 6, 1))
	require.NoError(t, err)
	assert.Empty(t, affected)
}
