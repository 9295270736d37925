package services

import (
	"errors"
	"testing"

	"carwash/internal/models"
	"carwash/internal/testutil"
	"carwash/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityService_ExcludesFullEmployeesAndSortsByLoad(t *testing.T) {
	day := testutil.Day(2024, 6, 1)
	f := newFixture(t, day)
	sql := f.db.SQL

	wash := testutil.CreateService(t, sql, "Exterior", "one-time")
	full := testutil.CreateEmployee(t, sql, "Full", 2)
	busy := testutil.CreateEmployee(t, sql, "Busy", 6)
	idle := testutil.CreateEmployee(t, sql, "Idle", 6)
	away := testutil.CreateEmployee(t, sql, "Away", 6)
	away.IsAvailable = false
	require.NoError(t, sql.Save(away).Error)

	for i := 0; i < 2; i++ {
		testutil.CreateJob(t, sql, full.ID, wash.ID, day, models.JobStatusScheduled)
	}
	testutil.CreateJob(t, sql, busy.ID, wash.ID, day, models.JobStatusInProgress)
	testutil.CreateJob(t, sql, busy.ID, wash.ID, day, models.JobStatusCompleted)
	testutil.CreateJob(t, sql, idle.ID, wash.ID, day.AddDate(0, 0, 1), models.JobStatusScheduled)

	candidates, err := f.svc.Capacity.CapacityFor(f.ctx, sql, day)
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, idle.ID, candidates[0].EmployeeID)
	assert.Equal(t, 0, candidates[0].CurrentLoad)
	assert.Equal(t, busy.ID, candidates[1].EmployeeID)
	assert.Equal(t, 1, candidates[1].CurrentLoad)
	assert.Equal(t, 5, candidates[1].RemainingCapacity)
	for _, c := range candidates {
		assert.Greater(t, c.RemainingCapacity, 0)
	}

	loads, err := f.svc.Capacity.LoadsFor(f.ctx, sql, day)
	require.NoError(t, err)
	require.Len(t, loads, 3)
	assert.Equal(t, full.ID, loads[2].EmployeeID)
	assert.Equal(t, "Full", loads[2].Name)
	assert.Equal(t, 0, loads[2].RemainingCapacity)
}

func TestCapacityService_TieBreakByEmployeeID(t *testing.T) {
	day := testutil.Day(2024, 6, 1)
	f := newFixture(t, day)

	a := testutil.CreateEmployee(t, f.db.SQL, "A", 6)
	b := testutil.CreateEmployee(t, f.db.SQL, "B", 6)

	candidates, err := f.svc.Capacity.CapacityFor(f.ctx, f.db.SQL, day)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first, second := a.ID, b.ID
	if second.String() < first.String() {
		first, second = second, first
	}
	assert.Equal(t, []uuid.UUID{first, second}, []uuid.UUID{candidates[0].EmployeeID, candidates[1].EmployeeID})
}

func TestCapacityService_NoCapacity(t *testing.T) {
	day := testutil.Day(2024, 6, 1)

	t.Run("empty roster", func(t *testing.T) {
		f := newFixture(t, day)

		_, err := f.svc.Capacity.CapacityFor(f.ctx, f.db.SQL, day)
		assert.True(t, errors.Is(err, types.ErrCapacityExhausted))
		assert.Contains(t, err.Error(), "2024-06-01")
	})

	t.Run("everyone full", func(t *testing.T) {
		f := newFixture(t, day)
		wash := testutil.CreateService(t, f.db.SQL, "Exterior", "one-time")
		employee := testutil.CreateEmployee(t, f.db.SQL, "Solo", 1)
		testutil.CreateJob(t, f.db.SQL, employee.ID, wash.ID, day, models.JobStatusScheduled)

		_, err := f.svc.Capacity.CapacityFor(f.ctx, f.db.SQL, day)
		assert.True(t, errors.Is(err, types.ErrCapacityExhausted))
	})
}
