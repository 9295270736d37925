package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_CanTransitionTo(t *testing.T) {
	all := []JobStatus{
		JobStatusScheduled,
		JobStatusInProgress,
		JobStatusCompleted,
		JobStatusCancelled,
		JobStatusNoShow,
	}

	allowed := map[JobStatus]map[JobStatus]bool{
		JobStatusScheduled: {
			JobStatusInProgress: true,
			JobStatusCancelled:  true,
			JobStatusNoShow:     true,
		},
		JobStatusInProgress: {
			JobStatusCompleted: true,
			JobStatusNoShow:    true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, allowed[from][to], from.CanTransitionTo(to))
			})
		}
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, JobStatusScheduled.IsTerminal())
	assert.False(t, JobStatusInProgress.IsTerminal())
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusCancelled.IsTerminal())
	assert.True(t, JobStatusNoShow.IsTerminal())
}

func TestActiveJobStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"scheduled", "in-progress"}, ActiveJobStatuses())
}

func TestJob_BeforeCreate(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)

	t.Run("defaults status and normalizes date", func(t *testing.T) {
		job := &Job{
			EmployeeID:    uuid.New(),
			CustomerID:    uuid.New(),
			ServiceID:     uuid.New(),
			ScheduledDate: time.Date(2024, 6, 1, 9, 0, 0, 0, est),
		}

		require.NoError(t, job.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, JobStatusScheduled, job.Status)
		assert.Equal(t, time.UTC, job.ScheduledDate.Location())
		assert.Equal(t, 14, job.ScheduledDate.Hour())
	})

	t.Run("rejects missing references", func(t *testing.T) {
		job := &Job{CustomerID: uuid.New(), ServiceID: uuid.New(), ScheduledDate: time.Now()}
		assert.Error(t, job.BeforeCreate(nil))
	})

	t.Run("rejects missing date", func(t *testing.T) {
		job := &Job{EmployeeID: uuid.New(), CustomerID: uuid.New(), ServiceID: uuid.New()}
		assert.Error(t, job.BeforeCreate(nil))
	})
}

func TestJob_Photos(t *testing.T) {
	job := &Job{BeforePhotos: []string{"a"}, AfterPhotos: []string{"b", "c"}}
	assert.Equal(t, []string{"a"}, job.Photos(PhotoKindBefore))
	assert.Equal(t, []string{"b", "c"}, job.Photos(PhotoKindAfter))
}
