package services

import (
	"context"
	"errors"
	"testing"

	"carwash/config"
	"carwash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name     string
	schedule Schedule
	runs     int
	err      error
}

func (j *stubJob) Name() string       { return j.name }
func (j *stubJob) Schedule() Schedule { return j.schedule }
func (j *stubJob) Execute(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestSchedulerService_AddAndTrigger(t *testing.T) {
	scheduler := NewSchedulerService(config.Config{RebalanceAt: "02:30"})

	daily := &stubJob{name: "daily", schedule: Daily}
	failing := &stubJob{name: "failing", schedule: Daily, err: errors.New("boom")}

	require.NoError(t, scheduler.AddJob(daily))
	require.NoError(t, scheduler.AddJob(failing))
	assert.Equal(t, 2, scheduler.GetJobCount())

	require.NoError(t, scheduler.TriggerJobByName(context.Background(), "daily"))
	assert.Equal(t, 1, daily.runs)

	assert.Error(t, scheduler.TriggerJobByName(context.Background(), "failing"))

	err := scheduler.TriggerJobByName(context.Background(), "missing")
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestSchedulerService_RejectsUnknownSchedule(t *testing.T) {
	scheduler := NewSchedulerService(config.Config{})

	assert.Error(t, scheduler.AddJob(&stubJob{name: "odd", schedule: Schedule(42)}))
	assert.Error(t, scheduler.AddJob(&stubJob{name: "unset"}))
	assert.Equal(t, 0, scheduler.GetJobCount())
}

func TestSchedulerService_StartStop(t *testing.T) {
	scheduler := NewSchedulerService(config.Config{RebalanceAt: "01:00"})
	ctx := context.Background()

	require.NoError(t, scheduler.Start(ctx))
	assert.False(t, scheduler.IsRunning(), "no jobs means no start")

	require.NoError(t, scheduler.AddJob(&stubJob{name: "daily", schedule: Daily}))
	require.NoError(t, scheduler.Start(ctx))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(ctx))
	assert.False(t, scheduler.IsRunning())
}
