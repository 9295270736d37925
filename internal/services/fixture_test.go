package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"carwash/config"
	"carwash/internal/database"
	"carwash/internal/events"
	"carwash/internal/models"
	"carwash/internal/repositories"
	"carwash/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	db    database.DB
	repos repositories.Repository
	svc   Service

	mu     sync.Mutex
	events []events.MessageType
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	bus := events.New(nil, config.Config{})
	t.Cleanup(func() { _ = bus.Close() })

	svc, err := New(db, config.Config{
		DefaultDailyJobLimit: 6,
		MaxJobPhotos:         3,
		RebalanceAt:          "01:00",
	}, bus)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return now })

	f := &fixture{
		ctx:   context.Background(),
		db:    db,
		repos: repositories.New(db),
		svc:   svc,
	}
	require.NoError(t, bus.Subscribe(events.JOBS_CHANNEL, func(event events.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, event.Type)
		return nil
	}))

	return f
}

func (f *fixture) publishedEvents() []events.MessageType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.MessageType(nil), f.events...)
}

func (f *fixture) reloadJob(t *testing.T, job *models.Job) *models.Job {
	t.Helper()
	found, err := f.repos.Job.GetByID(f.ctx, f.db.SQL, job.ID)
	require.NoError(t, err)
	return found
}

func (f *fixture) reloadEmployee(t *testing.T, employee *models.Employee) *models.Employee {
	t.Helper()
	found, err := f.repos.Employee.GetByID(f.ctx, f.db.SQL, employee.ID)
	require.NoError(t, err)
	return found
}
