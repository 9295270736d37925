package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"carwash/config"
	"carwash/internal/handlers/middleware"
	"carwash/internal/services"
	"carwash/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPreviewCmd(t *testing.T) {
	out, err := run(t, "preview", "--start", "2030-06-01", "--end", "2030-06-29", "--frequency", "weekly-once")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"2030-06-01",
		"2030-06-08",
		"2030-06-15",
		"2030-06-22",
		"2030-06-29",
		"5 washes",
	}, lines)
}

func TestPreviewCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing frequency", args: []string{"preview", "--start", "2030-06-01"}},
		{name: "bad start", args: []string{"preview", "--start", "June 1", "--frequency", "daily"}},
		{name: "unknown frequency", args: []string{"preview", "--start", "2030-06-01", "--frequency", "hourly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTokenCmd(t *testing.T) {
	id := uuid.New()
	out, err := run(t, "token", "--sub", id.String(), "--role", "admin", "--secret", "test-secret")
	require.NoError(t, err)

	actor, err := middleware.ParseToken([]byte("test-secret"), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, id, actor.ID)
	assert.Equal(t, middleware.RoleAdmin, actor.Role)
}

func TestTokenCmd_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "bad subject", args: []string{"token", "--sub", "nope", "--role", "admin", "--secret", "s"}},
		{name: "unknown role", args: []string{"token", "--sub", uuid.NewString(), "--role", "owner", "--secret", "s"}},
		{name: "no secret", args: []string{"token", "--sub", uuid.NewString(), "--role", "customer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRebalanceCmd_InvalidDate(t *testing.T) {
	_, err := run(t, "rebalance", "--date", "tomorrow")
	assert.Error(t, err)
}

func TestSweep_CoversRequestedDays(t *testing.T) {
	day := testutil.Day(2024, 6, 1)
	db := testutil.NewTestDB(t)
	svc, err := services.New(db, config.Config{DefaultDailyJobLimit: 6, MaxJobPhotos: 3}, nil)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return day })

	tests := []struct {
		name     string
		days     int
		expected []string
	}{
		{name: "default single day", days: 1, expected: []string{"2024-06-01"}},
		{name: "three days", days: 3, expected: []string{"2024-06-01", "2024-06-02", "2024-06-03"}},
		{name: "non-positive means one day", days: 0, expected: []string{"2024-06-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := sweep(context.Background(), svc.Rebalance, day, tt.days)
			require.NoError(t, err)

			dates := make([]string, 0, len(summaries))
			for _, summary := range summaries {
				dates = append(dates, summary.Date)
			}
			assert.Equal(t, tt.expected, dates)
		})
	}
}
