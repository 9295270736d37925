package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "utc afternoon",
			input:    time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "offset zone crossing midnight",
			input:    time.Date(2024, 6, 1, 22, 0, 0, 0, est),
			expected: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(StartOfDay(tt.input)))
		})
	}
}

func TestDayWindow(t *testing.T) {
	start, end := DayWindow(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC),
	))
	assert.False(t, SameDay(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{name: "calendar date", input: "2024-06-01", expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2024-06-01T09:30:00Z", expected: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", input: "2024-06-01T09:30:00-05:00", expected: time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)},
		{name: "empty", input: "", expectError: true},
		{name: "garbage", input: "not-a-date", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, result.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		months   int
		expected time.Time
	}{
		{"mid month", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"jan 31 leap year", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"jan 31 common year", time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"jan 31 plus two", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 2, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"year rollover", time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC), 2, time.Date(2025, 2, 28, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonthsClamped(tt.input, tt.months))
		})
	}
}
