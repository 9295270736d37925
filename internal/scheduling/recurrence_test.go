package scheduling

import (
	"errors"
	"testing"
	"time"

	"carwash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input       string
		expected    Frequency
		expectError bool
	}{
		{input: "daily", expected: FrequencyDaily},
		{input: " Weekly-Once ", expected: FrequencyWeeklyOnce},
		{input: "2-days-once", expected: FrequencyTwoDays},
		{input: "3-days-once", expected: FrequencyThreeDays},
		{input: "weekly", expected: FrequencyWeekly},
		{input: "biweekly", expected: FrequencyBiweekly},
		{input: "monthly", expected: FrequencyMonthly},
		{input: "one-time", expected: FrequencyOneTime},
		{input: "fortnightly", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseFrequency(tt.input)
			if tt.expectError {
				assert.True(t, errors.Is(err, types.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMaterialize_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		frequency string
		expected  []time.Time
	}{
		{
			name:      "weekly-once across june",
			start:     day(2024, 6, 1),
			end:       day(2024, 6, 29),
			frequency: "weekly-once",
			expected:  []time.Time{day(2024, 6, 1), day(2024, 6, 8), day(2024, 6, 15), day(2024, 6, 22), day(2024, 6, 29)},
		},
		{
			name:      "daily three days",
			start:     day(2024, 6, 1),
			end:       day(2024, 6, 3),
			frequency: "daily",
			expected:  []time.Time{day(2024, 6, 1), day(2024, 6, 2), day(2024, 6, 3)},
		},
		{
			name:      "every two days stops before end",
			start:     day(2024, 6, 1),
			end:       day(2024, 6, 6),
			frequency: "2-days-once",
			expected:  []time.Time{day(2024, 6, 1), day(2024, 6, 3), day(2024, 6, 5)},
		},
		{
			name:      "every three days",
			start:     day(2024, 6, 1),
			end:       day(2024, 6, 10),
			frequency: "3-days-once",
			expected:  []time.Time{day(2024, 6, 1), day(2024, 6, 4), day(2024, 6, 7), day(2024, 6, 10)},
		},
		{
			name:      "biweekly",
			start:     day(2024, 6, 1),
			end:       day(2024, 7, 1),
			frequency: "biweekly",
			expected:  []time.Time{day(2024, 6, 1), day(2024, 6, 15), day(2024, 6, 29)},
		},
		{
			name:      "monthly clamps to month end",
			start:     day(2024, 1, 31),
			end:       day(2024, 4, 30),
			frequency: "monthly",
			expected:  []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 31), day(2024, 4, 30)},
		},
		{
			name:      "time of day is dropped",
			start:     time.Date(2024, 6, 1, 17, 45, 0, 0, time.UTC),
			end:       time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC),
			frequency: "daily",
			expected:  []time.Time{day(2024, 6, 1), day(2024, 6, 2)},
		},
		{
			name:      "single day window",
			start:     day(2024, 6, 1),
			end:       day(2024, 6, 1),
			frequency: "weekly",
			expected:  []time.Time{day(2024, 6, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Materialize(tt.start, tt.end, tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMaterialize_OneTimeIgnoresWindow(t *testing.T) {
	windows := []struct {
		name string
		end  time.Time
	}{
		{name: "no end", end: time.Time{}},
		{name: "end before start", end: day(2020, 1, 1)},
		{name: "long window", end: day(2030, 1, 1)},
	}

	for _, w := range windows {
		t.Run(w.name, func(t *testing.T) {
			result, err := Materialize(day(2024, 6, 1), w.end, "one-time")
			require.NoError(t, err)
			assert.Equal(t, []time.Time{day(2024, 6, 1)}, result)
		})
	}
}

func TestMaterialize_Properties(t *testing.T) {
	frequencies := []string{"daily", "2-days-once", "3-days-once", "weekly", "weekly-once", "biweekly", "monthly"}
	starts := []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 6, 1), day(2024, 12, 30)}
	spans := []int{0, 1, 6, 13, 45, 120}

	for _, frequency := range frequencies {
		for _, start := range starts {
			for _, span := range spans {
				end := start.AddDate(0, 0, span)

				first, err := Materialize(start, end, frequency)
				require.NoError(t, err)
				second, err := Materialize(start, end, frequency)
				require.NoError(t, err)

				assert.Equal(t, first, second, "materialize must be repeatable")
				require.NotEmpty(t, first)
				assert.Equal(t, start, first[0])

				for i, date := range first {
					assert.False(t, date.Before(start), "%s before start", date)
					assert.False(t, date.After(end), "%s after end", date)
					if i > 0 {
						assert.True(t, date.After(first[i-1]), "dates must strictly increase")
					}
				}
			}
		}
	}
}

func TestMaterialize_Errors(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		frequency string
	}{
		{name: "unknown frequency", start: day(2024, 6, 1), end: day(2024, 6, 30), frequency: "hourly"},
		{name: "missing start", end: day(2024, 6, 30), frequency: "daily"},
		{name: "missing end", start: day(2024, 6, 1), frequency: "daily"},
		{name: "end before start", start: day(2024, 6, 10), end: day(2024, 6, 1), frequency: "daily"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Materialize(tt.start, tt.end, tt.frequency)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, types.ErrValidation))
		})
	}
}

func TestMaterialize_LongDailyRange(t *testing.T) {
	dates, err := Materialize(day(2024, 1, 1), day(2025, 12, 31), "daily")
	require.NoError(t, err)

	require.Len(t, dates, 731)
	assert.Equal(t, day(2024, 1, 1), dates[0])
	assert.Equal(t, day(2025, 12, 31), dates[len(dates)-1])
}

func TestFrequency_Next(t *testing.T) {
	tests := []struct {
		frequency Frequency
		from      time.Time
		expected  time.Time
		ok        bool
	}{
		{FrequencyDaily, day(2024, 6, 1), day(2024, 6, 2), true},
		{FrequencyWeekly, day(2024, 6, 1), day(2024, 6, 8), true},
		{FrequencyBiweekly, day(2024, 6, 1), day(2024, 6, 15), true},
		{FrequencyMonthly, day(2024, 1, 31), day(2024, 2, 29), true},
		{FrequencyOneTime, day(2024, 6, 1), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			next, ok := tt.frequency.Next(tt.from)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, next)
		})
	}
}
