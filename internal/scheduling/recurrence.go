// Package scheduling holds the pure parts of job scheduling: expanding a
// frequency code into calendar dates and ranking employees by load. Nothing
// here touches the store.
package scheduling

import (
	"strings"
	"time"

	"carwash/internal/types"
	"carwash/internal/utils"
)

// Frequency is a recurrence code. Two vocabularies are accepted: the
// subscription one (daily, weekly, biweekly, monthly) and the bulk schedule
// one (daily, 2-days-once, 3-days-once, weekly-once, one-time).
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwoDays    Frequency = "2-days-once"
	FrequencyThreeDays  Frequency = "3-days-once"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyWeeklyOnce Frequency = "weekly-once"
	FrequencyBiweekly   Frequency = "biweekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyOneTime    Frequency = "one-time"
)

var daySteps = map[Frequency]int{
	FrequencyDaily:      1,
	FrequencyTwoDays:    2,
	FrequencyThreeDays:  3,
	FrequencyWeekly:     7,
	FrequencyWeeklyOnce: 7,
	FrequencyBiweekly:   14,
}

func ParseFrequency(code string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := daySteps[f]; ok {
		return f, nil
	}
	if f == FrequencyMonthly || f == FrequencyOneTime {
		return f, nil
	}
	return "", types.Validation("unknown frequency %q", code)
}

func (f Frequency) IsRecurring() bool {
	return f != FrequencyOneTime
}

// Occurrence returns the n-th occurrence (0-based) counted from start. Each
// occurrence is computed from start directly so monthly clamping never
// drifts (Jan 31, Feb 29, Mar 31, ...).
func (f Frequency) Occurrence(start time.Time, n int) time.Time {
	if f == FrequencyMonthly {
		return utils.AddMonthsClamped(start, n)
	}
	return start.AddDate(0, 0, n*daySteps[f])
}

// Next steps one period forward from t. ok is false for one-time.
func (f Frequency) Next(t time.Time) (time.Time, bool) {
	if !f.IsRecurring() {
		return time.Time{}, false
	}
	return f.Occurrence(t, 1), true
}

// Materialize expands [start, end] into the ordered wash dates for frequency
// code. start is inclusive; stepping stops once the next candidate would be
// after end. one-time always yields exactly start. The result depends only
// on the inputs.
func Materialize(start, end time.Time, code string) ([]time.Time, error) {
	frequency, err := ParseFrequency(code)
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, types.Validation("start date is required")
	}

	start = utils.StartOfDay(start)
	if frequency == FrequencyOneTime {
		return []time.Time{start}, nil
	}

	if end.IsZero() {
		return nil, types.Validation("end date is required for %s", frequency)
	}
	end = utils.StartOfDay(end)
	if end.Before(start) {
		return nil, types.Validation(
			"end date %s is before start date %s",
			end.Format(types.DateLayout),
			start.Format(types.DateLayout),
		)
	}

	dates := make([]time.Time, 0)
	for n := 0; ; n++ {
		candidate := frequency.Occurrence(start, n)
		if candidate.After(end) {
			break
		}
		dates = append(dates, candidate)
	}

	return dates, nil
}
