package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat represents an accepted request date layout.
type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatISO8601     DateFormat = time.RFC3339
)

var supportedFormats = []DateFormat{FormatISO8601Date, FormatISO8601}

// StartOfDay truncates t to midnight UTC. Capacity and recurrence work on UTC
// calendar days.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the half-open range [startOfDay(t), startOfDay(t)+1d).
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// ParseDate accepts a bare calendar date or an RFC3339 timestamp and returns
// it in UTC.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}

	for _, format := range supportedFormats {
		if parsed, err := time.Parse(string(format), input); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format %q, expected YYYY-MM-DD or RFC3339", input)
}

// AddMonthsClamped adds calendar months, clamping the day to the last day of
// the target month so Jan 31 + 1 month is Feb 28/29 rather than Mar 2/3.
func AddMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).
		AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(
		firstOfTarget.Year(),
		firstOfTarget.Month(),
		day,
		t.Hour(),
		t.Minute(),
		t.Second(),
		t.Nanosecond(),
		t.Location(),
	)
}
