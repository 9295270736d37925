package types

import (
	"errors"
	"fmt"
	"time"
)

// Error taxonomy shared by the scheduling core. Callers match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrCapacityExhausted = errors.New("capacity exhausted")
	ErrValidation        = errors.New("validation error")
)

const DateLayout = "2006-01-02"

func NotFound(resource string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, resource, id)
}

func Unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// CapacityExhausted names the calendar day that has no employee headroom.
func CapacityExhausted(date time.Time) error {
	return fmt.Errorf("%w: no employee has capacity on %s", ErrCapacityExhausted, date.Format(DateLayout))
}
