package services

import "time"

// Clock returns the current instant. Services read "now" only through it.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
