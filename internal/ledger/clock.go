package ledger

import (
	"math"
	"time"
)

// Clock provides the current time for timestamps and deadline calculations.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock time in UTC.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().In(time.UTC)
})

// FixedClock always returns t. It is meant for tests and replays.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time {
		return t
	})
}

// daysUntil returns the number of calendar days from now until t.
//
// Both times are truncated to midnight in the location of now, so a deadline
// later today is 0 days away and one that has passed is negative.
func daysUntil(now, t time.Time) int {
	loc := now.Location()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	t = t.In(loc)
	to := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

	return int(math.Round(to.Sub(from).Hours() / 24))
}
