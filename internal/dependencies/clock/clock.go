package clock

import "time"

// Timer is a single pending callback that can be stopped before it fires.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// Clock provides time operations that can be mocked for testing.
// AfterFunc exists so the turn-timeout scheduler is deterministic under
// a mock clock.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules fn to run once after d on its own goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn via time.AfterFunc
func (c *RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
