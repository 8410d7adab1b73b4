package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mcoot/unogame-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Timers
// scheduled via AfterFunc fire synchronously from Advance/Set, so tests
// control exactly when timeouts happen.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*mockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// Stop cancels the timer if it has not fired yet
func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers fn to fire when the clock is advanced past d
func (c *MockClock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{clock: c, deadline: c.current.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing any
// timers whose deadlines pass, in deadline order.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
	c.fireDue()
}

// Set sets the clock to the given time, firing any timers due
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
	c.fireDue()
}

// PendingTimers reports how many timers are armed and not yet fired
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (c *MockClock) fireDue() {
	for {
		c.mu.Lock()
		var due *mockTimer
		sort.SliceStable(c.timers, func(i, j int) bool {
			return c.timers[i].deadline.Before(c.timers[j].deadline)
		})
		for _, t := range c.timers {
			if !t.fired && !t.stopped && !t.deadline.After(c.current) {
				due = t
				break
			}
		}
		if due == nil {
			c.mu.Unlock()
			return
		}
		due.fired = true
		c.mu.Unlock()

		// Fire outside the lock; callbacks may re-arm via AfterFunc.
		due.fn()
	}
}
