package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/unogame-go/internal/dependencies/clock"
	"github.com/mcoot/unogame-go/internal/model"
)

// Scheduler owns the per-session turn timers. At most one timer is
// outstanding per channel at any instant: arming replaces any pending
// timer, and cancellation is effective before the replacement arms.
type Scheduler struct {
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	timers map[model.ChannelID]*entry
}

type entry struct {
	timer clock.Timer
}

// New creates a Scheduler
func New(clock clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		logger: logger,
		timers: make(map[model.ChannelID]*entry),
	}
}

// Arm schedules onFire to run once after seconds, replacing any pending
// timer for the channel. The disabled sentinel never arms: the channel
// is left with no timer at all.
func (s *Scheduler) Arm(channel model.ChannelID, seconds int, onFire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(channel)

	if seconds == model.TimeoutDisabled {
		return
	}

	e := &entry{}
	e.timer = s.clock.AfterFunc(time.Duration(seconds)*time.Second, func() {
		s.mu.Lock()
		// A stale fire racing a re-arm must not clear or shadow the
		// newer timer.
		if s.timers[channel] != e {
			s.mu.Unlock()
			return
		}
		delete(s.timers, channel)
		s.mu.Unlock()

		onFire()
	})
	s.timers[channel] = e

	s.logger.Debug("turn timer armed",
		slog.String("channel", string(channel)),
		slog.Int("seconds", seconds),
	)
}

// Cancel stops the channel's pending timer without firing it. Safe to
// call when no timer is armed.
func (s *Scheduler) Cancel(channel model.ChannelID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(channel)
}

func (s *Scheduler) cancelLocked(channel model.ChannelID) {
	if e, ok := s.timers[channel]; ok {
		e.timer.Stop()
		delete(s.timers, channel)
	}
}

// Pending reports whether a timer is currently armed for the channel.
func (s *Scheduler) Pending(channel model.ChannelID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[channel]
	return ok
}
