package engine

import (
	"sync"
	"time"
)

// scheduler coalesces bursts of raw change triggers into a single
// re-resolution per quiet window (trailing-edge debounce). A monotonic
// guard additionally drops re-entrant triggers inside a short minimum
// spacing, absorbing duplicate events from multiple listeners on the
// same underlying signal.
type scheduler struct {
	mu       sync.Mutex
	window   time.Duration
	minGap   time.Duration
	fn       func()
	timer    *time.Timer
	last     time.Time
	disposed bool
}

func newScheduler(window, minGap time.Duration, fn func()) *scheduler {
	return &scheduler{window: window, minGap: minGap, fn: fn}
}

// Trigger registers a raw change event. The last trigger inside a
// window wins: each accepted trigger restarts the quiet timer.
func (s *scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}

	now := time.Now()
	if !s.last.IsZero() && now.Sub(s.last) < s.minGap {
		return
	}
	s.last = now

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.run)
}

// run fires the scheduled resolution unless disposal won the race.
func (s *scheduler) run() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	fn := s.fn
	s.mu.Unlock()
	fn()
}

// Dispose cancels any pending scheduled resolution. Idempotent; no
// resolution fires afterwards.
func (s *scheduler) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disposed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
