package engine

import (
	"sync"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// listenerEntry wraps a callback to enable pointer comparison for
// removal.
type listenerEntry[V any] struct {
	fn func(entity.Resolved[V])
}

// stateStore holds the current resolved preference and the listener
// bus. The current value is owned exclusively by the store and
// replaced, never mutated, by the orchestrating engine.
type stateStore[V any] struct {
	mu        sync.Mutex
	kind      entity.Kind
	equal     func(a, b V) bool
	report    port.Reporter
	current   entity.Resolved[V]
	seq       uint64
	listeners []*listenerEntry[V]
	closed    bool
}

func newStateStore[V any](kind entity.Kind, equal func(a, b V) bool, report port.Reporter) *stateStore[V] {
	return &stateStore[V]{kind: kind, equal: equal, report: report}
}

// State returns the current resolved preference synchronously.
func (s *stateStore[V]) State() entity.Resolved[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the current resolution together with the sequence
// number that installed it.
func (s *stateStore[V]) Current() (uint64, entity.Resolved[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq, s.current
}

// Subscribe registers a listener. Registration after Close is a no-op.
func (s *stateStore[V]) Subscribe(fn func(entity.Resolved[V])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	entry := &listenerEntry[V]{fn: fn}
	s.listeners = append(s.listeners, entry)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l == entry {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// ReplaceIfNewer installs a resolution if its sequence number is not
// stale. Returns whether it was installed and whether it differs from
// the previous value for change-notification purposes. Earlier
// in-flight resolutions that would produce a stale state are discarded
// (last-resolution-wins), never merged.
func (s *stateStore[V]) ReplaceIfNewer(seq uint64, next entity.Resolved[V]) (installed, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.seq {
		return false, false
	}
	prev := s.current
	hadPrev := s.seq > 0
	s.seq = seq
	s.current = next

	changed = !hadPrev || !next.Same(prev, s.equal)
	return true, changed
}

// Notify delivers a resolution to every listener synchronously, in
// subscription order. The listener list is snapshotted before
// iterating so re-entrant subscribe/unsubscribe calls are neither lost
// nor double-applied. A panicking listener is reported and does not
// prevent delivery to subsequent listeners.
func (s *stateStore[V]) Notify(res entity.Resolved[V]) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snapshot := make([]*listenerEntry[V], len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, entry := range snapshot {
		s.invoke(entry.fn, res)
	}
}

func (s *stateStore[V]) invoke(fn func(entity.Resolved[V]), res entity.Resolved[V]) {
	defer func() {
		if r := recover(); r != nil {
			s.report.Report(port.EngineError{
				Category: port.ErrorDetection,
				Kind:     s.kind,
				Op:       "notify-listener",
				Detail:   "listener panicked",
			})
		}
	}()
	fn(res)
}

// Close deregisters all listeners. The current value remains readable.
func (s *stateStore[V]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = nil
}
