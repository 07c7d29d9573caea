package engine

import (
	"sync"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// testReporter records reported engine errors for assertions.
type testReporter struct {
	mu   sync.Mutex
	errs []port.EngineError
}

func (r *testReporter) Reporter() port.Reporter {
	return func(e port.EngineError) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.errs = append(r.errs, e)
	}
}

func (r *testReporter) All() []port.EngineError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]port.EngineError, len(r.errs))
	copy(out, r.errs)
	return out
}

func (r *testReporter) ByCategory(cat port.ErrorCategory) []port.EngineError {
	var out []port.EngineError
	for _, e := range r.All() {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// fakeProbe is a controllable system probe.
type fakeProbe struct {
	mu        sync.Mutex
	dark      bool
	explicit  bool
	ok        bool
	locales   []string
	envInsets bool
	listeners []func()
}

func (p *fakeProbe) DarkPreference() (bool, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark, p.explicit, p.ok
}

func (p *fakeProbe) Locales() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locales
}

func (p *fakeProbe) SupportsEnvInsets() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.envInsets
}

func (p *fakeProbe) OnChange(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
	return func() {}
}

func (p *fakeProbe) Emit() {
	p.mu.Lock()
	snapshot := make([]func(), len(p.listeners))
	copy(snapshot, p.listeners)
	p.mu.Unlock()
	for _, fn := range snapshot {
		fn()
	}
}

// staticReader returns a fixed candidate.
type staticReader[V any] struct {
	src       entity.Source
	candidate entity.Candidate[V]
}

func (r *staticReader[V]) Source() entity.Source     { return r.src }
func (r *staticReader[V]) Read() entity.Candidate[V] { return r.candidate }

var _ port.Reader[entity.Theme] = (*staticReader[entity.Theme])(nil)
