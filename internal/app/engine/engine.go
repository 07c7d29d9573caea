// Package engine orchestrates preference detection: it invokes the
// source readers, runs the pure resolver, updates the state store,
// projects the result onto the output surfaces, and persists it. One
// engine instance governs one preference kind; theme, language, and
// layout insets are three instantiations of the same machinery.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
	"github.com/grammeal/prefsync/internal/domain/service"
	"github.com/grammeal/prefsync/internal/infrastructure/persistence"
)

// Options assembles an engine instance. Everything is constructor
// injected; the engine holds no global state.
type Options[V any] struct {
	Config entity.EngineConfig[V]
	Domain entity.Domain[V]

	// Readers probe the signal sources. Order is irrelevant; the
	// config's priority list decides precedence.
	Readers []port.Reader[V]

	// Applier projects resolutions onto the output surfaces.
	Applier Applier[V]

	// Store is the device key-value store. May be nil; persistence
	// then degrades to in-memory-only.
	Store port.KeyValueStore

	// Notifiers are the raw change-event feeds (bridge events, system
	// signals, config reloads) that drive debounced re-resolution.
	Notifiers []port.ChangeNotifier

	Report port.Reporter
	Logger zerolog.Logger

	// Clock stamps resolutions; defaults to time.Now.
	Clock func() time.Time
}

// Engine implements port.Engine for one preference kind.
type Engine[V any] struct {
	cfg     entity.EngineConfig[V]
	dom     entity.Domain[V]
	readers []port.Reader[V]
	applier Applier[V]
	adapter *persistence.Adapter
	keys    persistence.Keys
	store   *stateStore[V]
	sched   *scheduler
	report  port.Reporter
	log     zerolog.Logger
	clock   func() time.Time

	mu           sync.Mutex
	seq          uint64
	manual       *V
	auto         bool
	notifiers    []port.ChangeNotifier
	offs         []func()
	initialized  bool
	disposed     bool
	publishing   bool
	publishedSeq uint64
	published    *entity.Resolved[V]
}

var _ port.Engine[entity.Theme] = (*Engine[entity.Theme])(nil)

// New builds an engine instance. The first resolution runs in
// Initialize, not here.
func New[V any](opts Options[V]) (*Engine[V], error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Domain == nil {
		return nil, fmt.Errorf("engine %s: missing domain", opts.Config.Kind)
	}
	if opts.Applier == nil {
		return nil, fmt.Errorf("engine %s: missing applier", opts.Config.Kind)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	e := &Engine[V]{
		cfg:       opts.Config,
		dom:       opts.Domain,
		readers:   opts.Readers,
		applier:   opts.Applier,
		adapter:   persistence.NewAdapter(opts.Store, opts.Config.Kind, opts.Report),
		keys:      persistence.KeysFor(opts.Config.Kind),
		report:    opts.Report,
		log:       opts.Logger.With().Str("component", "engine").Str("kind", string(opts.Config.Kind)).Logger(),
		clock:     clock,
		auto:      true,
		notifiers: opts.Notifiers,
	}
	e.store = newStateStore[V](opts.Config.Kind, opts.Domain.Equal, opts.Report)
	e.sched = newScheduler(opts.Config.DebounceWindow, opts.Config.MinTriggerGap, e.resolveNow)
	return e, nil
}

// Initialize implements port.Engine. It attaches the change triggers
// and performs the first resolution synchronously, so State is valid
// as soon as Initialize returns.
func (e *Engine[V]) Initialize() error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return fmt.Errorf("engine %s: disposed", e.cfg.Kind)
	}
	if e.initialized {
		e.mu.Unlock()
		return nil
	}
	e.initialized = true
	for _, n := range e.notifiers {
		if n == nil {
			continue
		}
		e.offs = append(e.offs, n.OnChange(e.sched.Trigger))
	}
	e.mu.Unlock()

	e.resolveNow()
	e.log.Debug().Int("notifiers", len(e.offs)).Msg("engine initialized")
	return nil
}

// Dispose implements port.Engine. Safe to call multiple times; it
// leaves no dangling timers or listeners.
func (e *Engine[V]) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.disposed = true
	offs := e.offs
	e.offs = nil
	e.mu.Unlock()

	e.sched.Dispose()
	for _, off := range offs {
		off()
	}
	e.store.Close()
	e.log.Debug().Msg("engine disposed")
}

// State implements port.Engine.
func (e *Engine[V]) State() entity.Resolved[V] {
	return e.store.State()
}

// Subscribe implements port.Engine.
func (e *Engine[V]) Subscribe(fn func(entity.Resolved[V])) func() {
	return e.store.Subscribe(fn)
}

// SetManual implements port.Engine. Valid overrides re-resolve
// immediately, bypassing the debounce window.
func (e *Engine[V]) SetManual(value V) error {
	if err := e.dom.Validate(value); err != nil {
		verr := port.EngineError{
			Category: port.ErrorValidation,
			Kind:     e.cfg.Kind,
			Op:       "set-manual",
			Detail:   "value outside supported domain",
		}
		// Reported through the channel as well, so silent callers
		// don't lose the signal.
		e.report.Report(verr)
		return verr
	}

	normalized := e.dom.Normalize(value)
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return fmt.Errorf("engine %s: disposed", e.cfg.Kind)
	}
	e.manual = &normalized
	e.mu.Unlock()

	e.resolveNow()
	return nil
}

// SetAutoDetectionEnabled implements port.Engine.
func (e *Engine[V]) SetAutoDetectionEnabled(enabled bool) {
	e.mu.Lock()
	if e.disposed || e.auto == enabled {
		e.mu.Unlock()
		return
	}
	e.auto = enabled
	e.mu.Unlock()

	e.resolveNow()
}

// Trigger feeds the debounced scheduler. Exposed for composition
// points that receive raw events outside the registered notifiers.
func (e *Engine[V]) Trigger() {
	e.sched.Trigger()
}

// resolveNow collects candidates, resolves, and installs the result.
// Resolutions are sequence-stamped; a stale resolution losing the race
// to a newer one is discarded, never merged.
func (e *Engine[V]) resolveNow() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.seq++
	seq := e.seq
	candidates := e.collectCandidates()
	e.mu.Unlock()

	res := service.Resolve(e.dom, candidates, e.cfg, e.clock())

	if installed, _ := e.store.ReplaceIfNewer(seq, res); !installed {
		return
	}
	e.publishLatest()
}

// publishLatest drains installed resolutions onto the surface, the
// listeners, and the persistence adapter. Exactly one goroutine
// publishes at a time; resolutions installed while it is mid-publish
// are picked up by the same loop on its next pass, so the surface and
// the final listener delivery always carry the newest installed state
// even when an older in-flight resolution applied first. Callers that
// find a publisher already running return immediately instead of
// blocking, which also keeps re-resolution from inside a listener
// deadlock-free.
func (e *Engine[V]) publishLatest() {
	e.mu.Lock()
	if e.publishing {
		e.mu.Unlock()
		return
	}
	e.publishing = true
	e.mu.Unlock()

	for {
		e.mu.Lock()
		seq, res := e.store.Current()
		if seq == e.publishedSeq {
			e.publishing = false
			e.mu.Unlock()
			return
		}
		prev := e.published
		e.publishedSeq = seq
		e.published = &res
		e.mu.Unlock()

		if prev != nil && res.Same(*prev, e.dom.Equal) {
			continue
		}

		e.log.Debug().
			Str("source", string(res.Source)).
			Str("confidence", res.Confidence.String()).
			Msg("preference resolved")

		e.applier.Apply(res)
		e.store.Notify(res)
		e.persist(res)
	}
}

// collectCandidates gathers the manual override plus one reading per
// enabled source. Caller holds e.mu.
func (e *Engine[V]) collectCandidates() []entity.Candidate[V] {
	candidates := make([]entity.Candidate[V], 0, len(e.readers)+1)
	if e.manual != nil {
		candidates = append(candidates, entity.Present(entity.SourceManual, *e.manual, entity.ConfidenceHigh))
	}
	for _, r := range e.readers {
		src := r.Source()
		if !e.auto && (src == entity.SourceHostApp || src == entity.SourceSystem) {
			continue
		}
		if src == entity.SourceSystem && !e.cfg.SystemFallback {
			continue
		}
		candidates = append(candidates, r.Read())
	}
	return candidates
}

// persist writes the value/source/confidence triplet. Failures are
// fail-soft: the session continues with the in-memory resolution.
func (e *Engine[V]) persist(res entity.Resolved[V]) {
	if !e.cfg.Persist || res.Source == entity.SourceFallback {
		return
	}
	if !e.adapter.Set(e.keys.Value, e.dom.Encode(res.Value)) {
		return
	}
	e.adapter.Set(e.keys.Source, string(res.Source))
	e.adapter.Set(e.keys.Confidence, res.Confidence.String())
}
