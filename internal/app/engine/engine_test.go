package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
	"github.com/grammeal/prefsync/internal/infrastructure/persistence"
	"github.com/grammeal/prefsync/internal/infrastructure/surface"
)

func themeOptions(readers []port.Reader[entity.Theme], store port.KeyValueStore, rep *testReporter) Options[entity.Theme] {
	dom := entity.NewThemeDomain()
	surf := surface.NewMemory()
	return Options[entity.Theme]{
		Config: entity.EngineConfig[entity.Theme]{
			Kind:           entity.KindTheme,
			Priority:       entity.DefaultPriority(),
			Default:        entity.ThemeLight,
			DebounceWindow: 10 * time.Millisecond,
			SystemFallback: true,
			Persist:        true,
		},
		Domain:  dom,
		Readers: readers,
		Applier: NewThemeApplier(surf, nil, dom, rep.Reporter()),
		Store:   store,
		Report:  rep.Reporter(),
		Logger:  zerolog.Nop(),
	}
}

func TestEngineInitializeResolvesSynchronously(t *testing.T) {
	rep := &testReporter{}
	readers := []port.Reader[entity.Theme]{
		&staticReader[entity.Theme]{
			src:       entity.SourceHostApp,
			candidate: entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		},
	}
	e, err := New(themeOptions(readers, persistence.NewMemoryStore(), rep))
	require.NoError(t, err)
	defer e.Dispose()

	require.NoError(t, e.Initialize())

	state := e.State()
	assert.Equal(t, entity.ThemeDark, state.Value)
	assert.Equal(t, entity.SourceHostApp, state.Source)
	assert.False(t, state.ResolvedAt.IsZero())

	// Initialize is idempotent.
	require.NoError(t, e.Initialize())
}

func TestEngineFallbackWhenNoSources(t *testing.T) {
	rep := &testReporter{}
	e, err := New(themeOptions(nil, nil, rep))
	require.NoError(t, err)
	defer e.Dispose()

	require.NoError(t, e.Initialize())

	state := e.State()
	assert.Equal(t, entity.ThemeLight, state.Value)
	assert.Equal(t, entity.SourceFallback, state.Source)
	assert.Equal(t, entity.ConfidenceLow, state.Confidence)
}

func TestEnginePersistsResolution(t *testing.T) {
	rep := &testReporter{}
	store := persistence.NewMemoryStore()
	readers := []port.Reader[entity.Theme]{
		&staticReader[entity.Theme]{
			src:       entity.SourceHostApp,
			candidate: entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		},
	}
	e, err := New(themeOptions(readers, store, rep))
	require.NoError(t, err)
	defer e.Dispose()

	require.NoError(t, e.Initialize())

	value, ok, _ := store.Get("preferred-theme")
	require.True(t, ok)
	assert.Equal(t, "dark", value)
	src, _, _ := store.Get("theme-source")
	assert.Equal(t, "host", src)
	conf, _, _ := store.Get("theme-confidence")
	assert.Equal(t, "high", conf)
}

func TestEngineNeverPersistsFallback(t *testing.T) {
	rep := &testReporter{}
	store := persistence.NewMemoryStore()
	e, err := New(themeOptions(nil, store, rep))
	require.NoError(t, err)
	defer e.Dispose()

	require.NoError(t, e.Initialize())

	assert.Equal(t, entity.SourceFallback, e.State().Source)
	assert.Equal(t, 0, store.Len())
}

func TestEngineSetManual(t *testing.T) {
	rep := &testReporter{}
	store := persistence.NewMemoryStore()
	readers := []port.Reader[entity.Theme]{
		&staticReader[entity.Theme]{
			src:       entity.SourceHostApp,
			candidate: entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		},
	}
	e, err := New(themeOptions(readers, store, rep))
	require.NoError(t, err)
	defer e.Dispose()
	require.NoError(t, e.Initialize())

	// The manual override wins immediately, no debounce.
	require.NoError(t, e.SetManual(entity.Theme("LIGHT")))
	state := e.State()
	assert.Equal(t, entity.ThemeLight, state.Value)
	assert.Equal(t, entity.SourceManual, state.Source)
	assert.Equal(t, entity.ConfidenceHigh, state.Confidence)

	value, _, _ := store.Get("preferred-theme")
	assert.Equal(t, "light", value)
}

func TestEngineSetManualInvalid(t *testing.T) {
	rep := &testReporter{}
	readers := []port.Reader[entity.Theme]{
		&staticReader[entity.Theme]{
			src:       entity.SourceHostApp,
			candidate: entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		},
	}
	e, err := New(themeOptions(readers, nil, rep))
	require.NoError(t, err)
	defer e.Dispose()
	require.NoError(t, e.Initialize())

	before := e.State()
	err = e.SetManual(entity.Theme("blurple"))
	require.Error(t, err)

	var engineErr port.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, port.ErrorValidation, engineErr.Category)
	assert.NotContains(t, engineErr.Detail, "blurple")

	// State is untouched and the error also flowed through the channel.
	assert.Equal(t, before, e.State())
	assert.Len(t, rep.ByCategory(port.ErrorValidation), 1)
}

func TestEngineAutoDetectionToggle(t *testing.T) {
	rep := &testReporter{}
	readers := []port.Reader[entity.Theme]{
		&staticReader[entity.Theme]{
			src:       entity.SourceHostApp,
			candidate: entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		},
	}
	e, err := New(themeOptions(readers, nil, rep))
	require.NoError(t, err)
	defer e.Dispose()
	require.NoError(t, e.Initialize())

	assert.Equal(t, entity.SourceHostApp, e.State().Source)

	// Disabling auto detection drops host and system candidates.
	e.SetAutoDetectionEnabled(false)
	assert.Equal(t, entity.SourceFallback, e.State().Source)

	e.SetAutoDetectionEnabled(true)
	assert.Equal(t, entity.SourceHostApp, e.State().Source)
}

func TestEngineNotifierTriggersDebouncedResolution(t *testing.T) {
	rep := &testReporter{}
	probe := &fakeProbe{}
	reader := &staticReader[entity.Theme]{
		src:       entity.SourceHostApp,
		candidate: entity.Absent[entity.Theme](entity.SourceHostApp),
	}

	opts := themeOptions([]port.Reader[entity.Theme]{reader}, nil, rep)
	opts.Notifiers = []port.ChangeNotifier{port.NotifierFunc(probe.OnChange)}
	e, err := New(opts)
	require.NoError(t, err)
	defer e.Dispose()
	require.NoError(t, e.Initialize())
	assert.Equal(t, entity.SourceFallback, e.State().Source)

	var got entity.Resolved[entity.Theme]
	done := make(chan struct{})
	e.Subscribe(func(res entity.Resolved[entity.Theme]) {
		got = res
		close(done)
	})

	// The host starts reporting a value, then the probe fires.
	reader.candidate = entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh)
	probe.Emit()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced resolution never fired")
	}
	assert.Equal(t, entity.ThemeDark, got.Value)
	assert.Equal(t, entity.SourceHostApp, got.Source)
}

// gateApplier blocks while applying one designated value so tests can
// hold an in-flight publish open.
type gateApplier struct {
	mu      sync.Mutex
	applied []entity.Theme
	blockOn entity.Theme
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (a *gateApplier) Apply(res entity.Resolved[entity.Theme]) {
	if res.Value == a.blockOn {
		a.once.Do(func() { close(a.started) })
		<-a.release
	}
	a.mu.Lock()
	a.applied = append(a.applied, res.Value)
	a.mu.Unlock()
}

func (a *gateApplier) Applied() []entity.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]entity.Theme, len(a.applied))
	copy(out, a.applied)
	return out
}

func TestEngineManualOverrideSupersedesInFlightResolution(t *testing.T) {
	rep := &testReporter{}
	reader := &staticReader[entity.Theme]{
		src:       entity.SourceHostApp,
		candidate: entity.Absent[entity.Theme](entity.SourceHostApp),
	}
	applier := &gateApplier{
		blockOn: entity.ThemeDark,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	opts := themeOptions([]port.Reader[entity.Theme]{reader}, nil, rep)
	opts.Applier = applier
	e, err := New(opts)
	require.NoError(t, err)
	defer e.Dispose()
	require.NoError(t, e.Initialize())

	deliveries := make(chan entity.Resolved[entity.Theme], 8)
	e.Subscribe(func(res entity.Resolved[entity.Theme]) { deliveries <- res })

	// The host starts reporting dark; the debounced resolution stalls
	// mid-apply.
	reader.candidate = entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh)
	e.Trigger()
	select {
	case <-applier.started:
	case <-time.After(time.Second):
		t.Fatal("debounced resolution never reached the applier")
	}

	// The manual override lands while the older resolution is still
	// applying, and is visible immediately.
	require.NoError(t, e.SetManual(entity.ThemeLight))
	assert.Equal(t, entity.ThemeLight, e.State().Value)

	close(applier.release)

	var last entity.Resolved[entity.Theme]
waitManual:
	for {
		select {
		case last = <-deliveries:
			if last.Source == entity.SourceManual {
				break waitManual
			}
		case <-time.After(time.Second):
			t.Fatal("manual override never delivered")
		}
	}

	// Surface and final listener delivery both carry the override, not
	// the stale in-flight value.
	assert.Equal(t, entity.ThemeLight, last.Value)
	applied := applier.Applied()
	require.NotEmpty(t, applied)
	assert.Equal(t, entity.ThemeLight, applied[len(applied)-1])
}

func TestEngineStorageFailuresAreFailSoft(t *testing.T) {
	rep := &testReporter{}
	store := persistence.NewMockStore()
	store.GetFunc = func(string) (string, bool, error) { return "", false, errors.New("disk quota exceeded: /secret/path") }
	store.SetFunc = func(string, string) error { return errors.New("disk quota exceeded: /secret/path") }

	readers := []port.Reader[entity.Theme]{
		&staticReader[entity.Theme]{
			src:       entity.SourceHostApp,
			candidate: entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		},
	}
	e, err := New(themeOptions(readers, store, rep))
	require.NoError(t, err)
	defer e.Dispose()

	require.NoError(t, e.Initialize())

	// Resolution succeeded despite the broken store.
	assert.Equal(t, entity.ThemeDark, e.State().Value)

	errs := rep.ByCategory(port.ErrorStorage)
	require.NotEmpty(t, errs)
	for _, se := range errs {
		assert.Contains(t, se.Detail, "class=quota")
		assert.NotContains(t, se.Detail, "/secret/path")
	}
}

func TestEngineDispose(t *testing.T) {
	rep := &testReporter{}
	probe := &fakeProbe{}
	opts := themeOptions(nil, nil, rep)
	opts.Notifiers = []port.ChangeNotifier{port.NotifierFunc(probe.OnChange)}
	e, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	calls := 0
	e.Subscribe(func(entity.Resolved[entity.Theme]) { calls++ })

	e.Dispose()
	e.Dispose() // idempotent

	probe.Emit()
	assert.Error(t, e.SetManual(entity.ThemeDark))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, calls)
}
