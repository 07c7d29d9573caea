// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grammeal/prefsync/internal/app/shell"
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/cli/styles"
	"github.com/grammeal/prefsync/internal/infrastructure/config"
	"github.com/grammeal/prefsync/internal/infrastructure/persistence/sqlite"
	"github.com/grammeal/prefsync/internal/infrastructure/surface"
	"github.com/grammeal/prefsync/internal/infrastructure/system"
	"github.com/grammeal/prefsync/internal/infrastructure/telegram"
	"github.com/grammeal/prefsync/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config  *config.Config
	Manager *config.Manager
	Theme   *styles.Theme
	Surface *surface.Memory
	Probe   *system.Probe
	Errors  *ErrorLog
	Logger  zerolog.Logger

	store *sqlite.Store
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := zerolog.InfoLevel
	if parsed, perr := zerolog.ParseLevel(cfg.Logging.Level); perr == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	logger := logging.New(logging.Config{
		Level:      level,
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})

	app := &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		Surface: surface.NewMemory(),
		Probe:   system.NewProbe(),
		Errors:  NewErrorLog(logger),
		Logger:  logger,
	}

	// Preference storage is fail-soft everywhere; an unopenable
	// database degrades the session to in-memory resolution.
	dbPath, err := config.DatabasePath(cfg)
	if err == nil {
		if store, serr := sqlite.Open(dbPath); serr == nil {
			app.store = store
			logger.Debug().Str("db_path", dbPath).Msg("preference store opened")
		} else {
			logger.Warn().Err(serr).Msg("preference store unavailable, continuing without persistence")
		}
	}

	return app, nil
}

// Bridge builds the host bridge from PREFSYNC_LAUNCH_PARAMS, which
// carries the launch fragment a real host would pass. Returns nil when
// the variable is unset; detection then falls back to system signals.
func (a *App) Bridge() *telegram.Bridge {
	return telegram.FromLaunchParams(os.Getenv("PREFSYNC_LAUNCH_PARAMS"), a.Errors.Reporter())
}

// NewShell composes the three engines around the given bridge. bridge
// may be nil.
func (a *App) NewShell(bridge *telegram.Bridge) (*shell.Shell, error) {
	var hostBridge port.HostBridge
	if bridge != nil {
		hostBridge = bridge
	}
	var store port.KeyValueStore
	if a.store != nil {
		store = a.store
	}
	return shell.New(shell.Options{
		Config:  a.Config,
		Bridge:  hostBridge,
		Probe:   a.Probe,
		Store:   store,
		Surface: a.Surface,
		Report:  a.Errors.Reporter(),
		Logger:  a.Logger,
	})
}

// Close releases all resources.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// ErrorLog collects engine errors for display and mirrors them to the
// logger.
type ErrorLog struct {
	mu     sync.Mutex
	errs   []port.EngineError
	logger zerolog.Logger
}

// NewErrorLog creates an empty error collector.
func NewErrorLog(logger zerolog.Logger) *ErrorLog {
	return &ErrorLog{logger: logger}
}

// Reporter returns the port.Reporter feeding this log.
func (l *ErrorLog) Reporter() port.Reporter {
	return func(e port.EngineError) {
		l.mu.Lock()
		l.errs = append(l.errs, e)
		l.mu.Unlock()
		l.logger.Warn().
			Str("category", string(e.Category)).
			Str("kind", string(e.Kind)).
			Str("op", e.Op).
			Str("detail", e.Detail).
			Msg("engine error")
	}
}

// All returns the collected errors in order.
func (l *ErrorLog) All() []port.EngineError {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]port.EngineError, len(l.errs))
	copy(out, l.errs)
	return out
}
