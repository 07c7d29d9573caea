// Package shell is the application's composition point. It builds the
// three preference engines from config and owns their lifecycle.
// Everything is constructor injected; there is no package-global
// engine state.
package shell

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/grammeal/prefsync/internal/app/engine"
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
	"github.com/grammeal/prefsync/internal/infrastructure/config"
	"github.com/grammeal/prefsync/internal/infrastructure/detect"
	"github.com/grammeal/prefsync/internal/infrastructure/persistence"
)

// Options assembles a shell. Bridge, Probe, and Store may be nil; the
// engines degrade gracefully to the remaining sources.
type Options struct {
	Config  *config.Config
	Bridge  port.HostBridge
	Probe   port.SystemProbe
	Store   port.KeyValueStore
	Surface port.Surface
	Report  port.Reporter
	Logger  zerolog.Logger
}

// Shell owns the three preference engines.
type Shell struct {
	Theme    *engine.Engine[entity.Theme]
	Language *engine.Engine[string]
	Insets   *engine.Engine[entity.Insets]

	LanguageDomain *entity.LanguageDomain

	log zerolog.Logger
}

// New builds the engines. Initialize must be called before State is
// meaningful.
func New(opts Options) (*Shell, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("shell: missing config")
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("shell: missing surface")
	}
	cfg := opts.Config

	themeDom := entity.NewThemeDomain()
	langDom, err := entity.NewLanguageDomain(cfg.Language.Supported)
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	insetsDom := entity.NewInsetsDomain()

	s := &Shell{LanguageDomain: langDom, log: opts.Logger.With().Str("component", "shell").Logger()}

	themeEngine, err := engine.New(engine.Options[entity.Theme]{
		Config: entity.EngineConfig[entity.Theme]{
			Kind:           entity.KindTheme,
			Priority:       cfg.Theme.SourcePriority(),
			Default:        themeDom.Normalize(entity.Theme(cfg.Theme.Default)),
			DebounceWindow: time.Duration(cfg.Theme.DebounceMs) * time.Millisecond,
			MinTriggerGap:  time.Duration(cfg.Theme.MinTriggerGapMs) * time.Millisecond,
			SystemFallback: cfg.Theme.SystemFallback,
			Persist:        cfg.Theme.Persist,
		},
		Domain: themeDom,
		Readers: []port.Reader[entity.Theme]{
			detect.NewHostTheme(opts.Bridge, themeDom, opts.Report),
			detect.NewPersisted[entity.Theme](themeDom, persistence.NewAdapter(opts.Store, entity.KindTheme, opts.Report), opts.Report),
			detect.NewSystemTheme(opts.Probe, opts.Report),
		},
		Applier:   engine.NewThemeApplier(opts.Surface, opts.Bridge, themeDom, opts.Report),
		Store:     opts.Store,
		Notifiers: notifiers(opts, port.EventThemeChanged),
		Report:    opts.Report,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.Theme = themeEngine

	langDefault := langDom.Normalize(cfg.Language.Default)
	languageEngine, err := engine.New(engine.Options[string]{
		Config: entity.EngineConfig[string]{
			Kind:           entity.KindLanguage,
			Priority:       cfg.Language.SourcePriority(),
			Default:        langDefault,
			DebounceWindow: time.Duration(cfg.Language.DebounceMs) * time.Millisecond,
			MinTriggerGap:  time.Duration(cfg.Language.MinTriggerGapMs) * time.Millisecond,
			SystemFallback: cfg.Language.SystemFallback,
			Persist:        cfg.Language.Persist,
		},
		Domain: langDom,
		Readers: []port.Reader[string]{
			detect.NewHostLanguage(opts.Bridge, langDom, opts.Report),
			detect.NewPersisted[string](langDom, persistence.NewAdapter(opts.Store, entity.KindLanguage, opts.Report), opts.Report),
			detect.NewSystemLanguage(opts.Probe, langDom, opts.Report),
		},
		Applier:   engine.NewLanguageApplier(opts.Surface, langDom, opts.Report),
		Store:     opts.Store,
		Notifiers: notifiers(opts, port.EventLanguageChanged),
		Report:    opts.Report,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.Language = languageEngine

	insetsDefault, err := insetsDefaultValue(insetsDom, cfg.Insets.Default)
	if err != nil {
		return nil, fmt.Errorf("shell: insets default: %w", err)
	}
	insetsEngine, err := engine.New(engine.Options[entity.Insets]{
		Config: entity.EngineConfig[entity.Insets]{
			Kind:           entity.KindInsets,
			Priority:       cfg.Insets.SourcePriority(),
			Default:        insetsDefault,
			DebounceWindow: time.Duration(cfg.Insets.DebounceMs) * time.Millisecond,
			MinTriggerGap:  time.Duration(cfg.Insets.MinTriggerGapMs) * time.Millisecond,
			SystemFallback: cfg.Insets.SystemFallback,
			Persist:        cfg.Insets.Persist,
		},
		Domain: insetsDom,
		Readers: []port.Reader[entity.Insets]{
			detect.NewHostInsets(opts.Bridge, insetsDom, opts.Report),
			detect.NewPersisted[entity.Insets](insetsDom, persistence.NewAdapter(opts.Store, entity.KindInsets, opts.Report), opts.Report),
			detect.NewSystemInsets(opts.Probe, opts.Report),
		},
		Applier:   engine.NewInsetsApplier(opts.Surface, opts.Probe, opts.Report),
		Store:     opts.Store,
		Notifiers: notifiers(opts, port.EventViewportChanged),
		Report:    opts.Report,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.Insets = insetsEngine

	return s, nil
}

// Initialize brings all three engines up. Each engine's first
// resolution is synchronous; the three run concurrently.
func (s *Shell) Initialize() error {
	var g errgroup.Group
	g.Go(s.Theme.Initialize)
	g.Go(s.Language.Initialize)
	g.Go(s.Insets.Initialize)
	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Debug().Msg("shell initialized")
	return nil
}

// Dispose tears all three engines down. Idempotent.
func (s *Shell) Dispose() {
	s.Theme.Dispose()
	s.Language.Dispose()
	s.Insets.Dispose()
}

// TriggerAll feeds every engine's scheduler, used when the config file
// reloads.
func (s *Shell) TriggerAll() {
	s.Theme.Trigger()
	s.Language.Trigger()
	s.Insets.Trigger()
}

// notifiers wires the bridge event for the kind plus the system
// probe's change feed.
func notifiers(opts Options, event string) []port.ChangeNotifier {
	var out []port.ChangeNotifier
	if opts.Bridge != nil {
		bridge := opts.Bridge
		out = append(out, port.NotifierFunc(func(fn func()) func() {
			return bridge.OnEvent(event, fn)
		}))
	}
	if opts.Probe != nil {
		out = append(out, port.NotifierFunc(opts.Probe.OnChange))
	}
	return out
}

func insetsDefaultValue(dom *entity.InsetsDomain, raw string) (entity.Insets, error) {
	if raw == "" {
		return entity.Insets{}, nil
	}
	return dom.Decode(raw)
}
