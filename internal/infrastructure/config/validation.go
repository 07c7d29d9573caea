package config

import (
	"fmt"

	"github.com/grammeal/prefsync/internal/domain/entity"
)

const (
	minDebounceMs = 0
	maxDebounceMs = 5000
)

// validateConfig checks every configurable value before the engines
// see it.
func validateConfig(cfg *Config) error {
	if err := validateKind("theme", &cfg.Theme); err != nil {
		return err
	}
	if err := validateKind("language", &cfg.Language.KindConfig); err != nil {
		return err
	}
	if err := validateKind("insets", &cfg.Insets); err != nil {
		return err
	}

	themeDom := entity.NewThemeDomain()
	if err := themeDom.Validate(entity.Theme(cfg.Theme.Default)); err != nil {
		return fmt.Errorf("theme.default: %w", err)
	}

	if len(cfg.Language.Supported) == 0 {
		return fmt.Errorf("language.supported must not be empty")
	}
	langDom, err := entity.NewLanguageDomain(cfg.Language.Supported)
	if err != nil {
		return fmt.Errorf("language.supported: %w", err)
	}
	if err := langDom.Validate(cfg.Language.Default); err != nil {
		return fmt.Errorf("language.default: %w", err)
	}

	switch cfg.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not console or json", cfg.Logging.Format)
	}

	return nil
}

func validateKind(name string, kc *KindConfig) error {
	if kc.DebounceMs < minDebounceMs || kc.DebounceMs > maxDebounceMs {
		return fmt.Errorf("%s.debounce_ms %d outside [%d, %d]", name, kc.DebounceMs, minDebounceMs, maxDebounceMs)
	}
	if kc.MinTriggerGapMs < 0 || kc.MinTriggerGapMs > kc.DebounceMs && kc.DebounceMs > 0 {
		return fmt.Errorf("%s.min_trigger_gap_ms %d invalid", name, kc.MinTriggerGapMs)
	}
	if len(kc.Priority) == 0 {
		return fmt.Errorf("%s.priority must not be empty", name)
	}
	for _, src := range kc.Priority {
		parsed, ok := entity.ParseSource(src)
		if !ok || parsed == entity.SourceFallback {
			return fmt.Errorf("%s.priority contains invalid source %q", name, src)
		}
	}
	return nil
}

// Priority converts the configured source names.
func (k KindConfig) SourcePriority() []entity.Source {
	out := make([]entity.Source, 0, len(k.Priority))
	for _, src := range k.Priority {
		if parsed, ok := entity.ParseSource(src); ok {
			out = append(out, parsed)
		}
	}
	return out
}
