package config

// Config is the complete prefsync configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging" toml:"logging"`
	Storage  StorageConfig  `mapstructure:"storage" json:"storage" toml:"storage"`
	Theme    KindConfig     `mapstructure:"theme" json:"theme" toml:"theme"`
	Language LanguageConfig `mapstructure:"language" json:"language" toml:"language"`
	Insets   KindConfig     `mapstructure:"insets" json:"insets" toml:"insets"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" json:"level" toml:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" json:"format" toml:"format"`
}

// StorageConfig locates the preference database.
type StorageConfig struct {
	// Path of the sqlite database; empty selects the default data dir.
	Path string `mapstructure:"path" json:"path" toml:"path"`
}

// KindConfig is the per-preference-kind engine configuration.
type KindConfig struct {
	// Default is emitted when no detection source survives resolution.
	Default string `mapstructure:"default" json:"default" toml:"default"`
	// DebounceMs is the quiet window coalescing change bursts.
	DebounceMs int `mapstructure:"debounce_ms" json:"debounce_ms" toml:"debounce_ms"`
	// MinTriggerGapMs absorbs duplicate triggers on the same signal.
	MinTriggerGapMs int `mapstructure:"min_trigger_gap_ms" json:"min_trigger_gap_ms" toml:"min_trigger_gap_ms"`
	// SystemFallback enables the system source reader.
	SystemFallback bool `mapstructure:"system_fallback" json:"system_fallback" toml:"system_fallback"`
	// Persist enables storing the resolved preference.
	Persist bool `mapstructure:"persist" json:"persist" toml:"persist"`
	// Priority is the ordered source precedence: manual, host,
	// persisted, system.
	Priority []string `mapstructure:"priority" json:"priority" toml:"priority"`
}

// LanguageConfig extends KindConfig with the supported language set.
type LanguageConfig struct {
	KindConfig `mapstructure:",squash" json:",inline"`
	// Supported lists the language codes the application ships
	// translations for.
	Supported []string `mapstructure:"supported" json:"supported" toml:"supported"`
}
