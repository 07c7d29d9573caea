package config

import "github.com/spf13/viper"

// Default debounce windows per kind. Insets react fastest because
// resize bursts are the hottest trigger; language changes are rare.
const (
	defaultThemeDebounceMs    = 150
	defaultLanguageDebounceMs = 250
	defaultInsetsDebounceMs   = 100
	defaultMinTriggerGapMs    = 30
)

// defaultPriority is the source precedence applied to every kind
// unless overridden.
var defaultPriority = []string{"manual", "host", "persisted", "system"}

// setDefaults registers every default with viper so partial config
// files inherit the rest.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.path", "")

	v.SetDefault("theme.default", "light")
	v.SetDefault("theme.debounce_ms", defaultThemeDebounceMs)
	v.SetDefault("theme.min_trigger_gap_ms", defaultMinTriggerGapMs)
	v.SetDefault("theme.system_fallback", true)
	v.SetDefault("theme.persist", true)
	v.SetDefault("theme.priority", defaultPriority)

	v.SetDefault("language.default", "en")
	v.SetDefault("language.supported", []string{"en", "ru"})
	v.SetDefault("language.debounce_ms", defaultLanguageDebounceMs)
	v.SetDefault("language.min_trigger_gap_ms", defaultMinTriggerGapMs)
	v.SetDefault("language.system_fallback", true)
	v.SetDefault("language.persist", true)
	v.SetDefault("language.priority", defaultPriority)

	v.SetDefault("insets.default", "")
	v.SetDefault("insets.debounce_ms", defaultInsetsDebounceMs)
	v.SetDefault("insets.min_trigger_gap_ms", defaultMinTriggerGapMs)
	v.SetDefault("insets.system_fallback", true)
	v.SetDefault("insets.persist", false)
	v.SetDefault("insets.priority", defaultPriority)
}
