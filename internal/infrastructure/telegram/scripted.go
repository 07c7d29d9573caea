package telegram

import (
	"fmt"
	"os"
	"time"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// RunScenario executes a JavaScript scenario against a harness bridge,
// simulating host behavior for the dev CLI. The script drives the
// bridge through a small API:
//
//	setColorScheme("dark")         // updates scheme + emits theme_changed
//	setLanguage("ru")              // updates language code
//	setThemeParam("bg_color", "#1c1c1e")
//	setInsets(44, 34, 0, 0)        // top, bottom, left, right + emits viewport_changed
//	emit("theme_changed")          // fire a raw event
//	sleep(250)                     // milliseconds
//	log("switching to dark")
//
// Scenario failures are the harness author's problem, not the
// engine's: the error is returned for display and nothing else stops.
func RunScenario(path string, bridge *Bridge, logger zerolog.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scenario: %w", err)
	}

	vm := sobek.New()
	bindings := map[string]any{
		"setColorScheme": func(scheme string) {
			bridge.SetColorScheme(scheme)
			bridge.Emit(port.EventThemeChanged)
		},
		"setLanguage": func(code string) {
			bridge.SetLanguageCode(code)
			bridge.Emit(port.EventLanguageChanged)
		},
		"setThemeParam": func(name, value string) {
			bridge.SetThemeParam(name, value)
			bridge.Emit(port.EventThemeChanged)
		},
		"setInsets": func(top, bottom, left, right float64) {
			bridge.SetViewportInsets(entity.Insets{Top: top, Bottom: bottom, Left: left, Right: right})
			bridge.Emit(port.EventViewportChanged)
		},
		"emit": func(name string) {
			bridge.Emit(name)
		},
		"sleep": func(ms int64) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		},
		"log": func(msg string) {
			logger.Info().Str("component", "scenario").Msg(msg)
		},
	}
	for name, fn := range bindings {
		if err := vm.Set(name, fn); err != nil {
			return fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	if _, err := vm.RunScript(path, string(src)); err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}
	return nil
}
