package telegram

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

func writeScenario(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.js")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))
	return path
}

func TestRunScenarioDrivesBridge(t *testing.T) {
	bridge := NewHarnessBridge()

	themeEvents := 0
	viewportEvents := 0
	bridge.OnEvent(port.EventThemeChanged, func() { themeEvents++ })
	bridge.OnEvent(port.EventViewportChanged, func() { viewportEvents++ })

	path := writeScenario(t, `
		log("scenario start");
		setColorScheme("dark");
		setThemeParam("bg_color", "#1c1c1e");
		setLanguage("ru");
		setInsets(44, 34, 0, 0);
		emit("theme_changed");
	`)

	require.NoError(t, RunScenario(path, bridge, zerolog.Nop()))

	scheme, ok := bridge.ColorScheme()
	require.True(t, ok)
	assert.Equal(t, "dark", scheme)

	code, ok := bridge.LanguageCode()
	require.True(t, ok)
	assert.Equal(t, "ru", code)

	insets, ok := bridge.ViewportInsets()
	require.True(t, ok)
	assert.Equal(t, entity.Insets{Top: 44, Bottom: 34}, insets)

	// setColorScheme + setThemeParam + raw emit.
	assert.Equal(t, 3, themeEvents)
	assert.Equal(t, 1, viewportEvents)
}

func TestRunScenarioErrors(t *testing.T) {
	bridge := NewHarnessBridge()

	err := RunScenario(filepath.Join(t.TempDir(), "missing.js"), bridge, zerolog.Nop())
	assert.Error(t, err)

	path := writeScenario(t, `this is not javascript`)
	err = RunScenario(path, bridge, zerolog.Nop())
	assert.Error(t, err)
}
