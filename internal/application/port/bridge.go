package port

import "github.com/grammeal/prefsync/internal/domain/entity"

// Bridge event names the engine subscribes to.
const (
	EventThemeChanged    = "theme_changed"
	EventViewportChanged = "viewport_changed"
	EventLanguageChanged = "language_changed"
)

// HostBridge is the embedding host application's API surface. The
// bridge is probed once at composition time; a nil HostBridge is a
// normal, fully supported state.
type HostBridge interface {
	// ColorScheme returns the host's reported color scheme ("light"
	// or "dark") if it reports one.
	ColorScheme() (string, bool)

	// ThemeParams returns the host's fine-grained color map keyed by
	// the host's parameter names (bg_color, text_color, ...).
	ThemeParams() (map[string]string, bool)

	// LanguageCode returns the host's reported user language code.
	LanguageCode() (string, bool)

	// ViewportInsets returns the host's reported safe-area geometry.
	ViewportInsets() (entity.Insets, bool)

	// OnEvent subscribes to a bridge event and returns an
	// unsubscribe function.
	OnEvent(name string, fn func()) (off func())
}
