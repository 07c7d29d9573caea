// Package system implements the desktop SystemProbe used by the dev
// harness: color scheme from gsettings or GTK_THEME, locales from the
// POSIX locale environment. Inside the embedded client the host shell
// supplies its own probe.
package system

import (
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Probe implements port.SystemProbe against desktop signals.
type Probe struct {
	mu        sync.Mutex
	listeners []*listener
}

type listener struct {
	fn func()
}

// NewProbe creates a desktop system probe.
func NewProbe() *Probe {
	return &Probe{}
}

// DarkPreference implements port.SystemProbe. gsettings is consulted
// first; GTK_THEME is the fallback for users who pin a theme via
// environment.
func (*Probe) DarkPreference() (dark, explicit, ok bool) {
	if d, e, o := gsettingsPreference(); o {
		return d, e, o
	}
	return gtkThemePreference()
}

// gsettingsPreference queries org.gnome.desktop.interface color-scheme.
func gsettingsPreference() (dark, explicit, ok bool) {
	if _, err := exec.LookPath("gsettings"); err != nil {
		return false, false, false
	}
	output, err := exec.Command("gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err != nil {
		return false, false, false
	}

	// Output is like "'prefer-dark'\n", strip quotes and whitespace
	result := strings.TrimSpace(string(output))
	result = strings.Trim(result, "'\"")

	switch result {
	case "prefer-dark":
		return true, true, true
	case "prefer-light":
		return false, true, true
	case "default":
		// Capability exists but no explicit preference is signaled.
		return false, false, true
	default:
		return false, false, false
	}
}

// gtkThemePreference checks GTK_THEME for a "dark" marker.
func gtkThemePreference() (dark, explicit, ok bool) {
	gtkTheme := os.Getenv("GTK_THEME")
	if gtkTheme == "" {
		return false, false, false
	}
	return strings.Contains(strings.ToLower(gtkTheme), "dark"), true, true
}

// Locales implements port.SystemProbe. The POSIX precedence order is
// LC_ALL, LC_MESSAGES, LANG; "C" and "POSIX" carry no language signal.
func (*Probe) Locales() []string {
	var locales []string
	seen := make(map[string]struct{})
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		code := normalizeLocale(os.Getenv(name))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		locales = append(locales, code)
	}
	return locales
}

// normalizeLocale turns "ru_RU.UTF-8" into "ru-RU".
func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	return strings.ReplaceAll(raw, "_", "-")
}

// SupportsEnvInsets implements port.SystemProbe. Desktop sessions have
// no native safe-area environment queries.
func (*Probe) SupportsEnvInsets() bool { return false }

// OnChange implements port.SystemProbe. Desktop signals have no change
// feed here; Emit exists so harnesses can fan in external watchers.
func (p *Probe) OnChange(fn func()) (off func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry := &listener{fn: fn}
	p.listeners = append(p.listeners, entry)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, l := range p.listeners {
			if l == entry {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit notifies all change listeners.
func (p *Probe) Emit() {
	p.mu.Lock()
	snapshot := make([]*listener, len(p.listeners))
	copy(snapshot, p.listeners)
	p.mu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}
