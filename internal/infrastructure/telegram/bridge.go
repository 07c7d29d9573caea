// Package telegram adapts Telegram Mini App launch parameters to the
// host-bridge port. The bridge is probed once at composition time;
// absence (no launch parameters) is a normal state and yields a nil
// bridge.
package telegram

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// Bridge implements port.HostBridge from parsed launch parameters.
// Harness setters mutate it at runtime to simulate host events.
type Bridge struct {
	mu          sync.Mutex
	platform    string
	version     string
	colorScheme string
	themeParams map[string]string
	language    string
	insets      *entity.Insets
	handlers    map[string][]*eventHandler
}

type eventHandler struct {
	fn func()
}

// FromLaunchParams parses the launch-parameter fragment, for example:
//
//	tgWebAppData=user%3D%257B...%26auth_date%3D...&tgWebAppVersion=7.10
//	&tgWebAppPlatform=ios&tgWebAppThemeParams=%7B%22bg_color%22...%7D
//
// Malformed pieces are reported as DetectionErrors and skipped; the
// bridge stays usable. Empty input returns nil: no bridge present.
func FromLaunchParams(raw string, report port.Reporter) *Bridge {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if raw == "" {
		return nil
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		report.Report(port.EngineError{
			Category: port.ErrorDetection,
			Kind:     entity.KindTheme,
			Op:       "parse-launch-params",
			Detail:   "malformed query string",
		})
		return nil
	}

	b := &Bridge{
		platform: values.Get("tgWebAppPlatform"),
		version:  values.Get("tgWebAppVersion"),
		handlers: make(map[string][]*eventHandler),
	}

	if rawTheme := values.Get("tgWebAppThemeParams"); rawTheme != "" {
		params := make(map[string]string)
		if err := json.Unmarshal([]byte(rawTheme), &params); err != nil {
			report.Report(port.EngineError{
				Category: port.ErrorDetection,
				Kind:     entity.KindTheme,
				Op:       "parse-theme-params",
				Detail:   "malformed theme params json",
			})
		} else {
			b.themeParams = params
			if scheme, ok := schemeFromBackground(params["bg_color"]); ok {
				b.colorScheme = scheme
			}
		}
	}

	if rawData := values.Get("tgWebAppData"); rawData != "" {
		if code, ok := languageFromInitData(rawData); ok {
			b.language = code
		} else {
			report.Report(port.EngineError{
				Category: port.ErrorDetection,
				Kind:     entity.KindLanguage,
				Op:       "parse-init-data",
				Detail:   "user payload missing or malformed",
			})
		}
	}

	return b
}

// languageFromInitData extracts user.language_code from the
// query-encoded init data. Only the language code is read; the raw
// user object is never retained or logged.
func languageFromInitData(rawData string) (string, bool) {
	data, err := url.ParseQuery(rawData)
	if err != nil {
		return "", false
	}
	rawUser := data.Get("user")
	if rawUser == "" {
		return "", false
	}
	var user struct {
		LanguageCode string `json:"language_code"`
	}
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return "", false
	}
	if user.LanguageCode == "" {
		return "", false
	}
	return user.LanguageCode, true
}

// schemeFromBackground derives light/dark from the background color's
// perceived luminance.
func schemeFromBackground(hex string) (string, bool) {
	r, g, b, ok := hexToRGB(hex)
	if !ok {
		return "", false
	}
	luminance := 0.2126*float64(r)/255 + 0.7152*float64(g)/255 + 0.0722*float64(b)/255
	if luminance < 0.5 {
		return "dark", true
	}
	return "light", true
}

// hexToRGB accepts #rrggbb.
func hexToRGB(s string) (int, int, int, bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	r, err := strconv.ParseUint(s[1:3], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	g, err := strconv.ParseUint(s[3:5], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	b, err := strconv.ParseUint(s[5:7], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(r), int(g), int(b), true
}

// Platform returns the host platform identifier.
func (b *Bridge) Platform() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.platform
}

// Version returns the host API version.
func (b *Bridge) Version() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// ColorScheme implements port.HostBridge.
func (b *Bridge) ColorScheme() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.colorScheme, b.colorScheme != ""
}

// ThemeParams implements port.HostBridge.
func (b *Bridge) ThemeParams() (map[string]string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.themeParams) == 0 {
		return nil, false
	}
	out := make(map[string]string, len(b.themeParams))
	for k, v := range b.themeParams {
		out[k] = v
	}
	return out, true
}

// LanguageCode implements port.HostBridge.
func (b *Bridge) LanguageCode() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.language, b.language != ""
}

// ViewportInsets implements port.HostBridge.
func (b *Bridge) ViewportInsets() (entity.Insets, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.insets == nil {
		return entity.Insets{}, false
	}
	return *b.insets, true
}

// OnEvent implements port.HostBridge.
func (b *Bridge) OnEvent(name string, fn func()) (off func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers == nil {
		b.handlers = make(map[string][]*eventHandler)
	}
	entry := &eventHandler{fn: fn}
	b.handlers[name] = append(b.handlers[name], entry)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		hs := b.handlers[name]
		for i, h := range hs {
			if h == entry {
				b.handlers[name] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

// Emit fires a bridge event to all subscribed handlers.
func (b *Bridge) Emit(name string) {
	b.mu.Lock()
	snapshot := make([]*eventHandler, len(b.handlers[name]))
	copy(snapshot, b.handlers[name])
	b.mu.Unlock()

	for _, h := range snapshot {
		h.fn()
	}
}

// SetColorScheme updates the reported scheme (harness use).
func (b *Bridge) SetColorScheme(scheme string) {
	b.mu.Lock()
	b.colorScheme = scheme
	b.mu.Unlock()
}

// SetLanguageCode updates the reported language (harness use).
func (b *Bridge) SetLanguageCode(code string) {
	b.mu.Lock()
	b.language = code
	b.mu.Unlock()
}

// SetThemeParam updates one theme parameter (harness use).
func (b *Bridge) SetThemeParam(name, value string) {
	b.mu.Lock()
	if b.themeParams == nil {
		b.themeParams = make(map[string]string)
	}
	b.themeParams[name] = value
	b.mu.Unlock()
}

// SetViewportInsets updates the reported geometry (harness use).
func (b *Bridge) SetViewportInsets(insets entity.Insets) {
	b.mu.Lock()
	b.insets = &insets
	b.mu.Unlock()
}

// NewHarnessBridge creates an empty mutable bridge for tests and
// scripted scenarios.
func NewHarnessBridge() *Bridge {
	return &Bridge{handlers: make(map[string][]*eventHandler)}
}
