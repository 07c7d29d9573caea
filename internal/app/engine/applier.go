package engine

import (
	"fmt"
	"sync"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// Applier projects a resolved preference onto the output surfaces.
// Apply is idempotent: applying the same resolution twice produces no
// observable difference and no additional announcements.
type Applier[V any] interface {
	Apply(res entity.Resolved[V])
}

// themeParamVars maps host theme-parameter names to the fixed set of
// named output variables. Only parameters the host actually supplies
// are projected; prior values are left untouched when absent so the UI
// never flashes to a hardcoded fallback on re-resolution.
var themeParamVars = []struct {
	param  string
	cssVar string
}{
	{"bg_color", "--app-background"},
	{"text_color", "--app-text"},
	{"hint_color", "--app-hint"},
	{"link_color", "--app-link"},
	{"button_color", "--app-accent"},
	{"button_text_color", "--app-accent-text"},
	{"secondary_bg_color", "--app-secondary-background"},
}

// announcer emits one polite live-region announcement per value
// change. Equal re-applications announce nothing.
type announcer[V any] struct {
	surface port.Surface
	dom     entity.Domain[V]
	report  port.Reporter

	mu   sync.Mutex
	last *V
}

func (a *announcer[V]) announce(value V) {
	text := a.dom.Display(value)
	if text == "" {
		return
	}

	a.mu.Lock()
	if a.last != nil && a.dom.Equal(*a.last, value) {
		a.mu.Unlock()
		return
	}
	v := value
	a.last = &v
	a.mu.Unlock()

	if err := a.surface.Announce(text); err != nil {
		a.report.Report(port.EngineError{
			Category: port.ErrorDetection,
			Kind:     a.dom.Kind(),
			Op:       "announce",
			Detail:   "live region update failed",
		})
	}
}

// ThemeApplier sets the theme marker attribute, projects host-supplied
// colors onto the named output variables, and announces value changes.
type ThemeApplier struct {
	surface port.Surface
	bridge  port.HostBridge
	dom     *entity.ThemeDomain
	report  port.Reporter
	ann     *announcer[entity.Theme]
}

// NewThemeApplier creates the theme applier. bridge may be nil.
func NewThemeApplier(surface port.Surface, bridge port.HostBridge, dom *entity.ThemeDomain, report port.Reporter) *ThemeApplier {
	return &ThemeApplier{
		surface: surface,
		bridge:  bridge,
		dom:     dom,
		report:  report,
		ann:     &announcer[entity.Theme]{surface: surface, dom: dom, report: report},
	}
}

// Apply implements Applier.
func (a *ThemeApplier) Apply(res entity.Resolved[entity.Theme]) {
	a.setAttr("data-theme", a.dom.Encode(res.Value))

	if a.bridge != nil {
		if params, ok := a.bridge.ThemeParams(); ok {
			for _, m := range themeParamVars {
				if color, present := params[m.param]; present && color != "" {
					a.setVar(m.cssVar, color)
				}
			}
		}
	}

	a.ann.announce(res.Value)
}

func (a *ThemeApplier) setAttr(name, value string) {
	if err := a.surface.SetAttribute(name, value); err != nil {
		a.reportApply()
	}
}

func (a *ThemeApplier) setVar(name, value string) {
	if err := a.surface.SetCSSProperty(name, value); err != nil {
		a.reportApply()
	}
}

func (a *ThemeApplier) reportApply() {
	a.report.Report(port.EngineError{
		Category: port.ErrorDetection,
		Kind:     entity.KindTheme,
		Op:       "apply",
		Detail:   "surface write failed",
	})
}

// LanguageApplier sets the language and text-direction markers and
// announces the resolved language's display name.
type LanguageApplier struct {
	surface port.Surface
	dom     *entity.LanguageDomain
	report  port.Reporter
	ann     *announcer[string]
}

// NewLanguageApplier creates the language applier.
func NewLanguageApplier(surface port.Surface, dom *entity.LanguageDomain, report port.Reporter) *LanguageApplier {
	return &LanguageApplier{
		surface: surface,
		dom:     dom,
		report:  report,
		ann:     &announcer[string]{surface: surface, dom: dom, report: report},
	}
}

// Apply implements Applier.
func (a *LanguageApplier) Apply(res entity.Resolved[string]) {
	for _, attr := range []struct{ name, value string }{
		{"lang", res.Value},
		{"dir", entity.Direction(res.Value)},
	} {
		if err := a.surface.SetAttribute(attr.name, attr.value); err != nil {
			a.report.Report(port.EngineError{
				Category: port.ErrorDetection,
				Kind:     entity.KindLanguage,
				Op:       "apply",
				Detail:   "surface write failed",
			})
		}
	}

	a.ann.announce(res.Value)
}

// insetVars are the four independent spacing outputs, paired with the
// native environment variable each can reference.
var insetVars = []struct {
	cssVar string
	envRef string
	pick   func(entity.Insets) float64
}{
	{"--safe-area-inset-top", "safe-area-inset-top", func(i entity.Insets) float64 { return i.Top }},
	{"--safe-area-inset-bottom", "safe-area-inset-bottom", func(i entity.Insets) float64 { return i.Bottom }},
	{"--safe-area-inset-left", "safe-area-inset-left", func(i entity.Insets) float64 { return i.Left }},
	{"--safe-area-inset-right", "safe-area-inset-right", func(i entity.Insets) float64 { return i.Right }},
}

// InsetsApplier sets the four spacing outputs. When the environment
// supports native inset queries the output is expressed as an env()
// reference with the resolved value as fallback, so the UI tracks live
// OS changes without re-resolution.
type InsetsApplier struct {
	surface port.Surface
	probe   port.SystemProbe
	report  port.Reporter
}

// NewInsetsApplier creates the insets applier. probe may be nil.
func NewInsetsApplier(surface port.Surface, probe port.SystemProbe, report port.Reporter) *InsetsApplier {
	return &InsetsApplier{surface: surface, probe: probe, report: report}
}

// Apply implements Applier.
func (a *InsetsApplier) Apply(res entity.Resolved[entity.Insets]) {
	envSupported := a.probe != nil && a.probe.SupportsEnvInsets()

	for _, v := range insetVars {
		px := formatPx(v.pick(res.Value))
		value := px
		if envSupported {
			value = fmt.Sprintf("env(%s, %s)", v.envRef, px)
		}
		if err := a.surface.SetCSSProperty(v.cssVar, value); err != nil {
			a.report.Report(port.EngineError{
				Category: port.ErrorDetection,
				Kind:     entity.KindInsets,
				Op:       "apply",
				Detail:   "surface write failed",
			})
		}
	}
}

func formatPx(v float64) string {
	return fmt.Sprintf("%gpx", v)
}
