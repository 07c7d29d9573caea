package detect

import (
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// HostTheme reads the host bridge's reported color scheme. Confidence
// is high when the bridge reports a value in the valid domain; a
// present bridge with a malformed value yields an absent candidate.
type HostTheme struct {
	bridge port.HostBridge
	dom    *entity.ThemeDomain
	report port.Reporter
}

// NewHostTheme creates the host theme reader. bridge may be nil.
func NewHostTheme(bridge port.HostBridge, dom *entity.ThemeDomain, report port.Reporter) *HostTheme {
	return &HostTheme{bridge: bridge, dom: dom, report: report}
}

// Source implements port.Reader.
func (*HostTheme) Source() entity.Source { return entity.SourceHostApp }

// Read implements port.Reader.
func (r *HostTheme) Read() entity.Candidate[entity.Theme] {
	return safeRead(entity.KindTheme, entity.SourceHostApp, r.report, func() entity.Candidate[entity.Theme] {
		if r.bridge == nil {
			return entity.Absent[entity.Theme](entity.SourceHostApp)
		}
		scheme, ok := r.bridge.ColorScheme()
		if !ok {
			return entity.Absent[entity.Theme](entity.SourceHostApp)
		}
		value := r.dom.Normalize(entity.Theme(scheme))
		if err := r.dom.Validate(value); err != nil {
			return entity.Absent[entity.Theme](entity.SourceHostApp)
		}
		return entity.Present(entity.SourceHostApp, value, entity.ConfidenceHigh)
	})
}

// SystemTheme reads the OS/browser color scheme signal. An exact
// preference match is high confidence; a present capability without an
// explicit preference yields light at medium confidence.
type SystemTheme struct {
	probe  port.SystemProbe
	report port.Reporter
}

// NewSystemTheme creates the system theme reader.
func NewSystemTheme(probe port.SystemProbe, report port.Reporter) *SystemTheme {
	return &SystemTheme{probe: probe, report: report}
}

// Source implements port.Reader.
func (*SystemTheme) Source() entity.Source { return entity.SourceSystem }

// Read implements port.Reader.
func (r *SystemTheme) Read() entity.Candidate[entity.Theme] {
	return safeRead(entity.KindTheme, entity.SourceSystem, r.report, func() entity.Candidate[entity.Theme] {
		if r.probe == nil {
			return entity.Absent[entity.Theme](entity.SourceSystem)
		}
		dark, explicit, ok := r.probe.DarkPreference()
		if !ok {
			return entity.Absent[entity.Theme](entity.SourceSystem)
		}
		value := entity.ThemeLight
		if dark {
			value = entity.ThemeDark
		}
		conf := entity.ConfidenceMedium
		if explicit {
			conf = entity.ConfidenceHigh
		}
		return entity.Present(entity.SourceSystem, value, conf)
	})
}
