package detect

import (
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// HostLanguage reads the host bridge's reported user language code.
type HostLanguage struct {
	bridge port.HostBridge
	dom    *entity.LanguageDomain
	report port.Reporter
}

// NewHostLanguage creates the host language reader. bridge may be nil.
func NewHostLanguage(bridge port.HostBridge, dom *entity.LanguageDomain, report port.Reporter) *HostLanguage {
	return &HostLanguage{bridge: bridge, dom: dom, report: report}
}

// Source implements port.Reader.
func (*HostLanguage) Source() entity.Source { return entity.SourceHostApp }

// Read implements port.Reader.
func (r *HostLanguage) Read() entity.Candidate[string] {
	return safeRead(entity.KindLanguage, entity.SourceHostApp, r.report, func() entity.Candidate[string] {
		if r.bridge == nil {
			return entity.Absent[string](entity.SourceHostApp)
		}
		code, ok := r.bridge.LanguageCode()
		if !ok {
			return entity.Absent[string](entity.SourceHostApp)
		}
		if err := r.dom.Validate(code); err != nil {
			return entity.Absent[string](entity.SourceHostApp)
		}
		return entity.Present(entity.SourceHostApp, r.dom.Normalize(code), entity.ConfidenceHigh)
	})
}

// SystemLanguage reads the system locale list and returns the first
// supported entry. Locale lists are ambient signals, so the candidate
// carries medium confidence.
type SystemLanguage struct {
	probe  port.SystemProbe
	dom    *entity.LanguageDomain
	report port.Reporter
}

// NewSystemLanguage creates the system language reader.
func NewSystemLanguage(probe port.SystemProbe, dom *entity.LanguageDomain, report port.Reporter) *SystemLanguage {
	return &SystemLanguage{probe: probe, dom: dom, report: report}
}

// Source implements port.Reader.
func (*SystemLanguage) Source() entity.Source { return entity.SourceSystem }

// Read implements port.Reader.
func (r *SystemLanguage) Read() entity.Candidate[string] {
	return safeRead(entity.KindLanguage, entity.SourceSystem, r.report, func() entity.Candidate[string] {
		if r.probe == nil {
			return entity.Absent[string](entity.SourceSystem)
		}
		for _, locale := range r.probe.Locales() {
			if err := r.dom.Validate(locale); err != nil {
				continue
			}
			return entity.Present(entity.SourceSystem, r.dom.Normalize(locale), entity.ConfidenceMedium)
		}
		return entity.Absent[string](entity.SourceSystem)
	})
}
