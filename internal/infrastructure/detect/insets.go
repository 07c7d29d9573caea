package detect

import (
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// HostInsets reads the host bridge's reported viewport geometry.
type HostInsets struct {
	bridge port.HostBridge
	dom    *entity.InsetsDomain
	report port.Reporter
}

// NewHostInsets creates the host insets reader. bridge may be nil.
func NewHostInsets(bridge port.HostBridge, dom *entity.InsetsDomain, report port.Reporter) *HostInsets {
	return &HostInsets{bridge: bridge, dom: dom, report: report}
}

// Source implements port.Reader.
func (*HostInsets) Source() entity.Source { return entity.SourceHostApp }

// Read implements port.Reader.
func (r *HostInsets) Read() entity.Candidate[entity.Insets] {
	return safeRead(entity.KindInsets, entity.SourceHostApp, r.report, func() entity.Candidate[entity.Insets] {
		if r.bridge == nil {
			return entity.Absent[entity.Insets](entity.SourceHostApp)
		}
		insets, ok := r.bridge.ViewportInsets()
		if !ok {
			return entity.Absent[entity.Insets](entity.SourceHostApp)
		}
		if err := r.dom.Validate(insets); err != nil {
			return entity.Absent[entity.Insets](entity.SourceHostApp)
		}
		return entity.Present(entity.SourceHostApp, insets, entity.ConfidenceHigh)
	})
}

// SystemInsets probes environment-level inset support. Capability
// presence does not prove the device has a notch, so the candidate is
// zero insets at medium confidence; the applier prefers expressing the
// output as a live environment reference in that case.
type SystemInsets struct {
	probe  port.SystemProbe
	report port.Reporter
}

// NewSystemInsets creates the system insets reader.
func NewSystemInsets(probe port.SystemProbe, report port.Reporter) *SystemInsets {
	return &SystemInsets{probe: probe, report: report}
}

// Source implements port.Reader.
func (*SystemInsets) Source() entity.Source { return entity.SourceSystem }

// Read implements port.Reader.
func (r *SystemInsets) Read() entity.Candidate[entity.Insets] {
	return safeRead(entity.KindInsets, entity.SourceSystem, r.report, func() entity.Candidate[entity.Insets] {
		if r.probe == nil || !r.probe.SupportsEnvInsets() {
			return entity.Absent[entity.Insets](entity.SourceSystem)
		}
		return entity.Present(entity.SourceSystem, entity.Insets{}, entity.ConfidenceMedium)
	})
}
