package detect

import (
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
	"github.com/grammeal/prefsync/internal/infrastructure/persistence"
)

// Persisted reads a previously stored value, source, and confidence
// through the fail-soft persistence adapter. Stored values that fail
// domain validation are treated as absent.
type Persisted[V any] struct {
	dom     entity.Domain[V]
	adapter *persistence.Adapter
	keys    persistence.Keys
	report  port.Reporter
}

// NewPersisted creates the persisted-value reader for a kind.
func NewPersisted[V any](dom entity.Domain[V], adapter *persistence.Adapter, report port.Reporter) *Persisted[V] {
	return &Persisted[V]{
		dom:     dom,
		adapter: adapter,
		keys:    persistence.KeysFor(dom.Kind()),
		report:  report,
	}
}

// Source implements port.Reader.
func (*Persisted[V]) Source() entity.Source { return entity.SourcePersisted }

// Read implements port.Reader.
func (r *Persisted[V]) Read() entity.Candidate[V] {
	return safeRead(r.dom.Kind(), entity.SourcePersisted, r.report, func() entity.Candidate[V] {
		raw, ok := r.adapter.Get(r.keys.Value)
		if !ok {
			return entity.Absent[V](entity.SourcePersisted)
		}
		value, err := r.dom.Decode(raw)
		if err != nil {
			return entity.Absent[V](entity.SourcePersisted)
		}

		// The confidence stored alongside the value survives restarts:
		// a manual choice persisted at high confidence keeps its
		// standing against host readings on the next launch.
		conf := entity.ConfidenceMedium
		if rawConf, ok := r.adapter.Get(r.keys.Confidence); ok {
			if parsed, valid := entity.ParseConfidence(rawConf); valid {
				conf = parsed
			}
		}
		return entity.Present(entity.SourcePersisted, value, conf)
	})
}

// StoredSource returns the source recorded with the persisted value,
// for diagnostics.
func (r *Persisted[V]) StoredSource() (entity.Source, bool) {
	raw, ok := r.adapter.Get(r.keys.Source)
	if !ok {
		return "", false
	}
	return entity.ParseSource(raw)
}
