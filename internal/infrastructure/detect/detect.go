// Package detect implements the per-source preference readers. Each
// reader probes one signal source (host bridge, system, persisted
// value) and returns a candidate plus confidence. Readers never panic:
// internal failures are reported as DetectionErrors and surface as an
// absent candidate.
package detect

import (
	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// safeRead shields a reader body. A panicking probe is reported with
// redacted context (kind, source, op only) and yields an absent
// candidate.
func safeRead[V any](
	kind entity.Kind,
	src entity.Source,
	report port.Reporter,
	fn func() entity.Candidate[V],
) (c entity.Candidate[V]) {
	defer func() {
		if r := recover(); r != nil {
			report.Report(port.EngineError{
				Category: port.ErrorDetection,
				Kind:     kind,
				Op:       "read-" + string(src),
				Detail:   "reader panicked",
			})
			c = entity.Absent[V](src)
		}
	}()
	return fn()
}
