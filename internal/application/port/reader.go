package port

import "github.com/grammeal/prefsync/internal/domain/entity"

// Reader probes one signal source for a preference candidate. Read
// must never panic; on internal failure it reports through the error
// channel and returns an absent candidate.
type Reader[V any] interface {
	// Source identifies the signal source this reader probes.
	Source() entity.Source

	// Read returns the source's current candidate.
	Read() entity.Candidate[V]
}
