// Package service holds the pure resolution logic. Resolve has no side
// effects: no surface writes, no storage writes, no logging. Appliers
// and persistence run in the orchestrating engine after it returns.
package service

import (
	"time"

	"github.com/grammeal/prefsync/internal/domain/entity"
)

// Resolve turns a set of candidate readings into one authoritative
// preference. For a fixed candidate set, config, and timestamp the
// result is deterministic.
//
// Selection walks the configured source priority order; within one
// source, higher confidence wins. Candidates whose value fails domain
// validation are discarded whole, as are candidates the domain refuses
// via Accepts (for example, low-confidence host language readings).
// When nothing survives, the configured default is emitted with
// SourceFallback and ConfidenceLow.
func Resolve[V any](
	dom entity.Domain[V],
	candidates []entity.Candidate[V],
	cfg entity.EngineConfig[V],
	now time.Time,
) entity.Resolved[V] {
	valid := make(map[entity.Source][]entity.Candidate[V], len(candidates))
	for _, c := range candidates {
		if c.Value == nil {
			continue
		}
		if err := dom.Validate(*c.Value); err != nil {
			continue
		}
		valid[c.Source] = append(valid[c.Source], c)
	}

	for _, src := range cfg.Priority {
		best, ok := bestOf(valid[src])
		if !ok {
			continue
		}
		if !dom.Accepts(best.Source, best.Confidence) {
			continue
		}
		return entity.Resolved[V]{
			Value:      dom.Normalize(*best.Value),
			Source:     best.Source,
			Confidence: best.Confidence,
			ResolvedAt: now,
		}
	}

	return entity.Resolved[V]{
		Value:      cfg.Default,
		Source:     entity.SourceFallback,
		Confidence: entity.ConfidenceLow,
		ResolvedAt: now,
	}
}

// bestOf picks the highest-confidence candidate of one source.
func bestOf[V any](cands []entity.Candidate[V]) (entity.Candidate[V], bool) {
	var best entity.Candidate[V]
	found := false
	for _, c := range cands {
		if !found || c.Confidence > best.Confidence {
			best = c
			found = true
		}
	}
	return best, found
}
