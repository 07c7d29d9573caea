// Package entity defines the core types of the preference engine:
// preference kinds, detection sources, confidence levels, candidates,
// and resolved preferences.
package entity

import (
	"fmt"
	"time"
)

// Kind identifies which preference an engine instance governs.
type Kind string

const (
	KindTheme    Kind = "theme"
	KindLanguage Kind = "language"
	KindInsets   Kind = "insets"
)

// Source identifies where a candidate reading came from.
type Source string

const (
	// SourceManual is an explicit in-session override set by the caller.
	SourceManual Source = "manual"
	// SourceHostApp is the embedding host application's bridge.
	SourceHostApp Source = "host"
	// SourcePersisted is a previously stored choice.
	SourcePersisted Source = "persisted"
	// SourceSystem is an OS or browser level signal.
	SourceSystem Source = "system"
	// SourceFallback marks the configured default, used when no
	// candidate survives resolution.
	SourceFallback Source = "fallback"
)

// ParseSource converts a stored string back into a Source.
func ParseSource(s string) (Source, bool) {
	switch Source(s) {
	case SourceManual, SourceHostApp, SourcePersisted, SourceSystem, SourceFallback:
		return Source(s), true
	}
	return "", false
}

// Confidence is a coarse quality score attached to a detected value.
// Higher values win ties within the same source.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

// String implements fmt.Stringer.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseConfidence converts a stored string back into a Confidence.
func ParseConfidence(s string) (Confidence, bool) {
	switch s {
	case "high":
		return ConfidenceHigh, true
	case "medium":
		return ConfidenceMedium, true
	case "low":
		return ConfidenceLow, true
	}
	return ConfidenceLow, false
}

// Candidate is one source's reading for a preference. A nil Value means
// the source had nothing to offer; such candidates always carry
// ConfidenceLow and are never selected while any other candidate exists.
type Candidate[V any] struct {
	Source     Source
	Value      *V
	Confidence Confidence
}

// Absent returns an empty candidate for the given source.
func Absent[V any](src Source) Candidate[V] {
	return Candidate[V]{Source: src, Confidence: ConfidenceLow}
}

// Present returns a candidate carrying a value.
func Present[V any](src Source, value V, conf Confidence) Candidate[V] {
	return Candidate[V]{Source: src, Value: &value, Confidence: conf}
}

// Resolved is the authoritative preference produced by resolution.
// It is replaced, never mutated, on every successful resolution.
type Resolved[V any] struct {
	Value      V
	Source     Source
	Confidence Confidence
	ResolvedAt time.Time
}

// Same reports whether two resolutions are equivalent for change
// detection purposes. The timestamp is deliberately ignored.
func (r Resolved[V]) Same(other Resolved[V], equal func(a, b V) bool) bool {
	return r.Source == other.Source &&
		r.Confidence == other.Confidence &&
		equal(r.Value, other.Value)
}

// Domain is the per-kind value strategy: validation, normalization,
// equality, display formatting, and persistence codec. The three
// preference kinds share one engine parameterized by a Domain.
type Domain[V any] interface {
	// Kind returns the preference kind this domain governs.
	Kind() Kind

	// Validate reports whether the value is a member of the kind's
	// supported domain. Resolution discards invalid candidates whole.
	Validate(value V) error

	// Normalize canonicalizes a valid value. Called on the winning
	// candidate before it is published.
	Normalize(value V) V

	// Equal reports value equality after normalization.
	Equal(a, b V) bool

	// Display returns a human-readable description of the value for
	// assistive-technology announcements. An empty string suppresses
	// the announcement for this kind.
	Display(value V) string

	// Encode serializes the value for the key-value store.
	Encode(value V) string

	// Decode parses a stored value. Decoded values are re-validated
	// before use.
	Decode(raw string) (V, error)

	// Accepts reports whether a candidate from the given source at the
	// given confidence may win resolution. Domains return false to
	// force fall-through to the next priority source.
	Accepts(src Source, conf Confidence) bool
}

// EngineConfig is the per-kind configuration driving resolution and
// scheduling.
type EngineConfig[V any] struct {
	Kind Kind

	// Priority is the ordered source preference used by resolution.
	Priority []Source

	// Default is emitted with SourceFallback when no candidate survives.
	Default V

	// DebounceWindow coalesces bursts of change triggers; only the
	// resolution following the last trigger in a window executes.
	DebounceWindow time.Duration

	// MinTriggerGap absorbs duplicate triggers from multiple listeners
	// on the same underlying signal.
	MinTriggerGap time.Duration

	// SystemFallback enables the system source reader.
	SystemFallback bool

	// Persist enables storing the resolved preference.
	Persist bool
}

// DefaultPriority is the source order used when a kind does not
// configure its own: manual override, then host app, then persisted
// choice, then system signal.
func DefaultPriority() []Source {
	return []Source{SourceManual, SourceHostApp, SourcePersisted, SourceSystem}
}

// Validate checks the config for internal consistency.
func (c EngineConfig[V]) Validate() error {
	if c.Kind == "" {
		return fmt.Errorf("engine config: missing kind")
	}
	if len(c.Priority) == 0 {
		return fmt.Errorf("engine config %s: empty source priority", c.Kind)
	}
	for _, src := range c.Priority {
		if _, ok := ParseSource(string(src)); !ok || src == SourceFallback {
			return fmt.Errorf("engine config %s: invalid priority source %q", c.Kind, src)
		}
	}
	if c.DebounceWindow < 0 || c.MinTriggerGap < 0 {
		return fmt.Errorf("engine config %s: negative duration", c.Kind)
	}
	return nil
}
