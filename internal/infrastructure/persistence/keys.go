// Package persistence wraps the device key-value store with fail-soft
// semantics: every failure is converted into a reported StorageError
// and the caller proceeds with an in-memory-only preference.
package persistence

import "github.com/grammeal/prefsync/internal/domain/entity"

// Keys names the storage slots for one preference kind. Value, source,
// and confidence are stored under independent keys; each write stands
// alone, no transactional guarantees are required.
type Keys struct {
	Value      string
	Source     string
	Confidence string
}

// KeysFor returns the storage key set for a preference kind.
func KeysFor(kind entity.Kind) Keys {
	return Keys{
		Value:      "preferred-" + string(kind),
		Source:     string(kind) + "-source",
		Confidence: string(kind) + "-confidence",
	}
}
