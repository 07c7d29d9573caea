package port

import "github.com/grammeal/prefsync/internal/domain/entity"

// Engine is the public surface of one preference engine instance.
// Apart from SetManual rejecting synchronously-validatable bad input,
// no method returns an error: failures flow through the error channel
// and the engine always holds some valid resolved preference.
type Engine[V any] interface {
	// Initialize performs the first resolution and attaches change
	// triggers. Calling it twice is a no-op.
	Initialize() error

	// Dispose cancels pending scheduled resolutions and deregisters
	// all listeners. Idempotent; no notification fires afterwards.
	Dispose()

	// State returns the current resolved preference synchronously.
	State() entity.Resolved[V]

	// Subscribe registers a listener for resolution changes and
	// returns an unsubscribe function.
	Subscribe(fn func(entity.Resolved[V])) (unsubscribe func())

	// SetManual applies an explicit override. Values outside the
	// supported domain are rejected with a ValidationError, which is
	// also reported through the error channel.
	SetManual(value V) error

	// SetAutoDetectionEnabled toggles host and system detection.
	// While disabled, only manual, persisted, and default values
	// participate in resolution.
	SetAutoDetectionEnabled(enabled bool)
}
