package persistence

import (
	"strings"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

// Adapter is the fail-soft persistence layer for one preference kind.
// Get and Set never propagate storage failures: they report a
// StorageError carrying the key name and a coarse classification
// (never raw error text) and return a boolean outcome.
type Adapter struct {
	store  port.KeyValueStore
	kind   entity.Kind
	report port.Reporter
}

// NewAdapter wraps a key-value store. A nil store yields an adapter
// whose reads miss and whose writes fail softly.
func NewAdapter(store port.KeyValueStore, kind entity.Kind, report port.Reporter) *Adapter {
	return &Adapter{store: store, kind: kind, report: report}
}

// Get reads a key. Missing keys and storage failures both return
// ok=false; only failures are reported.
func (a *Adapter) Get(key string) (string, bool) {
	if a.store == nil {
		return "", false
	}
	value, ok, err := a.get(key)
	if err != nil {
		a.report.Report(port.EngineError{
			Category: port.ErrorStorage,
			Kind:     a.kind,
			Op:       "get",
			Detail:   "key=" + key + " class=" + classify(err),
		})
		return "", false
	}
	return value, ok
}

// Set writes a key. Failures are reported and return false; the
// caller continues with the in-memory resolved preference.
func (a *Adapter) Set(key, value string) bool {
	if a.store == nil {
		return false
	}
	if err := a.set(key, value); err != nil {
		a.report.Report(port.EngineError{
			Category: port.ErrorStorage,
			Kind:     a.kind,
			Op:       "set",
			Detail:   "key=" + key + " class=" + classify(err),
		})
		return false
	}
	return true
}

// Remove deletes a key, fail-soft like Set.
func (a *Adapter) Remove(key string) bool {
	if a.store == nil {
		return false
	}
	if err := a.remove(key); err != nil {
		a.report.Report(port.EngineError{
			Category: port.ErrorStorage,
			Kind:     a.kind,
			Op:       "remove",
			Detail:   "key=" + key + " class=" + classify(err),
		})
		return false
	}
	return true
}

// get shields against panicking store implementations.
func (a *Adapter) get(key string) (value string, ok bool, err error) {
	defer recoverToErr(&err)
	return a.store.Get(key)
}

func (a *Adapter) set(key, value string) (err error) {
	defer recoverToErr(&err)
	return a.store.Set(key, value)
}

func (a *Adapter) remove(key string) (err error) {
	defer recoverToErr(&err)
	return a.store.Remove(key)
}

func recoverToErr(err *error) {
	if r := recover(); r != nil {
		*err = errPanic
	}
}

type panicError struct{}

func (panicError) Error() string { return "storage panicked" }

var errPanic = panicError{}

// classify maps a storage error to a coarse class. Raw error text is
// deliberately dropped so secrets embedded in messages never reach
// diagnostics.
func classify(err error) string {
	if err == nil {
		return "none"
	}
	if err == errPanic {
		return "panic"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "full"):
		return "quota"
	case strings.Contains(msg, "denied") || strings.Contains(msg, "permission") ||
		strings.Contains(msg, "security") || strings.Contains(msg, "readonly") ||
		strings.Contains(msg, "read-only"):
		return "access"
	case strings.Contains(msg, "locked") || strings.Contains(msg, "busy"):
		return "contention"
	case strings.Contains(msg, "no such") || strings.Contains(msg, "closed") ||
		strings.Contains(msg, "unavailable"):
		return "unavailable"
	default:
		return "io"
	}
}
