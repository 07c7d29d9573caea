package port

import (
	"fmt"

	"github.com/grammeal/prefsync/internal/domain/entity"
)

// ErrorCategory classifies engine errors for diagnostics.
type ErrorCategory string

const (
	// ErrorStorage covers persistence read/write failures.
	ErrorStorage ErrorCategory = "storage"
	// ErrorDetection covers source reader and announcement failures.
	ErrorDetection ErrorCategory = "detection"
	// ErrorValidation covers caller-supplied values outside the
	// supported domain.
	ErrorValidation ErrorCategory = "validation"
)

// EngineError is the typed error funneled through the error channel.
// Detail carries only coarse classification, never raw storage or
// bridge error text.
type EngineError struct {
	Category ErrorCategory
	Kind     entity.Kind
	Op       string
	Detail   string
}

// Error implements error.
func (e EngineError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s/%s: %s error", e.Kind, e.Op, e.Category)
	}
	return fmt.Sprintf("%s/%s: %s error: %s", e.Kind, e.Op, e.Category, e.Detail)
}

// Reporter is the single error channel callback supplied by the host
// application. All engine errors are non-fatal and flow through here.
type Reporter func(EngineError)

// Report invokes the reporter, tolerating a nil channel.
func (r Reporter) Report(err EngineError) {
	if r != nil {
		r(err)
	}
}
