package facture

import (
	"errors"
	"fmt"
)

// Sentinel errors for construction-time validation failures. They are
// wrapped with context by the Validate methods; match with errors.Is.
var (
	ErrMissingField     = errors.New("facture: missing required field")
	ErrInvalidGender    = errors.New("facture: invalid gender tag")
	ErrNegativeDuration = errors.New("facture: negative duration")
	ErrNegativeRate     = errors.New("facture: negative hourly rate")
)

// BuildError represents a failure of a specific build step. It wraps the
// underlying error and includes the operation name for context.
type BuildError struct {
	Op  string // operation name, e.g. "Assemble", "WriteFile"
	Err error  // underlying error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("facture.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("facture.%s: unknown error", e.Op)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
