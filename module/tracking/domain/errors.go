package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an empty log or missing record. Callers decide
	// whether to surface it or substitute a documented default.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPolicy signals an unusable safe-zone configuration.
	ErrInvalidPolicy = errors.New("invalid safe zone policy")

	// ErrDeviceTimeout signals that the physical device did not answer
	// within the configured deadline.
	ErrDeviceTimeout = errors.New("device timeout")
)

// ValidationError rejects malformed input at the boundary, before any
// persistence is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
