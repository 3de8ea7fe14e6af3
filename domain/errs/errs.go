// Package errs defines the error taxonomy shared by the ledger.
// Stores, loggers and the HTTP layer all classify failures against these values.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by id has no match.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks failures where the backing store cannot serve requests.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrBuilderCommitted is returned when a builder is committed a second time.
	ErrBuilderCommitted = errors.New("builder already committed")
)

// ValidationError reports a malformed or unrecognized input value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Invalid creates a ValidationError for field.
func Invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation extracts the ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Unavailable wraps cause so that errors.Is(err, ErrStoreUnavailable) holds
// while the original cause stays reachable.
func Unavailable(cause error) error {
	if cause == nil {
		return nil
	}
	return &unavailableError{cause: cause}
}

type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string {
	return ErrStoreUnavailable.Error() + ": " + e.cause.Error()
}

func (e *unavailableError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.cause}
}
