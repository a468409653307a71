package usecase

import (
	"errors"
	"fmt"
)

// FailureKind classifies expected business failures.
type FailureKind int

const (
	// FailureValidation is malformed input or a value-object rule violation.
	FailureValidation FailureKind = iota + 1
	// FailureNotFound is a missing entity or dangling foreign reference.
	FailureNotFound
	// FailureConflict is a uniqueness or concurrency violation.
	FailureConflict
	// FailureUnexpected is anything else, with the cause preserved for
	// diagnostics but never trusted as user-facing text.
	FailureUnexpected
)

// Failure is the typed error every handler returns for expected business
// failures. Raw domain or storage errors never cross the handler boundary.
type Failure struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (f *Failure) Error() string {
	if f.cause != nil && f.Message == "" {
		return f.cause.Error()
	}

	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// NewValidation creates a Validation failure from a domain error.
func NewValidation(err error) *Failure {
	return &Failure{Kind: FailureValidation, Message: err.Error(), cause: err}
}

// NewValidationf creates a Validation failure with an explicit message.
func NewValidationf(format string, args ...any) *Failure {
	return &Failure{Kind: FailureValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a NotFound failure.
func NewNotFound(format string, args ...any) *Failure {
	return &Failure{Kind: FailureNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflict creates a Conflict failure.
func NewConflict(format string, args ...any) *Failure {
	return &Failure{Kind: FailureConflict, Message: fmt.Sprintf(format, args...)}
}

// NewUnexpected wraps an unclassified error.
func NewUnexpected(err error) *Failure {
	return &Failure{Kind: FailureUnexpected, Message: "unexpected error", cause: err}
}

// NewUnexpectedf creates an Unexpected failure with an explicit message,
// used for invariant violations that have no underlying error.
func NewUnexpectedf(format string, args ...any) *Failure {
	return &Failure{Kind: FailureUnexpected, Message: fmt.Sprintf(format, args...)}
}

// AsFailure extracts a Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}

// asValidation converts domain errors raised by factories and Update
// methods into Validation failures. An error that is already a Failure
// passes through unchanged.
func asValidation(err error) error {
	if _, ok := AsFailure(err); ok {
		return err
	}

	return NewValidation(err)
}

// classify passes typed failures through (storage adapters surface
// uniqueness violations as Conflict failures themselves) and wraps
// everything else as Unexpected.
func classify(err error) error {
	if _, ok := AsFailure(err); ok {
		return err
	}

	return NewUnexpected(err)
}
