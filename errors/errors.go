// Package errors provides error handling for inhabit.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// On top of that it defines the expansion error taxonomy. Every failure
// raised by the engine wraps exactly one of the sentinels below, so callers
// branch with errors.Is:
//
//	if errors.Is(err, errors.ErrMissingTypeArguments) {
//	    // parameterize the container first
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark

	CombineErrors = crdb.CombineErrors
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Expansion error taxonomy.
var (
	// ErrConfiguration reports a caller mistake detected before any expansion
	// work: argument name/type count mismatch, ambiguous handler registration.
	ErrConfiguration = New("configuration error")

	// ErrMissingTypeArguments reports a bare container annotation such as an
	// unparameterized list.
	ErrMissingTypeArguments = New("missing type arguments")

	// ErrUnsupportedType reports an annotation with no handler and no
	// applicable fallback.
	ErrUnsupportedType = New("unsupported type")

	// ErrNotConstructible reports a base that cannot be applied to an
	// argument combination.
	ErrNotConstructible = New("not constructible")

	// ErrNotImplemented marks an input that is intentionally unsupported,
	// such as structural protocols.
	ErrNotImplemented = New("not implemented")

	// ErrLimitExceeded reports an expansion that crossed the configured depth
	// or element limit.
	ErrLimitExceeded = New("limit exceeded")
)

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// NewMissingTypeArgumentsError reports that the named container was used bare.
func NewMissingTypeArgumentsError(annotation string) error {
	err := Wrap(ErrMissingTypeArguments, annotation)
	return WithHintf(err, "parameterize %s before expanding it, e.g. %s[int]", annotation, annotation)
}

// NewUnsupportedTypeError reports the annotation no handler could expand.
func NewUnsupportedTypeError(annotation string) error {
	err := Wrapf(ErrUnsupportedType, "no handler for %s", annotation)
	return WithHint(err, "register a handler for this type or add a config override")
}

// NewNotConstructibleError reports a failed attempt to cast base as a
// constructor. The cause, when present, is kept as detail.
func NewNotConstructibleError(base string, cause error) error {
	err := Wrapf(ErrNotConstructible, "attempted to cast %s as callable", base)
	if cause != nil {
		err = WithDetail(err, cause.Error())
	}
	return err
}

// NewNotImplementedError reports an intentionally unsupported input.
func NewNotImplementedError(what string) error {
	return Wrap(ErrNotImplemented, what)
}

// NewLimitExceededError reports which limit was crossed and its value.
func NewLimitExceededError(limit string, value int) error {
	return Wrapf(ErrLimitExceeded, "%s %d", limit, value)
}

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsMissingTypeArgumentsError checks if an error is or wraps ErrMissingTypeArguments
func IsMissingTypeArgumentsError(err error) bool {
	return err != nil && Is(err, ErrMissingTypeArguments)
}

// IsUnsupportedTypeError checks if an error is or wraps ErrUnsupportedType
func IsUnsupportedTypeError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedType)
}

// IsNotConstructibleError checks if an error is or wraps ErrNotConstructible
func IsNotConstructibleError(err error) bool {
	return err != nil && Is(err, ErrNotConstructible)
}

// IsNotImplementedError checks if an error is or wraps ErrNotImplemented
func IsNotImplementedError(err error) bool {
	return err != nil && Is(err, ErrNotImplemented)
}

// IsLimitExceededError checks if an error is or wraps ErrLimitExceeded
func IsLimitExceededError(err error) bool {
	return err != nil && Is(err, ErrLimitExceeded)
}
