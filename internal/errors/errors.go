// Package errors wraps github.com/cockroachdb/errors for use across eunify.
//
// Callers import this package instead of the standard library errors so
// wrapped errors carry stack traces, hints and details:
//
//	if err := src.LoadPreset(ctx, p); err != nil {
//	    return errors.Wrapf(err, "load preset %s", p.Key)
//	}
//
//	return errors.WithHint(err, "use valueMap(true) or elementMap()")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
)

// User-facing hints and details
var (
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinels shared by the pipeline packages. Wrap them to add context.
var (
	// ErrNotFound indicates an unknown preset, vertex or edge
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed input such as an empty query
	ErrInvalidRequest = New("invalid request")

	// ErrServiceUnavailable indicates the graph backend could not be reached
	ErrServiceUnavailable = New("service unavailable")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequest reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotFound creates a not-found error with a formatted message.
func NewNotFound(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequest creates an invalid-request error with a formatted message.
func NewInvalidRequest(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
