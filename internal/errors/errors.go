// Package errors provides error handling for record-composer.
//
// It re-exports github.com/cockroachdb/errors so the rest of the codebase
// gets stack traces, wrapping, and hints from a single import, and defines
// the sentinel errors for the synthesis pipeline's failure conditions.
//
// Usage:
//
//	if err := classify(decl); err != nil {
//	    return errors.Wrapf(err, "record %s", decl.Name)
//	}
//
//	if errors.Is(err, errors.ErrTemplateNotFound) {
//	    // the requested operation has no catalog entry or template
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping.
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// User-facing hints and details.
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection.
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Internal invariant violations. A constructor plan disagreeing with the
// field order list is a bug in the synthesizer, not a user error, and is
// reported through these rather than through diagnostics.
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the synthesis pipeline.
// Use with errors.Is(); wrap with errors.Wrap() to add per-record context.
var (
	// ErrInheritance indicates a record declaration tried to embed another
	// type. Records do not inherit; behavior is composed via delegate fields.
	ErrInheritance = New("records do not inherit")

	// ErrClassification indicates an ambiguous field declaration, such as a
	// second positional or keyword variadic capture on the same record.
	ErrClassification = New("ambiguous field classification")

	// ErrTemplateNotFound indicates a requested operation name that exists
	// in neither the protocol catalog nor the template store.
	ErrTemplateNotFound = New("operation template not found")

	// ErrUnknownType indicates a type-extraction marker that did not resolve
	// to any loaded type.
	ErrUnknownType = New("type not found in loaded packages")
)

// IsTemplateNotFound reports whether err is or wraps ErrTemplateNotFound.
func IsTemplateNotFound(err error) bool {
	return err != nil && Is(err, ErrTemplateNotFound)
}

// IsInheritance reports whether err is or wraps ErrInheritance.
func IsInheritance(err error) bool {
	return err != nil && Is(err, ErrInheritance)
}
