package ops

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors surfaced by generated record code. They live here, not in
// an internal package, because generated files in user modules import ops.
var (
	// ErrFrozen indicates a write to a frozen record instance.
	ErrFrozen = errors.New("record is frozen")

	// ErrUnknownField indicates an access to a name outside the record's
	// fixed field order.
	ErrUnknownField = errors.New("unknown field")

	// ErrStateSize indicates an ImportState value sequence whose length does
	// not match the record's field order.
	ErrStateSize = errors.New("state length mismatch")
)

// FrozenError builds the error returned by a frozen record's write path.
func FrozenError(record string) error {
	return errors.Wrapf(ErrFrozen, "%s", record)
}

// UnknownFieldError builds the error for an access outside the field order.
func UnknownFieldError(record, field string) error {
	return errors.Wrapf(ErrUnknownField, "%s: %q", record, field)
}

// StateSizeError builds the error for a mis-sized ImportState sequence.
func StateSizeError(record string, want, got int) error {
	return errors.Wrapf(ErrStateSize, "%s: want %d values, got %d", record, want, got)
}

// FieldTypeError builds the error for a dynamic Set with an incompatible value.
func FieldTypeError(record, field, wantType string, got any) error {
	return errors.Newf("%s: field %q expects %s, got %T", record, field, wantType, got)
}
