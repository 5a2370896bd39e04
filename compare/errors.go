package compare

import (
	"errors"
	"fmt"
)

// These errors occur when a Criterion can't be constructed.
var (
	// ErrMissingField occurs when a Criterion is given no field.
	ErrMissingField = errors.New("criterion key must not be empty")

	// ErrNilRecord occurs when a Criterion is built from a nil
	// record.
	ErrNilRecord = errors.New("criterion record must not be nil")

	// ErrNotRecord occurs when a Criterion is built from
	// something that isn't a record at all.
	ErrNotRecord = errors.New("criterion must be given as a record")
)

// FormatError occurs when a value can't be coerced to a Criterion's
// Type.
//
// Comparisons that hit a FormatError are aborted.  What to do about
// the offending record is up to the caller.
type FormatError struct {
	// Field is the Criterion's field.
	Field string

	// Index is the position of the Criterion in its Comparator.
	Index int

	Type    Type
	Pattern string

	// Value is the raw value that couldn't be coerced.
	Value interface{}

	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(`criterion %d on key "%s" (%s): bad value %#v: %v`,
		e.Index, e.Field, e.Type, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// BatchError reports which entry of a batch of serialized criteria
// was malformed.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("criterion %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
