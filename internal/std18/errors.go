package std18

import (
	"errors"
	"fmt"
)

var (
	// ErrUnidentifiedRecord means a line matched no known record label. It
	// is fatal: Parse stops at the first occurrence.
	ErrUnidentifiedRecord = errors.New("unidentified record")

	// ErrLineLength means a recognised record has the wrong width.
	ErrLineLength = errors.New("line length does not match record layout")
)

// UnidentifiedRecordError reports the position of a line that could not be
// classified.
type UnidentifiedRecordError struct {
	Line   int    // 1-based position in the stream
	Prefix string // up to the first eight characters of the line
}

func (e *UnidentifiedRecordError) Error() string {
	return fmt.Sprintf("line %d: %v (starts %q)", e.Line, ErrUnidentifiedRecord, e.Prefix)
}

func (e *UnidentifiedRecordError) Unwrap() error {
	return ErrUnidentifiedRecord
}

// FieldError reports a column whose contents could not be converted.
type FieldError struct {
	Row   Row
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: invalid value %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
