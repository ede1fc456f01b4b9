package article

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below.
var (
	ErrMissingField = errors.New("missing front-matter field")
	ErrDateFormat   = errors.New("date does not match format")
)

// MissingFieldError reports a required field absent from a source.
type MissingFieldError struct {
	Source string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing front-matter field %q", e.Source, e.Field)
}

// Is matches ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// DateFormatError reports a date value that does not match the layout.
type DateFormatError struct {
	Source string
	Value  string
	Format string
	Err    error
}

func (e *DateFormatError) Error() string {
	msg := fmt.Sprintf("%s: date %q does not match format %q", e.Source, e.Value, e.Format)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrDateFormat.
func (e *DateFormatError) Is(target error) bool {
	return target == ErrDateFormat
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}
