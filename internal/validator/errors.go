package validator

import (
	"errors"
	"strings"
)

// ErrMissingFields is matched by every MissingFieldsError.
var ErrMissingFields = errors.New("time entry is missing required fields")

// MissingFieldsError lists the schema fields an entry still lacks, in
// schema order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return ErrMissingFields.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}
