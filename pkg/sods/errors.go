package sods

import (
	"errors"
	"fmt"
)

// ErrNotODS indicates the input is not an OpenDocument spreadsheet: the
// mimetype entry is missing or wrong, or the container or its XML cannot be
// read.
var ErrNotODS = errors.New("not an ODS file")

// DecodeError is the fatal error returned by Load. It always matches
// ErrNotODS with errors.Is.
type DecodeError struct {
	// Entry is the container entry being read, empty for container-level
	// failures.
	Entry string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("%v: %v", ErrNotODS, e.Err)
	}
	return fmt.Sprintf("%v: entry %q: %v", ErrNotODS, e.Entry, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrNotODS as matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrNotODS
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(entry string, err error) *DecodeError {
	return &DecodeError{
		Entry: entry,
		Err:   err,
	}
}
