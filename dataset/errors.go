package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyFilepath is returned by adapter constructors when no filepath is
// given.
var ErrEmptyFilepath = errors.New("filepath is required")

// NotFoundError is returned by Load when the resolved path is missing.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset file not found: %s", e.Path)
}

// DecodeError is returned by Load when the file content cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
