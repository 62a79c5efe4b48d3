package repository

import (
	"errors"
	"fmt"
)

var ErrMalformedRecord = errors.New("malformed record")

// StoreError wraps a failure of the backing store with the operation and location.
type StoreError struct {
	Op   string
	Path string // file path or table name
	Err  error
}

func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Op
	if e.Path != "" {
		base += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecordError reports one record that could not be decoded. It matches ErrMalformedRecord.
type RecordError struct {
	Line   int
	Record []string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func (e *RecordError) Is(target error) bool { return target == ErrMalformedRecord }
