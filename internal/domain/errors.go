package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for sibling list preconditions
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrWrongParity     = errors.New("index has wrong parity")
	ErrKindMismatch    = errors.New("card kind does not match list")
	ErrNotFound        = errors.New("not found")
)

// IndexError reports a rejected list operation
type IndexError struct {
	Op    string
	Index int
	Len   int
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s at %d (len %d): %v", e.Op, e.Index, e.Len, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
