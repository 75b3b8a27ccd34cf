package core

import "errors"

// Common errors.
var (
	// ErrInvariantViolation is returned when an operation would leave the
	// store without notes.
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNoteNotFound       = errors.New("note not found")
	ErrLineOutOfRange     = errors.New("line index out of range")
	ErrReadOnly           = errors.New("store is in read-only mode")
)
