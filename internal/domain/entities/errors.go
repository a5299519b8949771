package entities

import "errors"

// Sentinel errors for the domain layer. Services wrap these with context
// via fmt.Errorf and %w; callers match them with errors.Is.
var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
	// ErrValidation indicates malformed or inconsistent input.
	ErrValidation = errors.New("invalid input")
)
