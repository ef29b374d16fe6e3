package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers map these to HTTP statuses
// with errors.Is; anything unwrapped falls through to the catch-all 500.
var (
	// ErrInvalid marks malformed or out-of-range input, detected before any
	// persistence attempt.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks unique-name collisions and referential-integrity
	// blocks on delete.
	ErrConflict = errors.New("conflict")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
