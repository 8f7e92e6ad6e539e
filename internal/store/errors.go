// Package store provides reference implementations of the engine's
// repository interfaces plus the sentinel errors all implementations share.
package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is a generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCardNotFound indicates that the requested competence card does not
	// exist in the store.
	ErrCardNotFound = fmt.Errorf("%w: competence card", ErrNotFound)

	// ErrRecordNotFound indicates that the requested revision record does
	// not exist in the store.
	ErrRecordNotFound = fmt.Errorf("%w: revision record", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
