package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrSetNotFound, ErrCardNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is reserved for concurrent-edit detection. No current
	// operation returns it, but the API error mapper already understands it.
	ErrConflict = errors.New("conflicting update")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrSetNotFound indicates that the requested flashcard set does not exist.
	ErrSetNotFound = fmt.Errorf("%w: flashcard set", ErrNotFound)

	// ErrCardNotFound indicates that the requested card does not exist within
	// its set. Deleting or updating an absent card reports this; it is never
	// silently ignored.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
