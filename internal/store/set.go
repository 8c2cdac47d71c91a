package store

import (
	"context"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// SetStore defines the interface for flashcard set persistence.
//
// A flashcard set is persisted as one aggregate: the card sub-collection is
// stored embedded within its parent record, never as independent rows. Every
// mutating call therefore re-saves the aggregate in full, including cards the
// call did not touch. That is an accepted simplicity tradeoff, not a bug.
//
// All operations take a context and surface either a success value or an
// error; none swallow failures.
type SetStore interface {
	// CreateSet validates and saves a new flashcard set built from the given
	// title, description, and optional cards. The set and every supplied card
	// receive fresh IDs.
	// Returns validation errors wrapped in ErrInvalidEntity if the title or
	// description is empty, or if any card is missing its term or definition.
	CreateSet(ctx context.Context, title, description string, cards []domain.Card) (*domain.FlashcardSet, error)

	// GetSet retrieves a flashcard set with its embedded cards by ID.
	// Returns ErrSetNotFound if the set does not exist.
	GetSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)

	// ListSets returns all flashcard sets. Order is insertion order; an empty
	// slice is a valid result.
	ListSets(ctx context.Context) ([]*domain.FlashcardSet, error)

	// UpdateSet applies a partial update to a set: only the fields present in
	// the patch are changed, the rest are left untouched.
	// Returns ErrSetNotFound if the set does not exist, or validation errors
	// wrapped in ErrInvalidEntity for bad field values.
	UpdateSet(ctx context.Context, id uuid.UUID, patch domain.SetPatch) (*domain.FlashcardSet, error)

	// DeleteSet removes a set and, with it, every embedded card (cascade).
	// The removed aggregate is returned so callers can confirm what was
	// deleted. Returns ErrSetNotFound if the set does not exist.
	DeleteSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)

	// AddCard appends a card with a fresh ID to the identified set.
	// Returns ErrSetNotFound if the set does not exist, or validation errors
	// wrapped in ErrInvalidEntity for an empty term or definition.
	AddCard(ctx context.Context, setID uuid.UUID, term, definition string, starred bool) (*domain.Card, error)

	// UpdateCard applies a field-level partial update to one card.
	// Returns ErrSetNotFound if the set does not exist and ErrCardNotFound if
	// the card does not exist within it.
	UpdateCard(ctx context.Context, setID uuid.UUID, cardID string, patch domain.CardPatch) (*domain.Card, error)

	// DeleteCard removes the identified card from its set's collection.
	// Returns ErrSetNotFound if the set does not exist and ErrCardNotFound if
	// the card does not exist within it; deleting an already-absent card is
	// an error, not a no-op.
	DeleteCard(ctx context.Context, setID uuid.UUID, cardID string) error
}
