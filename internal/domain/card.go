package domain

import (
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardTermEmpty is returned when a card's term is empty.
	ErrCardTermEmpty = errors.New("card term cannot be empty")

	// ErrCardDefinitionEmpty is returned when a card's definition is empty.
	ErrCardDefinitionEmpty = errors.New("card definition cannot be empty")
)

// Card represents a single term/definition flashcard inside a set.
// The ID is an opaque nanoid assigned on creation; it never changes and is
// never reused within the owning set, even after the card is deleted.
type Card struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Starred    bool   `json:"starred"`
}

// NewCard creates a new Card with a freshly generated ID.
// Returns an error if validation fails or if ID generation fails.
func NewCard(term, definition string, starred bool) (*Card, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	card := &Card{
		ID:         id,
		Term:       term,
		Definition: definition,
		Starred:    starred,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ErrCardIDEmpty
	}

	if c.Term == "" {
		return ErrCardTermEmpty
	}

	if c.Definition == "" {
		return ErrCardDefinitionEmpty
	}

	return nil
}

// CardPatch describes a partial update to a card. Nil fields are left
// untouched; only the fields a caller supplies are applied.
type CardPatch struct {
	Term       *string `json:"term,omitempty"`
	Definition *string `json:"definition,omitempty"`
	Starred    *bool   `json:"starred,omitempty"`
}

// Apply copies the supplied fields onto the card and re-validates it.
// On validation failure the card is restored to its prior state.
func (c *Card) Apply(patch CardPatch) error {
	orig := *c

	if patch.Term != nil {
		c.Term = *patch.Term
	}
	if patch.Definition != nil {
		c.Definition = *patch.Definition
	}
	if patch.Starred != nil {
		c.Starred = *patch.Starred
	}

	if err := c.Validate(); err != nil {
		*c = orig
		return err
	}

	return nil
}
