package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FlashcardSet-specific validation errors
var (
	// ErrSetIDEmpty is returned when a set ID is empty or nil.
	ErrSetIDEmpty = errors.New("set ID cannot be empty")

	// ErrSetTitleEmpty is returned when a set's title is empty.
	ErrSetTitleEmpty = errors.New("set title cannot be empty")

	// ErrSetDescriptionEmpty is returned when a set's description is empty.
	ErrSetDescriptionEmpty = errors.New("set description cannot be empty")

	// ErrDuplicateCardID is returned when two cards in a set share an ID.
	ErrDuplicateCardID = errors.New("duplicate card ID within set")

	// ErrCardNotInSet is returned when a card ID does not resolve within a set.
	ErrCardNotInSet = errors.New("card not found in set")
)

// FlashcardSet is the aggregate root owning an ordered collection of cards.
// Cards are persisted embedded within their parent set and mutated through
// the aggregate, never independently. Card order is the authoring order and
// matters for display, not identity; card lookup is always by ID.
type FlashcardSet struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cards       []Card    `json:"cards"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFlashcardSet creates a new FlashcardSet with the given title,
// description, and cards. It generates a new UUID for the set ID and a fresh
// nanoid for every supplied card, and sets the creation/update timestamps.
// Returns an error if validation fails for the set or any card.
func NewFlashcardSet(title, description string, cards []Card) (*FlashcardSet, error) {
	set := &FlashcardSet{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Cards:       make([]Card, 0, len(cards)),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	for _, c := range cards {
		card, err := NewCard(c.Term, c.Definition, c.Starred)
		if err != nil {
			return nil, err
		}
		set.Cards = append(set.Cards, *card)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the FlashcardSet has valid data, including every
// embedded card and the uniqueness of card IDs.
// Returns an error if any field fails validation.
func (s *FlashcardSet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSetIDEmpty
	}

	if s.Title == "" {
		return ErrSetTitleEmpty
	}

	if s.Description == "" {
		return ErrSetDescriptionEmpty
	}

	seen := make(map[string]bool, len(s.Cards))
	for i := range s.Cards {
		if err := s.Cards[i].Validate(); err != nil {
			return err
		}
		if seen[s.Cards[i].ID] {
			return ErrDuplicateCardID
		}
		seen[s.Cards[i].ID] = true
	}

	return nil
}

// CardByID returns a pointer to the card with the given ID.
// Returns ErrCardNotInSet if no card with that ID exists.
func (s *FlashcardSet) CardByID(cardID string) (*Card, error) {
	for i := range s.Cards {
		if s.Cards[i].ID == cardID {
			return &s.Cards[i], nil
		}
	}
	return nil, ErrCardNotInSet
}

// AddCard creates a card with a fresh ID from the given fields and appends
// it to the set's collection.
func (s *FlashcardSet) AddCard(term, definition string, starred bool) (*Card, error) {
	card, err := NewCard(term, definition, starred)
	if err != nil {
		return nil, err
	}

	s.Cards = append(s.Cards, *card)
	s.UpdatedAt = time.Now().UTC()
	return &s.Cards[len(s.Cards)-1], nil
}

// UpdateCard applies a partial update to the card with the given ID.
// Unsupplied fields are left unchanged.
// Returns ErrCardNotInSet if the card does not exist.
func (s *FlashcardSet) UpdateCard(cardID string, patch CardPatch) (*Card, error) {
	card, err := s.CardByID(cardID)
	if err != nil {
		return nil, err
	}

	if err := card.Apply(patch); err != nil {
		return nil, err
	}

	s.UpdatedAt = time.Now().UTC()
	return card, nil
}

// RemoveCard deletes the card with the given ID from the set's collection,
// preserving the order of the remaining cards.
// Returns ErrCardNotInSet if the card does not exist; deleting an absent
// card is an error, not a no-op.
func (s *FlashcardSet) RemoveCard(cardID string) error {
	for i := range s.Cards {
		if s.Cards[i].ID == cardID {
			s.Cards = append(s.Cards[:i], s.Cards[i+1:]...)
			s.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrCardNotInSet
}

// SetPatch describes a partial update to a flashcard set. Nil fields are
// left untouched. Cards, when supplied, is a full replacement of the card
// collection: existing IDs are preserved for cards that carry one, and new
// IDs are assigned to cards that don't.
type SetPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Cards       *[]Card `json:"cards,omitempty"`
}

// Apply copies the supplied fields onto the set and re-validates it.
// On any failure the set is restored to its prior state.
func (s *FlashcardSet) Apply(patch SetPatch) error {
	orig := *s
	origCards := make([]Card, len(s.Cards))
	copy(origCards, s.Cards)

	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.Cards != nil {
		replaced := make([]Card, 0, len(*patch.Cards))
		for _, c := range *patch.Cards {
			if c.ID == "" {
				card, err := NewCard(c.Term, c.Definition, c.Starred)
				if err != nil {
					s.restore(orig, origCards)
					return err
				}
				replaced = append(replaced, *card)
				continue
			}
			replaced = append(replaced, c)
		}
		s.Cards = replaced
	}

	if err := s.Validate(); err != nil {
		s.restore(orig, origCards)
		return err
	}

	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *FlashcardSet) restore(orig FlashcardSet, origCards []Card) {
	*s = orig
	s.Cards = origCards
}
