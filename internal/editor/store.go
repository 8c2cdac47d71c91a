// Package editor holds the client-side editing state for flashcard sets: an
// explicit store of the working set list, passed by reference to
// collaborators instead of shared through globals, plus a two-phase
// optimistic apply for edits that must confirm against the repository.
package editor

import (
	"sync"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
)

// Store is the in-memory working copy of the set list. All reads return
// copies; callers never hold references into the store's own slices.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	sets []domain.FlashcardSet
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly fetched set list, e.g. after an initial load
// or a full refresh. Order is preserved as given.
func (s *Store) Replace(sets []domain.FlashcardSet) {
	copied := make([]domain.FlashcardSet, len(sets))
	for i := range sets {
		copied[i] = cloneSet(&sets[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = copied
}

// Sets returns a copy of the current set list in order.
func (s *Store) Sets() []domain.FlashcardSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FlashcardSet, len(s.sets))
	for i := range s.sets {
		out[i] = cloneSet(&s.sets[i])
	}
	return out
}

// Get returns a copy of one set, or store.ErrSetNotFound.
func (s *Store) Get(id uuid.UUID) (*domain.FlashcardSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sets {
		if s.sets[i].ID == id {
			set := cloneSet(&s.sets[i])
			return &set, nil
		}
	}
	return nil, store.ErrSetNotFound
}

// Put inserts the set, or replaces the entry with the same ID in place.
// New sets are appended, matching list order by creation.
func (s *Store) Put(set *domain.FlashcardSet) {
	copied := cloneSet(set)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sets {
		if s.sets[i].ID == copied.ID {
			s.sets[i] = copied
			return
		}
	}
	s.sets = append(s.sets, copied)
}

// Remove drops the set from the list. Removing an absent ID returns
// store.ErrSetNotFound and leaves the list unchanged.
func (s *Store) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sets {
		if s.sets[i].ID == id {
			s.sets = append(s.sets[:i], s.sets[i+1:]...)
			return nil
		}
	}
	return store.ErrSetNotFound
}

// Len reports the number of sets currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}

// cloneSet deep-copies a set so store entries and caller copies never share
// a cards slice.
func cloneSet(set *domain.FlashcardSet) domain.FlashcardSet {
	out := *set
	out.Cards = make([]domain.Card, len(set.Cards))
	copy(out.Cards, set.Cards)
	return out
}
