package editor

import (
	"context"
	"fmt"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// CommitFunc persists a tentatively applied edit. A non-nil returned set is
// the authoritative server copy and replaces the local one; returning
// (nil, nil) keeps the tentative copy as-is.
type CommitFunc func(ctx context.Context) (*domain.FlashcardSet, error)

// Apply runs one optimistic edit against a single set: the mutation is
// applied to the local copy first so the caller sees the change
// immediately, then commit confirms it with the repository. If commit
// fails, only the fields the mutation actually changed are reverted, and
// they are reverted against the set's current local copy rather than the
// snapshot taken before the edit. Edits to other fields that were confirmed
// while this commit was in flight therefore survive the rollback.
func (s *Store) Apply(ctx context.Context, id uuid.UUID, mutate func(set *domain.FlashcardSet) error, commit CommitFunc) error {
	before, err := s.Get(id)
	if err != nil {
		return err
	}

	tentative := cloneSet(before)
	if err := mutate(&tentative); err != nil {
		return fmt.Errorf("applying edit: %w", err)
	}
	s.Put(&tentative)

	confirmed, err := commit(ctx)
	if err != nil {
		s.revertEdit(id, before, &tentative)
		return fmt.Errorf("committing edit: %w", err)
	}
	if confirmed != nil {
		s.Put(confirmed)
	}
	return nil
}

// revertEdit undoes one failed edit by diffing the pre-edit snapshot
// against the tentative copy and restoring only the fields that differ,
// applied to whatever the set's current local copy is. A set removed from
// the store since the edit leaves nothing to revert.
func (s *Store) revertEdit(id uuid.UUID, before, tentative *domain.FlashcardSet) {
	current, err := s.Get(id)
	if err != nil {
		return
	}

	if tentative.Title != before.Title {
		current.Title = before.Title
	}
	if tentative.Description != before.Description {
		current.Description = before.Description
	}
	revertCards(current, before, tentative)

	s.Put(current)
}

// revertCards restores the card list portion of a failed edit. Cards the
// edit added are removed, cards it removed are re-inserted at their prior
// position, and cards it modified get each changed field restored
// individually. Cards the edit never touched are left exactly as they are
// in the current copy.
func revertCards(current, before, tentative *domain.FlashcardSet) {
	beforeByID := make(map[string]domain.Card, len(before.Cards))
	for _, c := range before.Cards {
		beforeByID[c.ID] = c
	}
	tentativeByID := make(map[string]domain.Card, len(tentative.Cards))
	for _, c := range tentative.Cards {
		tentativeByID[c.ID] = c
	}

	kept := current.Cards[:0]
	for _, c := range current.Cards {
		after, added := tentativeByID[c.ID]
		prior, existed := beforeByID[c.ID]
		if added && !existed {
			// Added by the failed edit; drop it.
			continue
		}
		if added && existed {
			if after.Term != prior.Term {
				c.Term = prior.Term
			}
			if after.Definition != prior.Definition {
				c.Definition = prior.Definition
			}
			if after.Starred != prior.Starred {
				c.Starred = prior.Starred
			}
		}
		kept = append(kept, c)
	}
	current.Cards = kept

	// Re-insert cards the failed edit removed, at their pre-edit index.
	for i, prior := range before.Cards {
		if _, still := tentativeByID[prior.ID]; still {
			continue
		}
		if containsCard(current.Cards, prior.ID) {
			continue
		}
		at := i
		if at > len(current.Cards) {
			at = len(current.Cards)
		}
		current.Cards = append(current.Cards[:at], append([]domain.Card{prior}, current.Cards[at:]...)...)
	}
}

func containsCard(cards []domain.Card, id string) bool {
	for i := range cards {
		if cards[i].ID == id {
			return true
		}
	}
	return false
}
