package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
)

// PostgresSetStore implements the store.SetStore interface using a
// PostgreSQL database as the storage backend. Each flashcard set is one row;
// the card sub-collection lives in a JSONB column, so the aggregate is read
// and written as a unit. Card-level operations run a read-modify-write of
// the whole row inside a transaction with the row locked.
type PostgresSetStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresSetStore creates a new PostgreSQL implementation of the
// SetStore interface. The database connection must be initialized and
// managed by the caller. If logger is nil, a default logger is used.
func NewPostgresSetStore(db *sql.DB, logger *slog.Logger) *PostgresSetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "set_store")),
	}
}

// Ensure PostgresSetStore implements store.SetStore interface
var _ store.SetStore = (*PostgresSetStore)(nil)

// CreateSet implements store.SetStore.CreateSet.
// It builds a validated aggregate from the inputs and saves it as one row.
func (s *PostgresSetStore) CreateSet(
	ctx context.Context,
	title, description string,
	cards []domain.Card,
) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := domain.NewFlashcardSet(title, description, cards)
	if err != nil {
		log.Warn("set validation failed during create",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cardsJSON, err := json.Marshal(set.Cards)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cards: %w", err)
	}

	query := `
		INSERT INTO flashcard_sets (id, title, description, cards, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(
		ctx,
		query,
		set.ID,
		set.Title,
		set.Description,
		cardsJSON,
		set.CreatedAt,
		set.UpdatedAt,
	); err != nil {
		log.Error("failed to create flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return nil, MapError(err)
	}

	log.Info("flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)))
	return set, nil
}

// GetSet implements store.SetStore.GetSet.
// Returns store.ErrSetNotFound if the set does not exist.
func (s *PostgresSetStore) GetSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := scanSet(s.db.QueryRowContext(ctx, `
		SELECT id, title, description, cards, created_at, updated_at
		FROM flashcard_sets
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard set not found", slog.String("set_id", id.String()))
			return nil, store.ErrSetNotFound
		}
		log.Error("failed to get flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, MapError(err)
	}

	return set, nil
}

// ListSets implements store.SetStore.ListSets.
// Sets come back in insertion order; an empty slice is a valid result.
func (s *PostgresSetStore) ListSets(ctx context.Context) ([]*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, cards, created_at, updated_at
		FROM flashcard_sets
		ORDER BY created_at
	`)
	if err != nil {
		log.Error("failed to list flashcard sets", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	sets := make([]*domain.FlashcardSet, 0)
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, MapError(err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sets, nil
}

// UpdateSet implements store.SetStore.UpdateSet.
// Only fields present in the patch are applied; the rest of the aggregate
// is left untouched. The whole row is re-saved either way.
func (s *PostgresSetStore) UpdateSet(
	ctx context.Context,
	id uuid.UUID,
	patch domain.SetPatch,
) (*domain.FlashcardSet, error) {
	var updated *domain.FlashcardSet

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		set, err := getSetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := set.Apply(patch); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		if err := saveSet(ctx, tx, set); err != nil {
			return err
		}

		updated = set
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteSet implements store.SetStore.DeleteSet.
// The removed aggregate, cards included, is returned for caller confirmation.
func (s *PostgresSetStore) DeleteSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := scanSet(s.db.QueryRowContext(ctx, `
		DELETE FROM flashcard_sets
		WHERE id = $1
		RETURNING id, title, description, cards, created_at, updated_at
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSetNotFound
		}
		log.Error("failed to delete flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("flashcard set deleted",
		slog.String("set_id", id.String()),
		slog.Int("card_count", len(set.Cards)))
	return set, nil
}

// AddCard implements store.SetStore.AddCard.
func (s *PostgresSetStore) AddCard(
	ctx context.Context,
	setID uuid.UUID,
	term, definition string,
	starred bool,
) (*domain.Card, error) {
	var added domain.Card

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		set, err := getSetForUpdate(ctx, tx, setID)
		if err != nil {
			return err
		}

		card, err := set.AddCard(term, definition, starred)
		if err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		if err := saveSet(ctx, tx, set); err != nil {
			return err
		}

		added = *card
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &added, nil
}

// UpdateCard implements store.SetStore.UpdateCard.
// The patch is field-level: unsupplied fields keep their current values.
func (s *PostgresSetStore) UpdateCard(
	ctx context.Context,
	setID uuid.UUID,
	cardID string,
	patch domain.CardPatch,
) (*domain.Card, error) {
	var updated domain.Card

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		set, err := getSetForUpdate(ctx, tx, setID)
		if err != nil {
			return err
		}

		card, err := set.UpdateCard(cardID, patch)
		if err != nil {
			if errors.Is(err, domain.ErrCardNotInSet) {
				return store.ErrCardNotFound
			}
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		if err := saveSet(ctx, tx, set); err != nil {
			return err
		}

		updated = *card
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteCard implements store.SetStore.DeleteCard.
// Deleting a card that is not in the set reports store.ErrCardNotFound.
func (s *PostgresSetStore) DeleteCard(ctx context.Context, setID uuid.UUID, cardID string) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		set, err := getSetForUpdate(ctx, tx, setID)
		if err != nil {
			return err
		}

		if err := set.RemoveCard(cardID); err != nil {
			return store.ErrCardNotFound
		}

		return saveSet(ctx, tx, set)
	})
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*domain.FlashcardSet, error) {
	var set domain.FlashcardSet
	var cardsJSON []byte

	if err := row.Scan(
		&set.ID,
		&set.Title,
		&set.Description,
		&cardsJSON,
		&set.CreatedAt,
		&set.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(cardsJSON, &set.Cards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cards: %w", err)
	}
	if set.Cards == nil {
		set.Cards = []domain.Card{}
	}

	return &set, nil
}

// getSetForUpdate fetches a set with its row locked, so concurrent
// card-level writes serialize instead of clobbering each other. Callers run
// it inside a transaction; the DBTX seam keeps it testable against either.
func getSetForUpdate(ctx context.Context, tx store.DBTX, id uuid.UUID) (*domain.FlashcardSet, error) {
	set, err := scanSet(tx.QueryRowContext(ctx, `
		SELECT id, title, description, cards, created_at, updated_at
		FROM flashcard_sets
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSetNotFound
		}
		return nil, MapError(err)
	}
	return set, nil
}

// saveSet writes the aggregate back in full, cards included.
func saveSet(ctx context.Context, tx store.DBTX, set *domain.FlashcardSet) error {
	cardsJSON, err := json.Marshal(set.Cards)
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}

	set.UpdatedAt = time.Now().UTC()

	result, err := tx.ExecContext(ctx, `
		UPDATE flashcard_sets
		SET title = $1, description = $2, cards = $3, updated_at = $4
		WHERE id = $5
	`, set.Title, set.Description, cardsJSON, set.UpdatedAt, set.ID)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrSetNotFound
	}

	return nil
}
