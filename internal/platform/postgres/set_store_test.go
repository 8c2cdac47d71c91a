package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB opens a connection to the integration test database, skipping the
// test when DATABASE_URL is not set.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS flashcard_sets (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			cards JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	require.NoError(t, err)

	return db
}

func TestSetStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewPostgresSetStore(db, nil)
	ctx := context.Background()

	created, err := s.CreateSet(ctx, "Spanish basics", "Everyday vocabulary", []domain.Card{
		{Term: "hola", Definition: "hello"},
		{Term: "adios", Definition: "goodbye"},
	})
	require.NoError(t, err)
	require.Len(t, created.Cards, 2)

	fetched, err := s.GetSet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.Cards, fetched.Cards)
}

func TestSetStoreGetSetNotFound(t *testing.T) {
	db := testDB(t)
	s := NewPostgresSetStore(db, nil)

	_, err := s.GetSet(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, store.ErrSetNotFound))
}

func TestSetStoreCreateSetValidation(t *testing.T) {
	db := testDB(t)
	s := NewPostgresSetStore(db, nil)
	ctx := context.Background()

	_, err := s.CreateSet(ctx, "", "desc", nil)
	assert.True(t, errors.Is(err, store.ErrInvalidEntity))

	_, err = s.CreateSet(ctx, "title", "desc", []domain.Card{{Term: "t"}})
	assert.True(t, errors.Is(err, store.ErrInvalidEntity))
}

func TestSetStoreUpdateSetPartial(t *testing.T) {
	db := testDB(t)
	s := NewPostgresSetStore(db, nil)
	ctx := context.Background()

	created, err := s.CreateSet(ctx, "History", "World history dates", []domain.Card{
		{Term: "1066", Definition: "Battle of Hastings"},
	})
	require.NoError(t, err)

	desc := "European history dates"
	updated, err := s.UpdateSet(ctx, created.ID, domain.SetPatch{Description: &desc})
	require.NoError(t, err)

	// Only the description changed
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Cards, updated.Cards)

	_, err = s.UpdateSet(ctx, uuid.New(), domain.SetPatch{Description: &desc})
	assert.True(t, errors.Is(err, store.ErrSetNotFound))

	empty := ""
	_, err = s.UpdateSet(ctx, created.ID, domain.SetPatch{Title: &empty})
	assert.True(t, errors.Is(err, store.ErrInvalidEntity))
}

func TestSetStoreDeleteSetCascades(t *testing.T) {
	db := testDB(t)
	s := NewPostgresSetStore(db, nil)
	ctx := context.Background()

	created, err := s.CreateSet(ctx, "Doomed", "Will be deleted", []domain.Card{
		{Term: "ephemeral", Definition: "Lasting a very short time"},
	})
	require.NoError(t, err)

	removed, err := s.DeleteSet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Len(t, removed.Cards, 1)

	// The set and its cards are gone
	_, err = s.GetSet(ctx, created.ID)
	assert.True(t, errors.Is(err, store.ErrSetNotFound))

	_, err = s.DeleteSet(ctx, created.ID)
	assert.True(t, errors.Is(err, store.ErrSetNotFound))
}

func TestSetStoreCardLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewPostgresSetStore(db, nil)
	ctx := context.Background()

	created, err := s.CreateSet(ctx, "Chemistry", "Periodic table", []domain.Card{
		{Term: "Au", Definition: "Gold"},
	})
	require.NoError(t, err)

	card, err := s.AddCard(ctx, created.ID, "Fe", "Iron", false)
	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)

	// Field-level partial update
	starred := true
	updated, err := s.UpdateCard(ctx, created.ID, card.ID, domain.CardPatch{Starred: &starred})
	require.NoError(t, err)
	assert.True(t, updated.Starred)
	assert.Equal(t, "Fe", updated.Term)
	assert.Equal(t, "Iron", updated.Definition)

	// Delete restores the original card sequence by content
	require.NoError(t, s.DeleteCard(ctx, created.ID, card.ID))

	fetched, err := s.GetSet(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Cards, 1)
	assert.Equal(t, "Au", fetched.Cards[0].Term)

	// Deleting the same card again is an error, not a no-op
	err = s.DeleteCard(ctx, created.ID, card.ID)
	assert.True(t, errors.Is(err, store.ErrCardNotFound))

	// Unknown set is reported distinctly
	err = s.DeleteCard(ctx, uuid.New(), card.ID)
	assert.True(t, errors.Is(err, store.ErrSetNotFound))
}
