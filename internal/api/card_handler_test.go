package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCardTestSet(t *testing.T, router chi.Router) SetResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/flashcard_sets", CreateSetRequest{
		Title:       "European Capitals",
		Description: "Geography basics",
		Cards:       []CardPayload{{Term: "France", Definition: "Paris"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeSet(t, w.Body)
}

func TestCreateCard(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newMemorySetStore(), nil)
	set := createCardTestSet(t, router)

	w := doJSON(t, router, http.MethodPost, "/flashcard_sets/"+set.ID+"/cards", CreateCardRequest{
		Term:       "Spain",
		Definition: "Madrid",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var card CardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "Spain", card.Term)

	// The card is appended to the set's collection.
	w = doJSON(t, router, http.MethodGet, "/flashcard_sets/"+set.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeSet(t, w.Body)
	require.Len(t, fetched.Cards, 2)
	assert.Equal(t, card.ID, fetched.Cards[1].ID)
}

func TestCreateCardValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newMemorySetStore(), nil)
	set := createCardTestSet(t, router)

	w := doJSON(t, router, http.MethodPost, "/flashcard_sets/"+set.ID+"/cards", CreateCardRequest{
		Term: "no definition",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Definition")

	w = doJSON(t, router, http.MethodPost, "/flashcard_sets/"+uuid.NewString()+"/cards", CreateCardRequest{
		Term:       "Spain",
		Definition: "Madrid",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCardPartialIsolation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newMemorySetStore(), nil)
	set := createCardTestSet(t, router)
	cardID := set.Cards[0].ID

	starred := true
	w := doJSON(t, router, http.MethodPatch,
		"/flashcard_sets/"+set.ID+"/cards/"+cardID,
		UpdateCardRequest{Starred: &starred})
	require.Equal(t, http.StatusOK, w.Code)

	var card CardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, cardID, card.ID, "card keeps its ID across updates")
	assert.True(t, card.Starred)
	assert.Equal(t, "France", card.Term, "term untouched by starred-only patch")
	assert.Equal(t, "Paris", card.Definition)
}

func TestUpdateCardNotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newMemorySetStore(), nil)
	set := createCardTestSet(t, router)

	term := "x"
	w := doJSON(t, router, http.MethodPatch,
		"/flashcard_sets/"+set.ID+"/cards/missing-card",
		UpdateCardRequest{Term: &term})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Card not found")
}

func TestDeleteCard(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newMemorySetStore(), nil)
	set := createCardTestSet(t, router)
	cardID := set.Cards[0].ID

	w := doJSON(t, router, http.MethodDelete, "/flashcard_sets/"+set.ID+"/cards/"+cardID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String(), "delete-card success carries no body")

	// Deleting the same card again is NotFound, not a no-op.
	w = doJSON(t, router, http.MethodDelete, "/flashcard_sets/"+set.ID+"/cards/"+cardID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/flashcard_sets/"+set.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeSet(t, w.Body).Cards)
}
