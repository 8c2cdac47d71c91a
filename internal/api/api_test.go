package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/quiz"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memorySetStore is an in-memory store.SetStore for handler tests. It
// reuses the domain aggregate for all mutation rules so handlers see the
// same validation and not-found behavior as the real store.
type memorySetStore struct {
	mu    sync.Mutex
	sets  map[uuid.UUID]*domain.FlashcardSet
	order []uuid.UUID
}

var _ store.SetStore = (*memorySetStore)(nil)

func newMemorySetStore() *memorySetStore {
	return &memorySetStore{sets: make(map[uuid.UUID]*domain.FlashcardSet)}
}

func (m *memorySetStore) CreateSet(_ context.Context, title, description string, cards []domain.Card) (*domain.FlashcardSet, error) {
	set, err := domain.NewFlashcardSet(title, description, cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[set.ID] = set
	m.order = append(m.order, set.ID)
	copied := *set
	return &copied, nil
}

func (m *memorySetStore) GetSet(_ context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[id]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	copied := *set
	return &copied, nil
}

func (m *memorySetStore) ListSets(_ context.Context) ([]*domain.FlashcardSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.FlashcardSet, 0, len(m.order))
	for _, id := range m.order {
		copied := *m.sets[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memorySetStore) UpdateSet(_ context.Context, id uuid.UUID, patch domain.SetPatch) (*domain.FlashcardSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[id]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	if err := set.Apply(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	copied := *set
	return &copied, nil
}

func (m *memorySetStore) DeleteSet(_ context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[id]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	delete(m.sets, id)
	for i, sid := range m.order {
		if sid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return set, nil
}

func (m *memorySetStore) AddCard(_ context.Context, setID uuid.UUID, term, definition string, starred bool) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[setID]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	card, err := set.AddCard(term, definition, starred)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	copied := *card
	return &copied, nil
}

func (m *memorySetStore) UpdateCard(_ context.Context, setID uuid.UUID, cardID string, patch domain.CardPatch) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[setID]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	card, err := set.UpdateCard(cardID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotInSet) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	copied := *card
	return &copied, nil
}

func (m *memorySetStore) DeleteCard(_ context.Context, setID uuid.UUID, cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[setID]
	if !ok {
		return store.ErrSetNotFound
	}
	if err := set.RemoveCard(cardID); err != nil {
		return store.ErrCardNotFound
	}
	return nil
}

// stubQuizSource returns canned quiz cards or a fixed error.
type stubQuizSource struct {
	cards []quiz.QuizCard
	err   error
}

func (s *stubQuizSource) QuizCards(_ context.Context, _ uuid.UUID) ([]quiz.QuizCard, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cards, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the handlers under the real route layout.
func newTestRouter(sets store.SetStore, quizSource QuizSource) chi.Router {
	log := testLogger()
	setHandler := NewSetHandler(sets, log)
	cardHandler := NewCardHandler(sets, log)

	r := chi.NewRouter()
	r.Route("/flashcard_sets", func(r chi.Router) {
		r.Get("/", setHandler.ListSets)
		r.Post("/", setHandler.CreateSet)
		r.Route("/{setID}", func(r chi.Router) {
			r.Get("/", setHandler.GetSet)
			r.Patch("/", setHandler.UpdateSet)
			r.Delete("/", setHandler.DeleteSet)

			r.Post("/cards", cardHandler.CreateCard)
			r.Patch("/cards/{cardID}", cardHandler.UpdateCard)
			r.Delete("/cards/{cardID}", cardHandler.DeleteCard)

			if quizSource != nil {
				quizHandler := NewQuizHandler(quizSource, log)
				r.Get("/quiz", quizHandler.GetQuiz)
			}
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeSet(t *testing.T, body *bytes.Buffer) SetResponse {
	t.Helper()
	var set SetResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &set))
	return set
}
