package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/quiz"
	"github.com/google/uuid"
)

// QuizSource produces quiz cards for a set. *quiz.Builder satisfies it.
type QuizSource interface {
	QuizCards(ctx context.Context, setID uuid.UUID) ([]quiz.QuizCard, error)
}

// QuizHandler handles quiz generation requests.
type QuizHandler struct {
	source QuizSource
	logger *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(source QuizSource, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		source: source,
		logger: logger.With(slog.String("component", "quiz_handler")),
	}
}

// GetQuiz handles GET /flashcard_sets/{setID}/quiz requests. The response
// is a raw array of quiz cards in set order, one per card, each carrying
// the correct definition and its generated distractors pre-shuffle;
// shuffling options for display is the consumer's concern. An empty set
// yields an empty array, not an error.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("building quiz", slog.String("set_id", setID.String()))

	cards, err := h.source.QuizCards(r.Context(), setID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("built quiz",
		slog.String("set_id", setID.String()),
		slog.Int("question_count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}
