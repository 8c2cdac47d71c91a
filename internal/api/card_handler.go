package api

import (
	"log/slog"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/redact"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// CardHandler handles card requests nested under a flashcard set.
type CardHandler struct {
	sets   store.SetStore
	logger *slog.Logger
}

// NewCardHandler creates a CardHandler.
func NewCardHandler(sets store.SetStore, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		sets:   sets,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /flashcard_sets/{setID}/cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", setID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.sets.AddCard(r.Context(), setID, req.Term, req.Definition, req.Starred)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("added card",
		slog.String("set_id", setID.String()),
		slog.String("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// UpdateCard handles PATCH /flashcard_sets/{setID}/cards/{cardID} requests.
// Only supplied fields change; the card keeps its ID and position.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	cardID, err := getPathCardID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", setID.String()),
			slog.String("card_id", cardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.sets.UpdateCard(r.Context(), setID, cardID, domain.CardPatch{
		Term:       req.Term,
		Definition: req.Definition,
		Starred:    req.Starred,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("updated card",
		slog.String("set_id", setID.String()),
		slog.String("card_id", cardID))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /flashcard_sets/{setID}/cards/{cardID} requests.
// Success carries no body; deleting an absent card is a 404, not a no-op.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	cardID, err := getPathCardID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sets.DeleteCard(r.Context(), setID, cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("deleted card",
		slog.String("set_id", setID.String()),
		slog.String("card_id", cardID))
	w.WriteHeader(http.StatusNoContent)
}
