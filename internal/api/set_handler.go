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

// SetHandler handles flashcard set CRUD requests.
type SetHandler struct {
	sets   store.SetStore
	logger *slog.Logger
}

// NewSetHandler creates a SetHandler.
func NewSetHandler(sets store.SetStore, logger *slog.Logger) *SetHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SetHandler")
	}

	return &SetHandler{
		sets:   sets,
		logger: logger.With(slog.String("component", "set_handler")),
	}
}

// ListSets handles GET /flashcard_sets requests. An empty list is a valid
// 200 response with an empty array body.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sets, err := h.sets.ListSets(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcard sets")
		return
	}

	response := make([]SetResponse, len(sets))
	for i, set := range sets {
		response[i] = setToResponse(set)
	}

	log.Debug("listed flashcard sets", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateSet handles POST /flashcard_sets requests.
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	set, err := h.sets.CreateSet(r.Context(), req.Title, req.Description, payloadToCards(req.Cards))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("created flashcard set",
		slog.String("set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, setToResponse(set))
}

// GetSet handles GET /flashcard_sets/{setID} requests.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.sets.GetSet(r.Context(), setID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(set))
}

// UpdateSet handles PATCH /flashcard_sets/{setID} requests. The body
// carries only changed fields; absent fields stay untouched.
func (h *SetHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateSetRequest
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

	patch := domain.SetPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Cards != nil {
		cards := payloadToCards(*req.Cards)
		patch.Cards = &cards
	}

	set, err := h.sets.UpdateSet(r.Context(), setID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("updated flashcard set", slog.String("set_id", setID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(set))
}

// DeleteSet handles DELETE /flashcard_sets/{setID} requests. Deleting a set
// removes every embedded card with it; the removed aggregate is echoed back.
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	setID, err := getPathUUID(r, "setID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.sets.DeleteSet(r.Context(), setID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("deleted flashcard set",
		slog.String("set_id", setID.String()),
		slog.Int("card_count", len(set.Cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(set))
}
