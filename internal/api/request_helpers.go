package api

import (
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getPathUUID extracts and parses a UUID path parameter. A missing
// parameter maps to ErrValidation and a malformed one to ErrInvalidID, so
// both reach the client as 400s with distinct messages.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathCardID extracts a card's opaque string ID from the path. Card IDs
// are nanoids, not UUIDs; only presence is checked here, existence is the
// store's concern.
func getPathCardID(r *http.Request, paramName string) (string, error) {
	cardID := chi.URLParam(r, paramName)
	if cardID == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return cardID, nil
}
