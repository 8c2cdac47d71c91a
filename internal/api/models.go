package api

import (
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// CardResponse is the wire representation of one card.
type CardResponse struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Starred    bool   `json:"starred"`
}

// SetResponse is the wire representation of a flashcard set with its
// embedded cards.
type SetResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Cards       []CardResponse `json:"cards"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateSetRequest is the body for POST /flashcard_sets. Cards are optional;
// supplied cards are validated individually.
type CreateSetRequest struct {
	Title       string        `json:"title"       validate:"required"`
	Description string        `json:"description" validate:"required"`
	Cards       []CardPayload `json:"cards"       validate:"omitempty,dive"`
}

// CardPayload is an embedded card in a set create or replace body. The ID is
// optional and matters only on the cards-replacement path, where a supplied
// ID carries the existing card through the replacement; on create every card
// gets a freshly minted ID regardless.
type CardPayload struct {
	ID         string `json:"id,omitempty"`
	Term       string `json:"term"       validate:"required"`
	Definition string `json:"definition" validate:"required"`
	Starred    bool   `json:"starred"`
}

// UpdateSetRequest is the body for PATCH /flashcard_sets/{setID}. Only
// supplied fields change; a supplied cards array replaces the collection
// wholesale.
type UpdateSetRequest struct {
	Title       *string        `json:"title,omitempty"       validate:"omitempty,min=1"`
	Description *string        `json:"description,omitempty" validate:"omitempty,min=1"`
	Cards       *[]CardPayload `json:"cards,omitempty"       validate:"omitempty,dive"`
}

// CreateCardRequest is the body for POST /flashcard_sets/{setID}/cards.
type CreateCardRequest struct {
	Term       string `json:"term"       validate:"required"`
	Definition string `json:"definition" validate:"required"`
	Starred    bool   `json:"starred"`
}

// UpdateCardRequest is the body for PATCH /flashcard_sets/{setID}/cards/{cardID}.
type UpdateCardRequest struct {
	Term       *string `json:"term,omitempty"       validate:"omitempty,min=1"`
	Definition *string `json:"definition,omitempty" validate:"omitempty,min=1"`
	Starred    *bool   `json:"starred,omitempty"`
}

func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		Term:       card.Term,
		Definition: card.Definition,
		Starred:    card.Starred,
	}
}

func setToResponse(set *domain.FlashcardSet) SetResponse {
	cards := make([]CardResponse, len(set.Cards))
	for i := range set.Cards {
		cards[i] = cardToResponse(&set.Cards[i])
	}
	return SetResponse{
		ID:          set.ID.String(),
		Title:       set.Title,
		Description: set.Description,
		Cards:       cards,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

// payloadToCards converts embedded card payloads to domain cards, keeping
// any client-supplied IDs.
func payloadToCards(payloads []CardPayload) []domain.Card {
	cards := make([]domain.Card, len(payloads))
	for i, p := range payloads {
		cards[i] = domain.Card{
			ID:         p.ID,
			Term:       p.Term,
			Definition: p.Definition,
			Starred:    p.Starred,
		}
	}
	return cards
}
