package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/api/shared"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/service"
)

// HeartEntryRequest is one entry of a card's heart multiset.
type HeartEntryRequest struct {
	Color string `json:"color" validate:"required"`
	Count int    `json:"count" validate:"required,min=1"`
}

// CardRequest represents the request body for creating or replacing a
// card. The compound card_identifier carries the natural key plus the
// rarity code of the printing being entered. The attribute fields are a
// union across the three card types; which ones are allowed depends on
// card_type, and setting a field belonging to a different type is
// rejected.
type CardRequest struct {
	CardIdentifier string              `json:"card_identifier" validate:"required"`
	Name           string              `json:"name"            validate:"required"`
	CardType       string              `json:"card_type"       validate:"required,oneof=Character Live Energy"`
	Cost           *int                `json:"cost,omitempty"`
	Blades         *int                `json:"blades,omitempty"`
	BladeHeart     *string             `json:"blade_heart,omitempty"`
	Score          *int                `json:"score,omitempty"`
	SpecialHeart   *string             `json:"special_heart,omitempty"`
	Hearts         []HeartEntryRequest `json:"hearts"`
	Groups         []string            `json:"groups"`
	Units          []string            `json:"units"`
	Skills         []string            `json:"skills"`
	ImageURL       *string             `json:"image_url,omitempty"`
}

// BulkCardRequest represents the request body for creating several cards
// in one atomic call.
type BulkCardRequest struct {
	Cards []CardRequest `json:"cards" validate:"required,min=1,dive"`
}

// CardCreatedResponse carries the ID of a newly created card.
type CardCreatedResponse struct {
	ID string `json:"id"`
}

// CardsCreatedResponse carries the IDs of a bulk creation, in input order.
type CardsCreatedResponse struct {
	IDs []string `json:"ids"`
}

// PrintingCreatedResponse carries the ID of a newly added printing.
type PrintingCreatedResponse struct {
	ID string `json:"id"`
}

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard handles POST /api/cards requests
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := toCardInput(req)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	cardID, err := h.cardService.CreateCard(r.Context(), input)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CardCreatedResponse{ID: cardID.String()})
}

// BulkCreateCards handles POST /api/cards/bulk requests. All cards are
// created in one transaction; one invalid card fails the whole batch.
func (h *CardHandler) BulkCreateCards(w http.ResponseWriter, r *http.Request) {
	var req BulkCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	inputs := make([]service.CardInput, 0, len(req.Cards))
	for _, cardReq := range req.Cards {
		input, err := toCardInput(cardReq)
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
		inputs = append(inputs, input)
	}

	ids, err := h.cardService.CreateCards(r.Context(), inputs)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := CardsCreatedResponse{IDs: make([]string, len(ids))}
	for i, id := range ids {
		response.IDs[i] = id.String()
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// GetCard handles GET /api/cards/{id} requests, returning the fully
// assembled card view.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	view, err := h.cardService.GetCard(r.Context(), cardID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// ListCards handles GET /api/cards requests, returning base rows only.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if cards == nil {
		cards = []*domain.Card{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// UpdateCard handles PUT /api/cards/{id} requests. The payload is the
// same shape as create; the card's type must match the stored one, and
// printings are left untouched.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req CardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := toCardInput(req)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.cardService.UpdateCard(r.Context(), cardID, input); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCard handles DELETE /api/cards/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), cardID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPrintingRequest represents the request body for registering another
// printing of an existing card.
type AddPrintingRequest struct {
	RarityCode string  `json:"rarity_code" validate:"required"`
	ImageURL   *string `json:"image_url,omitempty"`
}

// AddPrinting handles POST /api/cards/{id}/printings requests.
func (h *CardHandler) AddPrinting(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req AddPrintingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	printingID, err := h.cardService.AddPrinting(r.Context(), cardID, req.RarityCode, req.ImageURL)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, PrintingCreatedResponse{ID: printingID.String()})
}

// toCardInput converts a request body into a service.CardInput: the
// compound identifier is split into its components, and the flat attribute
// union is narrowed to the payload matching card_type. A field belonging
// to a different card type fails with ErrSubtypeMismatch.
func toCardInput(req CardRequest) (service.CardInput, error) {
	id, err := domain.ParseCardIdentifier(req.CardIdentifier)
	if err != nil {
		return service.CardInput{}, fmt.Errorf("%w: %q", err, req.CardIdentifier)
	}

	attrs, err := toAttributes(req)
	if err != nil {
		return service.CardInput{}, err
	}

	hearts := make([]domain.HeartEntry, len(req.Hearts))
	for i, entry := range req.Hearts {
		hearts[i] = domain.HeartEntry{Color: domain.HeartColor(entry.Color), Count: entry.Count}
	}

	return service.CardInput{
		SeriesCode:  id.SeriesCode,
		SetCode:     id.SetCode,
		NumberInSet: id.NumberInSet,
		RarityCode:  id.RarityCode,
		Name:        req.Name,
		Attributes:  attrs,
		Hearts:      hearts,
		Groups:      req.Groups,
		Units:       req.Units,
		Skills:      req.Skills,
		ImageURL:    req.ImageURL,
	}, nil
}

func toAttributes(req CardRequest) (domain.CardAttributes, error) {
	switch domain.CardType(req.CardType) {
	case domain.CardTypeCharacter:
		if req.Score != nil || req.SpecialHeart != nil {
			return nil, fmt.Errorf("%w: character cards cannot carry live attributes", domain.ErrSubtypeMismatch)
		}
		attrs := &domain.CharacterAttributes{}
		if req.Cost != nil {
			attrs.Cost = *req.Cost
		}
		if req.Blades != nil {
			attrs.Blades = *req.Blades
		}
		if req.BladeHeart != nil {
			bladeHeart := domain.BladeHeart(*req.BladeHeart)
			attrs.BladeHeart = &bladeHeart
		}
		return attrs, nil

	case domain.CardTypeLive:
		if req.Cost != nil || req.Blades != nil {
			return nil, fmt.Errorf("%w: live cards cannot carry character attributes", domain.ErrSubtypeMismatch)
		}
		attrs := &domain.LiveAttributes{}
		if req.Score != nil {
			attrs.Score = *req.Score
		}
		if req.BladeHeart != nil {
			bladeHeart := domain.BladeHeart(*req.BladeHeart)
			attrs.BladeHeart = &bladeHeart
		}
		if req.SpecialHeart != nil {
			specialHeart := domain.SpecialHeart(*req.SpecialHeart)
			attrs.SpecialHeart = &specialHeart
		}
		return attrs, nil

	case domain.CardTypeEnergy:
		if req.Cost != nil || req.Blades != nil || req.BladeHeart != nil || req.Score != nil || req.SpecialHeart != nil {
			return nil, fmt.Errorf("%w: energy cards carry no attributes", domain.ErrSubtypeMismatch)
		}
		return &domain.EnergyAttributes{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCardType, req.CardType)
	}
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: missing %s", domain.ErrValidation, paramName)
	}
	return uuid.Parse(pathParam)
}
