package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/llcgdb/catalog-api/internal/api/shared"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/service"
)

// AddRarityRequest represents the request body for adding a rarity code
// to the parallel allow-list.
type AddRarityRequest struct {
	RarityCode string `json:"rarity_code" validate:"required"`
	RarityType string `json:"rarity_type" validate:"required,oneof=Regular Parallel"`
}

// RarityResponse represents one rarity mapping.
type RarityResponse struct {
	RarityCode string `json:"rarity_code"`
	RarityType string `json:"rarity_type"`
}

// RarityHandler handles the rarity allow-list admin endpoints.
type RarityHandler struct {
	classifier *service.RarityClassifier
}

// NewRarityHandler creates a new RarityHandler
func NewRarityHandler(classifier *service.RarityClassifier) *RarityHandler {
	return &RarityHandler{
		classifier: classifier,
	}
}

// ListRarities handles GET /api/rarities requests, returning the full
// code-to-type mapping.
func (h *RarityHandler) ListRarities(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.classifier.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mappings)
}

// GetRarity handles GET /api/rarities/{code} requests
func (h *RarityHandler) GetRarity(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rarityType, err := h.classifier.Get(r.Context(), code)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RarityResponse{
		RarityCode: code,
		RarityType: string(rarityType),
	})
}

// AddRarity handles POST /api/rarities requests
func (h *RarityHandler) AddRarity(w http.ResponseWriter, r *http.Request) {
	var req AddRarityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.classifier.Add(r.Context(), req.RarityCode, domain.RarityType(req.RarityType)); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, RarityResponse{
		RarityCode: req.RarityCode,
		RarityType: req.RarityType,
	})
}

// DeleteRarity handles DELETE /api/rarities/{code} requests
func (h *RarityHandler) DeleteRarity(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.classifier.Delete(r.Context(), code); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
