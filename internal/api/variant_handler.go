package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/llcgdb/catalog-api/internal/api/shared"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/service"
)

// AddVariantRequest represents the request body for registering a synonym
// mapping from a variant spelling to its canonical form.
type AddVariantRequest struct {
	VariantName   string `json:"variant_name"   validate:"required"`
	CanonicalName string `json:"canonical_name" validate:"required"`
}

// VariantHandler handles the name- and group-variant admin endpoints. One
// handler serves both kinds; the route decides which table is addressed.
type VariantHandler struct {
	resolver *service.SynonymResolver
	kind     domain.VariantKind
}

// NewVariantHandler creates a new VariantHandler for the given kind.
func NewVariantHandler(resolver *service.SynonymResolver, kind domain.VariantKind) *VariantHandler {
	return &VariantHandler{
		resolver: resolver,
		kind:     kind,
	}
}

// ListVariants handles GET requests, returning the variant-to-canonical
// mapping for this handler's kind.
func (h *VariantHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.resolver.ListVariants(r.Context(), h.kind)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mappings)
}

// AddVariant handles POST requests. The resolver cache picks up the new
// mapping immediately; no reload round-trip is needed.
func (h *VariantHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	var req AddVariantRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	variant, err := domain.NewVariant(h.kind, req.VariantName, req.CanonicalName)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.resolver.AddVariant(r.Context(), variant); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, variant)
}

// DeleteVariant handles DELETE requests for a single variant string.
func (h *VariantHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	if err := h.resolver.DeleteVariant(r.Context(), h.kind, variant); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
