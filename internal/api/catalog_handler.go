package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/llcgdb/catalog-api/internal/api/shared"
	"github.com/llcgdb/catalog-api/internal/service"
)

// AddSetRequest represents the request body for registering a release set.
type AddSetRequest struct {
	SetCode string `json:"set_code" validate:"required"`
	Name    string `json:"name"     validate:"required"`
}

// AddNamedRequest represents the request body for registering a group or
// unit, which are both just curated names.
type AddNamedRequest struct {
	Name string `json:"name" validate:"required"`
}

// SweepResponse reports how many orphan rows a sweep removed.
type SweepResponse struct {
	Removed int64 `json:"removed"`
}

// CatalogHandler handles the curated-list admin endpoints: sets, groups,
// units, canonical names, and the orphan-skill sweep.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListSets handles GET /api/sets requests
func (h *CatalogHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.catalogService.ListSets(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sets)
}

// AddSet handles POST /api/sets requests
func (h *CatalogHandler) AddSet(w http.ResponseWriter, r *http.Request) {
	var req AddSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	set, err := h.catalogService.AddSet(r.Context(), req.SetCode, req.Name)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, set)
}

// DeleteSet handles DELETE /api/sets/{code} requests
func (h *CatalogHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	setCode := chi.URLParam(r, "code")
	if err := h.catalogService.DeleteSet(r.Context(), setCode); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListGroups handles GET /api/groups requests
func (h *CatalogHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalogService.ListGroups(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if groups == nil {
		groups = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, groups)
}

// AddGroup handles POST /api/groups requests
func (h *CatalogHandler) AddGroup(w http.ResponseWriter, r *http.Request) {
	var req AddNamedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.catalogService.AddGroup(r.Context(), req.Name)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, group)
}

// DeleteGroup handles DELETE /api/groups/{name} requests
func (h *CatalogHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.catalogService.DeleteGroup(r.Context(), name); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUnits handles GET /api/units requests
func (h *CatalogHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.catalogService.ListUnits(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if units == nil {
		units = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, units)
}

// AddUnit handles POST /api/units requests
func (h *CatalogHandler) AddUnit(w http.ResponseWriter, r *http.Request) {
	var req AddNamedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	unit, err := h.catalogService.AddUnit(r.Context(), req.Name)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, unit)
}

// DeleteUnit handles DELETE /api/units/{name} requests
func (h *CatalogHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.catalogService.DeleteUnit(r.Context(), name); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNames handles GET /api/names requests
func (h *CatalogHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalogService.ListNames(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, names)
}

// SweepOrphanSkills handles DELETE /api/skills/orphans requests
func (h *CatalogHandler) SweepOrphanSkills(w http.ResponseWriter, r *http.Request) {
	removed, err := h.catalogService.SweepOrphanSkills(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SweepResponse{Removed: removed})
}
