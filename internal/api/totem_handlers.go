package api

import (
	"net/http"
	"strconv"

	"github.com/onnwee/praca/internal/facility"
	"github.com/onnwee/praca/internal/totem"
)

// TotemHandlers serves the totem endpoints, including the "what is near
// this totem" proximity listing.
type TotemHandlers struct {
	totems        *totem.Service
	facilities    *facility.Service
	defaultRadius float64
}

// NewTotemHandlers creates the totem handlers. defaultRadius is the
// proximity search radius in km used when the request has no raio
// parameter.
func NewTotemHandlers(totems *totem.Service, facilities *facility.Service, defaultRadius float64) *TotemHandlers {
	if defaultRadius <= 0 {
		defaultRadius = facility.DefaultRadiusKM
	}
	return &TotemHandlers{totems: totems, facilities: facilities, defaultRadius: defaultRadius}
}

type createTotemRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Create handles POST /totens.
func (h *TotemHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createTotemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	t, err := h.totems.Create(r.Context(), req.Latitude, req.Longitude)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// List handles GET /totens.
func (h *TotemHandlers) List(w http.ResponseWriter, r *http.Request) {
	totems, err := h.totems.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totems)
}

// Get handles GET /totens/{id}.
func (h *TotemHandlers) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.totems.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /totens/{id}.
func (h *TotemHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.totems.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NearbyFacilities handles GET /totens/{id}/servicos. The optional raio
// query parameter overrides the configured default radius (km).
func (h *TotemHandlers) NearbyFacilities(w http.ResponseWriter, r *http.Request) {
	radius := h.defaultRadius
	if raw := r.URL.Query().Get("raio"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "raio must be a number")
			return
		}
		radius = parsed
	}

	nearby, err := h.facilities.NearbyTotem(r.Context(), h.totems, r.PathValue("id"), radius)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nearby)
}
