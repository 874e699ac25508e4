package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/onnwee/praca/internal/facility"
)

// maxImportSize caps the spreadsheet upload at 10 MB.
const maxImportSize = 10 << 20

// FacilityHandlers serves the public-service endpoints: CRUD,
// lifecycle, proximity search, statistics and bulk import.
type FacilityHandlers struct {
	facilities    *facility.Service
	defaultRadius float64
}

// NewFacilityHandlers creates the facility handlers.
func NewFacilityHandlers(facilities *facility.Service, defaultRadius float64) *FacilityHandlers {
	if defaultRadius <= 0 {
		defaultRadius = facility.DefaultRadiusKM
	}
	return &FacilityHandlers{facilities: facilities, defaultRadius: defaultRadius}
}

// Create handles POST /servicos.
func (h *FacilityHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req facility.CreateInput
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	f, err := h.facilities.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// List handles GET /servicos. ?tipo= filters by type; ?todos=true
// includes deactivated facilities.
func (h *FacilityHandlers) List(w http.ResponseWriter, r *http.Request) {
	if facilityType := r.URL.Query().Get("tipo"); facilityType != "" {
		facilities, err := h.facilities.ByType(r.Context(), facilityType)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, facilities)
		return
	}

	activeOnly := r.URL.Query().Get("todos") != "true"
	facilities, err := h.facilities.List(r.Context(), activeOnly)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, facilities)
}

// Nearby handles GET /servicos/proximos?latitude=&longitude=&raio=.
func (h *FacilityHandlers) Nearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	latitude, err := strconv.ParseFloat(query.Get("latitude"), 64)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "latitude must be a number")
		return
	}
	longitude, err := strconv.ParseFloat(query.Get("longitude"), 64)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "longitude must be a number")
		return
	}

	radius := h.defaultRadius
	if raw := query.Get("raio"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "raio must be a number")
			return
		}
		radius = parsed
	}

	nearby, err := h.facilities.Nearby(r.Context(), latitude, longitude, radius)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nearby)
}

// Types handles GET /servicos/tipos.
func (h *FacilityHandlers) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.facilities.Types(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// Stats handles GET /servicos/estatisticas.
func (h *FacilityHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.facilities.Stats(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Get handles GET /servicos/{id}.
func (h *FacilityHandlers) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.facilities.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Update handles PATCH /servicos/{id}.
func (h *FacilityHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req facility.Update
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	f, err := h.facilities.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Deactivate handles POST /servicos/{id}/desativar (soft delete).
func (h *FacilityHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	f, err := h.facilities.Deactivate(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Reactivate handles POST /servicos/{id}/reativar.
func (h *FacilityHandlers) Reactivate(w http.ResponseWriter, r *http.Request) {
	f, err := h.facilities.Reactivate(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Delete handles DELETE /servicos/{id} (hard delete).
func (h *FacilityHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.facilities.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /servicos/importar. The spreadsheet comes as the
// multipart field "arquivo"; the filename picks the parser.
func (h *FacilityHandlers) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("arquivo")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "multipart field arquivo is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "failed to read uploaded file")
		return
	}

	summary, err := h.facilities.Import(r.Context(), header.Filename, data)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
