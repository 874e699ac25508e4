package api

import (
	"net/http"

	"github.com/onnwee/praca/internal/purge"
)

// AdminHandlers serves the administrative endpoints.
type AdminHandlers struct {
	purge *purge.Service
}

// NewAdminHandlers creates the admin handlers.
func NewAdminHandlers(purgeService *purge.Service) *AdminHandlers {
	return &AdminHandlers{purge: purgeService}
}

// Purge handles POST /admin/thanos: wipes every collection. There is no
// undo; the route name is the warning.
func (h *AdminHandlers) Purge(w http.ResponseWriter, r *http.Request) {
	if err := h.purge.Wipe(r.Context()); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "todos os dados foram removidos"})
}
