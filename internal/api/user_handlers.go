package api

import (
	"net/http"
	"strconv"

	"github.com/onnwee/praca/internal/user"
)

// UserHandlers serves the user endpoints: verification, registration,
// profile, ranking and statistics.
type UserHandlers struct {
	users *user.Service
}

// NewUserHandlers creates the user handlers.
func NewUserHandlers(users *user.Service) *UserHandlers {
	return &UserHandlers{users: users}
}

type verifyRequest struct {
	UserHash string `json:"vem_hash"`
}

// Verify handles POST /usuarios/verificar: the QR-code scan flow. The
// response's cadastro_completo tells the kiosk whether to show the
// registration form.
func (h *UserHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Verify(r.Context(), req.UserHash)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CompleteRegistration handles POST /usuarios/cadastrar.
func (h *UserHandlers) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	var req user.RegistrationInput
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	u, err := h.users.CompleteRegistration(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// List handles GET /usuarios.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /usuarios/{vem_hash}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), r.PathValue("vem_hash"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Update handles PATCH /usuarios/{vem_hash}. Only the allow-listed
// profile fields are accepted; anything else rejects the body.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req user.ProfileUpdate
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), r.PathValue("vem_hash"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Delete handles DELETE /usuarios/{vem_hash}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("vem_hash")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Ranking handles GET /usuarios/ranking?limite=N&ordem=asc|desc.
func (h *UserHandlers) Ranking(w http.ResponseWriter, r *http.Request) {
	limit := user.DefaultRankingLimit
	if raw := r.URL.Query().Get("limite"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "limite must be an integer")
			return
		}
		limit = parsed
	}

	order := r.URL.Query().Get("ordem")
	if order == "" {
		order = user.OrderDesc
	}

	users, err := h.users.Ranking(r.Context(), limit, order)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Stats handles GET /usuarios/estatisticas.
func (h *UserHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
