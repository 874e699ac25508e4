package api

import (
	"net/http"

	"github.com/onnwee/praca/internal/interaction"
	"github.com/onnwee/praca/internal/user"
)

// InteractionHandlers serves the vote endpoint: record an answer and
// credit the voter's point balance.
type InteractionHandlers struct {
	interactions *interaction.Service
	users        *user.Service
	votePoints   int64
}

// NewInteractionHandlers creates the interaction handlers. votePoints
// is the credit per recorded answer; zero or negative falls back to the
// user service default.
func NewInteractionHandlers(interactions *interaction.Service, users *user.Service, votePoints int64) *InteractionHandlers {
	return &InteractionHandlers{interactions: interactions, users: users, votePoints: votePoints}
}

type registerVoteRequest struct {
	UserHash   string `json:"vem_hash"`
	QuestionID string `json:"pergunta_id"`
	TotemID    string `json:"totem_id"`
	Answer     string `json:"resposta"`
}

type registerVoteResponse struct {
	Interaction *interaction.Interaction `json:"interacao"`
	Points      *user.VoteResult         `json:"pontos"`
}

// Register handles POST /interacoes. The user record is created on
// first contact if the hash is unknown; the answer upserts on its
// natural key; points are credited for every accepted request.
func (h *InteractionHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	if _, err := h.users.Verify(r.Context(), req.UserHash); err != nil {
		WriteServiceError(w, r, err)
		return
	}

	i, err := h.interactions.Register(r.Context(), req.UserHash, req.QuestionID, req.TotemID, req.Answer)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	points, err := h.users.AwardVotePoints(r.Context(), req.UserHash, h.votePoints)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerVoteResponse{Interaction: i, Points: points})
}

// List handles GET /interacoes.
func (h *InteractionHandlers) List(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.interactions.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}
