package api

import (
	"net/http"

	"github.com/onnwee/praca/internal/interaction"
	"github.com/onnwee/praca/internal/question"
)

// QuestionHandlers serves the question endpoints and the per-question
// score aggregation.
type QuestionHandlers struct {
	questions    *question.Service
	interactions *interaction.Service
}

// NewQuestionHandlers creates the question handlers.
func NewQuestionHandlers(questions *question.Service, interactions *interaction.Service) *QuestionHandlers {
	return &QuestionHandlers{questions: questions, interactions: interactions}
}

type createQuestionRequest struct {
	Text string `json:"texto"`
}

// Create handles POST /perguntas.
func (h *QuestionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	q, err := h.questions.Create(r.Context(), req.Text)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// List handles GET /perguntas.
func (h *QuestionHandlers) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Current handles GET /perguntas/atual: the question totems display.
func (h *QuestionHandlers) Current(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.Current(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Get handles GET /perguntas/{id}.
func (h *QuestionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /perguntas/{id}. Interactions referencing the
// question go with it.
func (h *QuestionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.questions.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Score handles GET /perguntas/{id}/resultado: the sim/nao percentage
// split. The question must exist; a question nobody answered yet
// returns zeros for both.
func (h *QuestionHandlers) Score(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.questions.Get(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}

	score, err := h.interactions.Score(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}
