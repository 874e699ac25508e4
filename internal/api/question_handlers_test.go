package api

import (
	"net/http"
	"testing"

	"github.com/onnwee/praca/internal/interaction"
	"github.com/onnwee/praca/internal/question"
)

func TestQuestionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/perguntas", map[string]string{
		"texto": "Voce se sente seguro neste bairro?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /perguntas status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[question.Question](t, rec)
	if created.Text != "Voce se sente seguro neste bairro?" {
		t.Errorf("texto = %q", created.Text)
	}

	rec = env.do(t, http.MethodGet, "/perguntas/atual", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /perguntas/atual status = %d", rec.Code)
	}
	current := decodeBody[question.Question](t, rec)
	if current.QuestionID != created.QuestionID {
		t.Errorf("atual = %s, want the newest question", current.QuestionID)
	}

	rec = env.do(t, http.MethodDelete, "/perguntas/"+created.QuestionID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/perguntas/atual", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /perguntas/atual with no questions status = %d, want 404", rec.Code)
	}
}

func TestQuestionCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/perguntas", map[string]string{"texto": "   "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank texto status = %d, want 422", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/perguntas", map[string]string{"pergunta": "wrong field"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", rec.Code)
	}
}

func TestQuestionScore(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/perguntas", map[string]string{"texto": "Gosta da praca?"})
	q := decodeBody[question.Question](t, rec)

	votes := []map[string]string{
		{"vem_hash": "u1", "pergunta_id": q.QuestionID, "totem_id": "t1", "resposta": "sim"},
		{"vem_hash": "u2", "pergunta_id": q.QuestionID, "totem_id": "t1", "resposta": "sim"},
		{"vem_hash": "u3", "pergunta_id": q.QuestionID, "totem_id": "t2", "resposta": "nao"},
		{"vem_hash": "u4", "pergunta_id": q.QuestionID, "totem_id": "t2", "resposta": "sim"},
	}
	for _, v := range votes {
		rec = env.do(t, http.MethodPost, "/interacoes", v)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /interacoes status = %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = env.do(t, http.MethodGet, "/perguntas/"+q.QuestionID+"/resultado", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET resultado status = %d", rec.Code)
	}
	score := decodeBody[interaction.Score](t, rec)
	if score.Yes != 75 || score.No != 25 {
		t.Errorf("score = %v/%v, want 75/25", score.Yes, score.No)
	}
}

func TestQuestionScoreUnknownQuestion(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/perguntas/ghost/resultado", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
