package api

import (
	"net/http"
	"testing"

	"github.com/onnwee/praca/internal/user"
)

func TestUserVerifyFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": "abc123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /usuarios/verificar status = %d: %s", rec.Code, rec.Body.String())
	}
	u := decodeBody[user.User](t, rec)
	if u.RegistrationComplete {
		t.Error("cadastro_completo = true for a fresh hash, want false")
	}

	rec = env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": ""})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty hash status = %d, want 422", rec.Code)
	}
}

func TestUserRegistrationFlow(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": "abc123"})

	body := map[string]string{
		"vem_hash":        "abc123",
		"nome":            "Maria Silva",
		"email":           "maria@example.com",
		"data_nascimento": "1990-05-20",
	}
	rec := env.do(t, http.MethodPost, "/usuarios/cadastrar", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /usuarios/cadastrar status = %d: %s", rec.Code, rec.Body.String())
	}
	u := decodeBody[user.User](t, rec)
	if !u.RegistrationComplete {
		t.Error("cadastro_completo = false after registration")
	}

	// Registration completion is one-way.
	rec = env.do(t, http.MethodPost, "/usuarios/cadastrar", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("second cadastrar status = %d, want 409", rec.Code)
	}

	// Bad email is a validation error.
	env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": "def456"})
	rec = env.do(t, http.MethodPost, "/usuarios/cadastrar", map[string]string{
		"vem_hash": "def456", "nome": "Maria", "email": "nope", "data_nascimento": "1990-05-20",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid email cadastrar status = %d, want 422", rec.Code)
	}
}

func TestUserProfileUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": "abc123"})

	rec := env.do(t, http.MethodPatch, "/usuarios/abc123", map[string]string{"nome": "Novo Nome"})
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d: %s", rec.Code, rec.Body.String())
	}
	u := decodeBody[user.User](t, rec)
	if u.Name == nil || *u.Name != "Novo Nome" {
		t.Errorf("nome = %v, want Novo Nome", u.Name)
	}

	// Fields outside the allow-list reject the request.
	rec = env.do(t, http.MethodPatch, "/usuarios/abc123", map[string]any{"pontuacao": 9999})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("pontuacao update status = %d, want 400", rec.Code)
	}
}

func TestUserRankingEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/perguntas", map[string]string{"texto": "Gosta da praca?"})
	q := decodeBody[map[string]any](t, rec)
	questionID := q["pergunta_id"].(string)

	// u1 answers two question-totem pairs, u2 one.
	for _, v := range []map[string]string{
		{"vem_hash": "u1", "pergunta_id": questionID, "totem_id": "t1", "resposta": "sim"},
		{"vem_hash": "u1", "pergunta_id": questionID, "totem_id": "t2", "resposta": "sim"},
		{"vem_hash": "u2", "pergunta_id": questionID, "totem_id": "t1", "resposta": "nao"},
	} {
		if rec := env.do(t, http.MethodPost, "/interacoes", v); rec.Code != http.StatusCreated {
			t.Fatalf("POST /interacoes status = %d", rec.Code)
		}
	}

	rec = env.do(t, http.MethodGet, "/usuarios/ranking?limite=1&ordem=desc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ranking status = %d: %s", rec.Code, rec.Body.String())
	}
	top := decodeBody[[]user.User](t, rec)
	if len(top) != 1 || top[0].UserHash != "u1" {
		t.Errorf("top = %+v, want u1 first", top)
	}

	rec = env.do(t, http.MethodGet, "/usuarios/ranking?limite=0", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("limite=0 status = %d, want 422", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/usuarios/ranking?ordem=sideways", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("ordem=sideways status = %d, want 422", rec.Code)
	}
}

func TestUserStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": "u1"})

	rec := env.do(t, http.MethodGet, "/usuarios/estatisticas", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("estatisticas status = %d", rec.Code)
	}
	stats := decodeBody[user.Stats](t, rec)
	if stats.TotalUsers != 1 {
		t.Errorf("total_usuarios = %d, want 1", stats.TotalUsers)
	}
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/usuarios/verificar", map[string]string{"vem_hash": "u1"})

	rec := env.do(t, http.MethodDelete, "/usuarios/u1", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/usuarios/u1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}
