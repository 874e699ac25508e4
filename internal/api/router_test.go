package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onnwee/praca/internal/facility"
	"github.com/onnwee/praca/internal/interaction"
	"github.com/onnwee/praca/internal/purge"
	"github.com/onnwee/praca/internal/question"
	"github.com/onnwee/praca/internal/totem"
	"github.com/onnwee/praca/internal/user"
)

// testEnv wires the whole API over in-memory repositories.
type testEnv struct {
	router       *http.ServeMux
	totems       *totem.Service
	questions    *question.Service
	interactions *interaction.Service
	users        *user.Service
	facilities   *facility.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	totemRepo := totem.NewInMemoryRepository()
	questionRepo := question.NewInMemoryRepository()
	interactionRepo := interaction.NewInMemoryRepository()
	userRepo := user.NewInMemoryRepository()
	facilityRepo := facility.NewInMemoryRepository()

	interactions := interaction.NewService(interactionRepo, nil)
	questions := question.NewService(questionRepo, interactions, nil)
	totems := totem.NewService(totemRepo)
	users := user.NewService(userRepo, nil)
	facilities := facility.NewService(facilityRepo, nil, nil)
	purgeService := purge.NewService(map[string]purge.Wiper{
		"usuarios":   userRepo,
		"totens":     totemRepo,
		"perguntas":  questionRepo,
		"interacoes": interactionRepo,
		"servicos":   facilityRepo,
	}, nil)

	router := NewRouter(Handlers{
		Totems:       NewTotemHandlers(totems, facilities, 0),
		Questions:    NewQuestionHandlers(questions, interactions),
		Interactions: NewInteractionHandlers(interactions, users, 0),
		Users:        NewUserHandlers(users),
		Facilities:   NewFacilityHandlers(facilities, 0),
		Admin:        NewAdminHandlers(purgeService),
		Health:       NewHealthHandlers(nil),
	})

	return &testEnv{
		router:       router,
		totems:       totems,
		questions:    questions,
		interactions: interactions,
		users:        users,
		facilities:   facilities,
	}
}

// do runs a request through the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v: %s", err, rec.Body.String())
	}
	return v
}

func TestRouterMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPut, "/totens", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /ready status = %d, want 200", rec.Code)
	}
	resp := decodeBody[HealthResponse](t, rec)
	if resp.Checks["database"] != "ok" {
		t.Errorf("database check = %q, want ok with in-memory repos", resp.Checks["database"])
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/totens/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	resp := decodeBody[ErrorResponse](t, rec)
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("error code = %q, want %q", resp.Error.Code, ErrCodeNotFound)
	}
	if resp.Error.Message == "" {
		t.Error("error message is empty")
	}
}
