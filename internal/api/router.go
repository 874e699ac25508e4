package api

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Totems       *TotemHandlers
	Questions    *QuestionHandlers
	Interactions *InteractionHandlers
	Users        *UserHandlers
	Facilities   *FacilityHandlers
	Admin        *AdminHandlers
	Health       *HealthHandlers
	Metrics      http.Handler
}

// NewRouter builds the route table. Method-qualified patterns let the
// mux reject wrong methods with 405 on its own.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Totems
	mux.HandleFunc("POST /totens", h.Totems.Create)
	mux.HandleFunc("GET /totens", h.Totems.List)
	mux.HandleFunc("GET /totens/{id}", h.Totems.Get)
	mux.HandleFunc("DELETE /totens/{id}", h.Totems.Delete)
	mux.HandleFunc("GET /totens/{id}/servicos", h.Totems.NearbyFacilities)

	// Questions. The literal /perguntas/atual must be registered so it
	// wins over /perguntas/{id}.
	mux.HandleFunc("POST /perguntas", h.Questions.Create)
	mux.HandleFunc("GET /perguntas", h.Questions.List)
	mux.HandleFunc("GET /perguntas/atual", h.Questions.Current)
	mux.HandleFunc("GET /perguntas/{id}", h.Questions.Get)
	mux.HandleFunc("DELETE /perguntas/{id}", h.Questions.Delete)
	mux.HandleFunc("GET /perguntas/{id}/resultado", h.Questions.Score)

	// Interactions
	mux.HandleFunc("POST /interacoes", h.Interactions.Register)
	mux.HandleFunc("GET /interacoes", h.Interactions.List)

	// Users
	mux.HandleFunc("POST /usuarios/verificar", h.Users.Verify)
	mux.HandleFunc("POST /usuarios/cadastrar", h.Users.CompleteRegistration)
	mux.HandleFunc("GET /usuarios", h.Users.List)
	mux.HandleFunc("GET /usuarios/ranking", h.Users.Ranking)
	mux.HandleFunc("GET /usuarios/estatisticas", h.Users.Stats)
	mux.HandleFunc("GET /usuarios/{vem_hash}", h.Users.Get)
	mux.HandleFunc("PATCH /usuarios/{vem_hash}", h.Users.Update)
	mux.HandleFunc("DELETE /usuarios/{vem_hash}", h.Users.Delete)

	// Facilities
	mux.HandleFunc("POST /servicos", h.Facilities.Create)
	mux.HandleFunc("GET /servicos", h.Facilities.List)
	mux.HandleFunc("GET /servicos/proximos", h.Facilities.Nearby)
	mux.HandleFunc("GET /servicos/tipos", h.Facilities.Types)
	mux.HandleFunc("GET /servicos/estatisticas", h.Facilities.Stats)
	mux.HandleFunc("POST /servicos/importar", h.Facilities.Import)
	mux.HandleFunc("GET /servicos/{id}", h.Facilities.Get)
	mux.HandleFunc("PATCH /servicos/{id}", h.Facilities.Update)
	mux.HandleFunc("DELETE /servicos/{id}", h.Facilities.Delete)
	mux.HandleFunc("POST /servicos/{id}/desativar", h.Facilities.Deactivate)
	mux.HandleFunc("POST /servicos/{id}/reativar", h.Facilities.Reactivate)

	// Admin
	mux.HandleFunc("POST /admin/thanos", h.Admin.Purge)

	// Probes and metrics
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	return mux
}
