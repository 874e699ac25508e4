package api

import (
	"net/http"
	"testing"

	"github.com/onnwee/praca/internal/facility"
	"github.com/onnwee/praca/internal/totem"
)

func TestTotemCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/totens", map[string]float64{
		"latitude":  -8.0476,
		"longitude": -34.8770,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /totens status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[totem.Totem](t, rec)
	if len(created.TotemID) != 12 {
		t.Errorf("totem_id length = %d, want 12", len(created.TotemID))
	}

	rec = env.do(t, http.MethodGet, "/totens/"+created.TotemID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /totens/{id} status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/totens", nil)
	if got := decodeBody[[]totem.Totem](t, rec); len(got) != 1 {
		t.Errorf("GET /totens returned %d, want 1", len(got))
	}

	rec = env.do(t, http.MethodDelete, "/totens/"+created.TotemID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/totens/"+created.TotemID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestTotemNearbyFacilities(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/totens", map[string]float64{"latitude": 0, "longitude": 0})
	created := decodeBody[totem.Totem](t, rec)

	for _, in := range []facility.CreateInput{
		{Name: "Posto Perto", Type: "saude", Latitude: 0, Longitude: 0.01},
		{Name: "Posto Longe", Type: "saude", Latitude: 2, Longitude: 2},
	} {
		rec = env.do(t, http.MethodPost, "/servicos", in)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /servicos status = %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = env.do(t, http.MethodGet, "/totens/"+created.TotemID+"/servicos", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET nearby status = %d: %s", rec.Code, rec.Body.String())
	}
	nearby := decodeBody[[]facility.NearbyFacility](t, rec)
	if len(nearby) != 1 {
		t.Fatalf("nearby = %d, want 1 inside default radius", len(nearby))
	}
	if nearby[0].Name != "Posto Perto" {
		t.Errorf("nearby[0] = %s, want Posto Perto", nearby[0].Name)
	}
	if nearby[0].DistanceKM <= 0 {
		t.Errorf("distancia_km = %v, want positive", nearby[0].DistanceKM)
	}

	// Wider radius via query parameter picks up the distant one too.
	rec = env.do(t, http.MethodGet, "/totens/"+created.TotemID+"/servicos?raio=500", nil)
	if got := decodeBody[[]facility.NearbyFacility](t, rec); len(got) != 2 {
		t.Errorf("nearby with raio=500 = %d, want 2", len(got))
	}

	rec = env.do(t, http.MethodGet, "/totens/"+created.TotemID+"/servicos?raio=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad raio status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/totens/unknown/servicos", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown totem status = %d, want 404", rec.Code)
	}
}
