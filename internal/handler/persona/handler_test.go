package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/eaglechat/eaglechat/internal/model/persona"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(persona.NewMemoryStore(persona.Seed())).RegisterRoutes(r)
	return r
}

func TestListPersonas(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/personas", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var items []persona.Persona
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].ID != persona.DefaultID {
		t.Fatalf("unexpected personas %+v", items)
	}
}

func TestGetPersonaNotFound(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/personas/nobody", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
