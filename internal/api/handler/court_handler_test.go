package handler

import (
	"net/http"
	"testing"

	"github.com/martijn/lexdesk/internal/api/dto"
)

func TestTribunals(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, "/consulta-processos/tribunais")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	tribunals := parseJSON[[]dto.TribunalResponse](t, w)
	if len(tribunals) == 0 {
		t.Fatal("expected the tribunal registry")
	}

	found := false
	for _, tr := range tribunals {
		if tr.Alias == "tjsp" {
			found = true
			if tr.Nome != "Tribunal de Justiça de São Paulo" || tr.URL == "" {
				t.Errorf("unexpected tjsp entry: %+v", tr)
			}
		}
	}
	if !found {
		t.Error("expected tjsp in the registry")
	}
}

func TestCourtLookup(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedField  string
	}{
		{"unknown tribunal", map[string]interface{}{"tribunal": "tjxx", "numero_processo": "0001234-56.2025.8.26.0100"}, http.StatusBadRequest, "tribunal"},
		{"number without digits", map[string]interface{}{"tribunal": "tjsp", "numero_processo": "abc"}, http.StatusBadRequest, "numero_processo"},
		{"missing fields", map[string]interface{}{}, http.StatusBadRequest, "tribunal"},
		{"webhook not configured", map[string]interface{}{"tribunal": "tjsp", "numero_processo": "0001234-56.2025.8.26.0100"}, http.StatusServiceUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/consulta-processos", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedField != "" {
				if resp := parseErrorResponse(t, w); resp.Fields[tt.expectedField] == "" {
					t.Errorf("expected field error for %s, got %v", tt.expectedField, resp.Fields)
				}
			}
		})
	}
}
