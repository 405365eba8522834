package handler

import (
	"net/http"
	"testing"

	"github.com/martijn/lexdesk/internal/api/dto"
)

func TestTeamMembers(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, "/equipe/opcoes")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	opts := parseJSON[dto.TeamOptionsResponse](t, w)
	if len(opts.Cargos) == 0 || len(opts.Departamentos) == 0 {
		t.Errorf("expected position and department suggestions, got %+v", opts)
	}
	if len(opts.Status) != 3 {
		t.Errorf("expected 3 member statuses, got %v", opts.Status)
	}

	w = env.do(t, http.MethodPost, "/equipe", map[string]interface{}{
		"nome":          "Marina Souza",
		"email":         "marina@escritorio.com",
		"cargo":         "Perita contábil",
		"departamento":  "Cível",
		"data_admissao": "2024-03-01",
		"salario":       8500.5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	member := parseJSON[dto.TeamMemberResponse](t, w)
	if member.Status != "Ativo" {
		t.Errorf("expected default status Ativo, got %s", member.Status)
	}
	if member.Cargo != "Perita contábil" {
		t.Errorf("expected free-text position to be kept, got %s", member.Cargo)
	}

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedFields []string
	}{
		{"empty", map[string]interface{}{}, []string{"nome", "email", "cargo", "departamento"}},
		{"bad email and negative salary", map[string]interface{}{"nome": "X", "email": "x", "cargo": "Advogado", "departamento": "Cível", "salario": -1}, []string{"email", "salario"}},
		{"unknown status", map[string]interface{}{"nome": "X", "email": "x@x.com", "cargo": "Advogado", "departamento": "Cível", "status": "Demitido"}, []string{"status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/equipe", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
			}
			resp := parseErrorResponse(t, w)
			for _, field := range tt.expectedFields {
				if resp.Fields[field] == "" {
					t.Errorf("expected field error for %s, got %v", field, resp.Fields)
				}
			}
		})
	}

	list := parseJSON[dto.TeamMemberListResponse](t, env.makeRequest(t, "/equipe?q=marina"))
	if list.Pagination.Total != 1 {
		t.Errorf("expected 1 match, got %d", list.Pagination.Total)
	}
}
