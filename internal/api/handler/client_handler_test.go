package handler

import (
	"net/http"
	"testing"

	"github.com/martijn/lexdesk/internal/api/dto"
)

func TestClientCRUD(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.do(t, http.MethodPost, "/clientes", map[string]interface{}{
		"nome":     "Ana Costa",
		"email":    "ana@x.com",
		"telefone": "(11) 99999-0000",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	created := parseJSON[dto.ClientResponse](t, w)
	if created.Status != "Ativo" {
		t.Errorf("expected default status Ativo, got %q", created.Status)
	}
	if created.DataRegistro.String() != "2025-06-15" {
		t.Errorf("expected data_registro to default to today, got %s", created.DataRegistro)
	}
	if created.ProcessosAtivos != 0 {
		t.Errorf("expected 0 active cases, got %d", created.ProcessosAtivos)
	}

	if n := env.countListed(t, created.ID); n != 1 {
		t.Errorf("expected the new client exactly once in GET /clientes, got %d", n)
	}

	w = env.makeRequest(t, "/clientes/"+created.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := parseJSON[dto.ClientResponse](t, w); got.Nome != "Ana Costa" || got.Email != "ana@x.com" {
		t.Errorf("unexpected client: %+v", got)
	}

	w = env.do(t, http.MethodPut, "/clientes/"+created.ID, map[string]interface{}{
		"nome":           "Ana Costa Silva",
		"email":          "ana@x.com",
		"status":         "Inativo",
		"ultimo_contato": "2025-06-14",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	updated := parseJSON[dto.ClientResponse](t, w)
	if updated.Nome != "Ana Costa Silva" || updated.Status != "Inativo" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.DataRegistro.String() != "2025-06-15" {
		t.Errorf("expected data_registro to be kept, got %s", updated.DataRegistro)
	}
	if updated.Telefone != nil {
		t.Errorf("expected telefone to be cleared, got %q", *updated.Telefone)
	}

	w = env.do(t, http.MethodDelete, "/clientes/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	w = env.makeRequest(t, "/clientes/"+created.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", w.Code)
	}
	if n := env.countListed(t, created.ID); n != 0 {
		t.Errorf("expected the deleted client to be gone from GET /clientes, got %d", n)
	}
}

// countListed counts how often id appears in the client list
func (env *testEnv) countListed(t *testing.T, id string) int {
	t.Helper()

	w := env.makeRequest(t, "/clientes")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	n := 0
	for _, c := range parseJSON[dto.ClientListResponse](t, w).Items {
		if c.ID == id {
			n++
		}
	}
	return n
}

func TestCreateClientValidation(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedFields []string
	}{
		{
			name:           "short name and bad email",
			body:           map[string]interface{}{"nome": "Al", "email": "not-an-email"},
			expectedFields: []string{"nome", "email"},
		},
		{
			name:           "short phone and address",
			body:           map[string]interface{}{"nome": "Ana Costa", "email": "ana@x.com", "telefone": "1199", "endereco": "Rua"},
			expectedFields: []string{"telefone", "endereco"},
		},
		{
			name:           "unknown status",
			body:           map[string]interface{}{"nome": "Ana Costa", "email": "ana@x.com", "status": "Suspenso"},
			expectedFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/clientes", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
			}
			resp := parseErrorResponse(t, w)
			for _, field := range tt.expectedFields {
				if _, ok := resp.Fields[field]; !ok {
					t.Errorf("expected field error for %s, got %v", field, resp.Fields)
				}
			}
		})
	}

	// Nothing was written
	list := parseJSON[dto.ClientListResponse](t, env.makeRequest(t, "/clientes"))
	if list.Pagination.Total != 0 {
		t.Errorf("expected no clients, got %d", list.Pagination.Total)
	}
}

func TestListClients(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	seed := []map[string]interface{}{
		{"nome": "Ana Costa", "email": "ana@x.com", "data_registro": "2025-01-05"},
		{"nome": "Bruno Lima", "email": "bruno@x.com", "data_registro": "2025-02-10"},
		{"nome": "Carla Souza", "email": "carla@x.com", "telefone": "11988887777", "data_registro": "2025-03-15"},
		{"nome": "Daniel Alves", "email": "daniel@x.com", "status": "Inativo", "data_registro": "2025-04-20"},
		{"nome": "Eduarda Rocha", "email": "eduarda@x.com", "status": "Inativo", "data_registro": "2025-05-25"},
	}
	for _, body := range seed {
		if w := env.do(t, http.MethodPost, "/clientes", body); w.Code != http.StatusCreated {
			t.Fatalf("failed to seed client: %s", w.Body.String())
		}
	}

	tests := []struct {
		name           string
		queryString    string
		expectedStatus int
		expectedTotal  int
		expectedNames  []string
	}{
		{
			name:           "default order is by name",
			queryString:    "",
			expectedStatus: http.StatusOK,
			expectedTotal:  5,
			expectedNames:  []string{"Ana Costa", "Bruno Lima", "Carla Souza", "Daniel Alves", "Eduarda Rocha"},
		},
		{
			name:           "filter by status",
			queryString:    "?query=status|Inativo",
			expectedStatus: http.StatusOK,
			expectedTotal:  2,
			expectedNames:  []string{"Daniel Alves", "Eduarda Rocha"},
		},
		{
			name:           "filter by registration date range",
			queryString:    "?query=data_registro|gte|2025-02-10,data_registro|lt|2025-04-20&order=data_registro|desc",
			expectedStatus: http.StatusOK,
			expectedTotal:  2,
			expectedNames:  []string{"Carla Souza", "Bruno Lima"},
		},
		{
			name:           "phone is set",
			queryString:    "?query=telefone|isnotnull",
			expectedStatus: http.StatusOK,
			expectedTotal:  1,
			expectedNames:  []string{"Carla Souza"},
		},
		{
			name:           "free-text search is case-insensitive",
			queryString:    "?q=SOUZA",
			expectedStatus: http.StatusOK,
			expectedTotal:  1,
			expectedNames:  []string{"Carla Souza"},
		},
		{
			name:           "pagination page 2 with per_page 2",
			queryString:    "?page=2&per_page=2",
			expectedStatus: http.StatusOK,
			expectedTotal:  5,
			expectedNames:  []string{"Carla Souza", "Daniel Alves"},
		},
		{
			name:           "invalid query field returns 400",
			queryString:    "?query=user_id|abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid order field returns 400",
			queryString:    "?order=endereco|asc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, "/clientes"+tt.queryString)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				if resp := parseErrorResponse(t, w); resp.Code != tt.expectedStatus {
					t.Errorf("expected error code %d, got %d", tt.expectedStatus, resp.Code)
				}
				return
			}

			resp := parseJSON[dto.ClientListResponse](t, w)
			if resp.Pagination.Total != tt.expectedTotal {
				t.Errorf("expected total %d, got %d", tt.expectedTotal, resp.Pagination.Total)
			}
			if len(resp.Items) != len(tt.expectedNames) {
				t.Fatalf("expected %d items, got %d", len(tt.expectedNames), len(resp.Items))
			}
			for i, name := range tt.expectedNames {
				if resp.Items[i].Nome != name {
					t.Errorf("item %d: expected %s, got %s", i, name, resp.Items[i].Nome)
				}
			}
		})
	}
}

func TestClientsAreScopedToOwner(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	client := env.seedClient(t, "Ana Costa", "ana@x.com", nil)

	env.actAs(env.other)
	if w := env.makeRequest(t, "/clientes/"+client.ID); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's client, got %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/clientes/"+client.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting another user's client, got %d", w.Code)
	}
	list := parseJSON[dto.ClientListResponse](t, env.makeRequest(t, "/clientes"))
	if list.Pagination.Total != 0 {
		t.Errorf("expected an empty list for the other user, got %d", list.Pagination.Total)
	}

	env.actAs(env.owner)
	if w := env.makeRequest(t, "/clientes/"+client.ID); w.Code != http.StatusOK {
		t.Errorf("expected the owner to still see the client, got %d", w.Code)
	}
}
