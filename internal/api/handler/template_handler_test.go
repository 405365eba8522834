package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/martijn/lexdesk/internal/api/dto"
)

const hearingReminder = "default-lembrete-audiencia"

func TestDefaultTemplates(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	list := parseJSON[dto.TemplateListResponse](t, env.makeRequest(t, "/mensagens/modelos"))
	if list.Pagination.Total != 3 {
		t.Fatalf("expected 3 default templates, got %d", list.Pagination.Total)
	}
	for _, tpl := range list.Items {
		if !tpl.IsDefault {
			t.Errorf("expected %s to be a default", tpl.ID)
		}
	}

	w := env.makeRequest(t, "/mensagens/modelos/"+hearingReminder+"/variaveis")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	vars := parseJSON[dto.VariablesResponse](t, w).Variables
	expected := []string{"nome_cliente", "numero_processo", "data_audiencia"}
	if strings.Join(vars, ",") != strings.Join(expected, ",") {
		t.Errorf("expected variables %v, got %v", expected, vars)
	}

	w = env.do(t, http.MethodPut, "/mensagens/modelos/"+hearingReminder, map[string]interface{}{
		"title":   "Meu lembrete",
		"content": "Olá [nome_cliente]",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected defaults to be read-only, got %d", w.Code)
	}
}

func TestCustomTemplates(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.do(t, http.MethodPost, "/mensagens/modelos", map[string]interface{}{
		"title":   "Boas-vindas",
		"content": "Bem-vindo(a), [nome_cliente]! Seu atendimento é com [advogado].",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	created := parseJSON[dto.TemplateResponse](t, w)
	if created.IsDefault {
		t.Error("expected a custom template")
	}
	if strings.Join(created.Variables, ",") != "nome_cliente,advogado" {
		t.Errorf("unexpected variables: %v", created.Variables)
	}

	if w := env.do(t, http.MethodPost, "/mensagens/modelos", map[string]interface{}{"title": "Vazio"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected missing content to be rejected, got %d", w.Code)
	}

	env.actAs(env.other)
	list := parseJSON[dto.TemplateListResponse](t, env.makeRequest(t, "/mensagens/modelos"))
	if list.Pagination.Total != 3 {
		t.Errorf("expected only the defaults for another user, got %d", list.Pagination.Total)
	}
	w = env.do(t, http.MethodPut, "/mensagens/modelos/"+created.ID, map[string]interface{}{"title": "x", "content": "y"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected another user's template to be hidden, got %d", w.Code)
	}
}

func TestGenerateMessage(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	client := env.seedClient(t, "Ana Costa", "ana@x.com", ptr("(11) 98765-4321"))
	noPhone := env.seedClient(t, "Bruno Lima", "bruno@x.com", nil)
	kase := env.seedCase(t, client.ID, "0001234-56.2025.8.26.0100", "")

	w := env.do(t, http.MethodPost, "/mensagens/gerar", map[string]interface{}{
		"modelo_id":   hearingReminder,
		"cliente_id":  client.ID,
		"processo_id": kase.ID,
		"valores":     map[string]string{"data_audiencia": "2025-07-01"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	msg := parseJSON[dto.GenerateMessageResponse](t, w)
	for _, want := range []string{"Ana Costa", "0001234-56.2025.8.26.0100", "01/07/2025"} {
		if !strings.Contains(msg.Mensagem, want) {
			t.Errorf("expected message to contain %q, got %q", want, msg.Mensagem)
		}
	}
	if !strings.HasPrefix(msg.WhatsAppURL, "https://wa.me/5511987654321?text=") {
		t.Errorf("unexpected WhatsApp URL: %s", msg.WhatsAppURL)
	}
	if strings.Contains(msg.WhatsAppURL, "+") {
		t.Errorf("expected spaces encoded as %%20, got %s", msg.WhatsAppURL)
	}

	tests := []struct {
		name          string
		body          map[string]interface{}
		expectedField string
	}{
		{"missing typed variable", map[string]interface{}{"modelo_id": hearingReminder, "cliente_id": client.ID, "processo_id": kase.ID}, "data_audiencia"},
		{"case variables need a case", map[string]interface{}{"modelo_id": hearingReminder, "cliente_id": client.ID, "valores": map[string]string{"data_audiencia": "2025-07-01"}}, "numero_processo"},
		{"unknown template", map[string]interface{}{"modelo_id": "missing", "cliente_id": client.ID}, "modelo_id"},
		{"template is required", map[string]interface{}{"cliente_id": client.ID}, "modelo_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/mensagens/gerar", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
			}
			if resp := parseErrorResponse(t, w); resp.Fields[tt.expectedField] == "" {
				t.Errorf("expected field error for %s, got %v", tt.expectedField, resp.Fields)
			}
		})
	}

	w = env.do(t, http.MethodPost, "/mensagens/gerar", map[string]interface{}{
		"modelo_id":   "default-atualizacao-processo",
		"cliente_id":  noPhone.ID,
		"processo_id": kase.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if msg := parseJSON[dto.GenerateMessageResponse](t, w); msg.WhatsAppURL != "" || msg.ClienteNome != "Bruno Lima" {
		t.Errorf("unexpected message: %+v", msg)
	}
}
