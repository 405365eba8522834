package dto

import "time"

// TemplateRequest creates or replaces a message template
type TemplateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// TemplateResponse represents a message template
type TemplateResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDefault bool      `json:"is_default"`
	Variables []string  `json:"variaveis"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TemplateListResponse = ListResponse[TemplateResponse]

// VariablesResponse lists a template's placeholders
type VariablesResponse struct {
	Variables []string `json:"variaveis"`
}

// GenerateMessageRequest renders a template for a client
type GenerateMessageRequest struct {
	ModeloID   string            `json:"modelo_id" binding:"required"`
	ClienteID  string            `json:"cliente_id" binding:"required"`
	ProcessoID *string           `json:"processo_id"`
	Valores    map[string]string `json:"valores"`
}

// GenerateMessageResponse is the rendered message
type GenerateMessageResponse struct {
	Mensagem    string `json:"mensagem"`
	ClienteNome string `json:"cliente_nome"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}
