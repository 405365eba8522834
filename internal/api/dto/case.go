package dto

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// CaseRequest creates or replaces a case
type CaseRequest struct {
	Numero      string          `json:"numero"`
	ClienteID   string          `json:"cliente_id"`
	Assunto     string          `json:"assunto"`
	Status      string          `json:"status"`
	Prioridade  string          `json:"prioridade"`
	DataInicio  civildate.Date  `json:"data_inicio"`
	DataLimite  *civildate.Date `json:"data_limite"`
	Responsavel *string         `json:"responsavel"`
	Instancia   *string         `json:"instancia"`
	ValorCausa  *float64        `json:"valor_causa"`
}

// CaseResponse represents a case with its client's name
type CaseResponse struct {
	ID          string          `json:"id"`
	Numero      string          `json:"numero"`
	ClienteID   string          `json:"cliente_id"`
	ClienteNome string          `json:"cliente_nome"`
	Assunto     string          `json:"assunto"`
	Status      string          `json:"status"`
	Prioridade  string          `json:"prioridade"`
	DataInicio  civildate.Date  `json:"data_inicio"`
	DataLimite  *civildate.Date `json:"data_limite"`
	Responsavel *string         `json:"responsavel"`
	Instancia   *string         `json:"instancia"`
	ValorCausa  *float64        `json:"valor_causa"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CaseListResponse = ListResponse[CaseResponse]
