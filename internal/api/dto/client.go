package dto

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// ClientRequest creates or replaces a client
type ClientRequest struct {
	Nome          string          `json:"nome"`
	Email         string          `json:"email"`
	Telefone      *string         `json:"telefone"`
	Endereco      *string         `json:"endereco"`
	Status        string          `json:"status"`
	DataRegistro  *civildate.Date `json:"data_registro"` // Defaults to today on create
	UltimoContato *civildate.Date `json:"ultimo_contato"`
}

// ClientResponse represents a client
type ClientResponse struct {
	ID              string          `json:"id"`
	Nome            string          `json:"nome"`
	Email           string          `json:"email"`
	Telefone        *string         `json:"telefone"`
	Endereco        *string         `json:"endereco"`
	Status          string          `json:"status"`
	ProcessosAtivos int             `json:"processos_ativos"`
	DataRegistro    civildate.Date  `json:"data_registro"`
	UltimoContato   *civildate.Date `json:"ultimo_contato"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ClientListResponse = ListResponse[ClientResponse]
