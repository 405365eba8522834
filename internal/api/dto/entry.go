package dto

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// EntryRequest creates or replaces a billing entry
type EntryRequest struct {
	ClienteID      string          `json:"cliente_id"`
	Descricao      string          `json:"descricao"`
	Valor          float64         `json:"valor"`
	DataVencimento civildate.Date  `json:"data_vencimento"`
	DataPagamento  *civildate.Date `json:"data_pagamento"`
	Status         string          `json:"status"`
}

// EntryStatusRequest marks an entry paid or pending
type EntryStatusRequest struct {
	Status        string          `json:"status" binding:"required"`
	DataPagamento *civildate.Date `json:"data_pagamento"` // Defaults to today when paying
}

// EntryResponse represents a billing entry. StatusExibicao is "Atrasado"
// for pending entries past their due date.
type EntryResponse struct {
	ID             string          `json:"id"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNome    string          `json:"cliente_nome"`
	Descricao      string          `json:"descricao"`
	Valor          float64         `json:"valor"`
	DataVencimento civildate.Date  `json:"data_vencimento"`
	DataPagamento  *civildate.Date `json:"data_pagamento"`
	Status         string          `json:"status"`
	StatusExibicao string          `json:"status_exibicao"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type EntryListResponse = ListResponse[EntryResponse]

// FinanceSummaryResponse is the billing overview
type FinanceSummaryResponse struct {
	TotalAReceber         float64 `json:"total_a_receber"`
	RecebidoUltimos30Dias float64 `json:"recebido_ultimos_30_dias"`
	Atrasados             int     `json:"atrasados"`
}

// RevenuePoint is the paid total of one month
type RevenuePoint struct {
	Mes    string  `json:"mes"`    // YYYY-MM
	Rotulo string  `json:"rotulo"` // Jun/25
	Total  float64 `json:"total"`
}

// RevenueResponse is the revenue report
type RevenueResponse struct {
	Items []RevenuePoint `json:"items"`
	Total float64        `json:"total"`
}
