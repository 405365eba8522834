package dto

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// HearingRequest creates or replaces a hearing
type HearingRequest struct {
	ProcessoNumero string         `json:"processo_numero"`
	Data           civildate.Date `json:"data"`
	Hora           string         `json:"hora"` // HH:MM
	Local          string         `json:"local"`
	Tipo           string         `json:"tipo"`
	Status         string         `json:"status"`
}

// HearingResponse represents a hearing
type HearingResponse struct {
	ID             string         `json:"id"`
	ProcessoID     *string        `json:"processo_id"`
	ProcessoNumero string         `json:"processo_numero"`
	Data           civildate.Date `json:"data"`
	Hora           string         `json:"hora"`
	Local          string         `json:"local"`
	Tipo           string         `json:"tipo"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type HearingListResponse = ListResponse[HearingResponse]
