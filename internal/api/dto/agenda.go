package dto

import "github.com/martijn/lexdesk/pkg/civildate"

// AgendaItemResponse is a hearing or task on the calendar
type AgendaItemResponse struct {
	ID             string         `json:"id"`
	Tipo           string         `json:"tipo"` // "audiencia" or "tarefa"
	Titulo         string         `json:"titulo"`
	Descricao      string         `json:"descricao"`
	Data           civildate.Date `json:"data"`
	Hora           string         `json:"hora,omitempty"`
	Local          string         `json:"local,omitempty"`
	Status         string         `json:"status"`
	Prioridade     string         `json:"prioridade,omitempty"`
	ProcessoNumero string         `json:"processo_numero,omitempty"`
}

// AgendaResponse is the merged agenda for a date range
type AgendaResponse struct {
	De    civildate.Date       `json:"de"`
	Ate   civildate.Date       `json:"ate"`
	Items []AgendaItemResponse `json:"items"`
}
