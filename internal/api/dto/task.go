package dto

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// TaskRequest creates or replaces a task
type TaskRequest struct {
	Descricao     string         `json:"descricao"`
	Responsavel   string         `json:"responsavel"`
	DataConclusao civildate.Date `json:"data_conclusao"`
	Prioridade    string         `json:"prioridade"`
	Status        string         `json:"status"`
}

// TaskResponse represents a task
type TaskResponse struct {
	ID            string         `json:"id"`
	Descricao     string         `json:"descricao"`
	Responsavel   string         `json:"responsavel"`
	DataConclusao civildate.Date `json:"data_conclusao"`
	Prioridade    string         `json:"prioridade"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type TaskListResponse = ListResponse[TaskResponse]
