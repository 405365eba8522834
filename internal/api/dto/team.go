package dto

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// TeamMemberRequest creates or replaces a team member
type TeamMemberRequest struct {
	Nome         string          `json:"nome"`
	Email        string          `json:"email"`
	Telefone     *string         `json:"telefone"`
	Cargo        string          `json:"cargo"`
	Departamento string          `json:"departamento"`
	DataAdmissao *civildate.Date `json:"data_admissao"`
	Salario      *float64        `json:"salario"`
	Status       string          `json:"status"`
}

// TeamMemberResponse represents a team member
type TeamMemberResponse struct {
	ID           string          `json:"id"`
	Nome         string          `json:"nome"`
	Email        string          `json:"email"`
	Telefone     *string         `json:"telefone"`
	Cargo        string          `json:"cargo"`
	Departamento string          `json:"departamento"`
	DataAdmissao *civildate.Date `json:"data_admissao"`
	Salario      *float64        `json:"salario"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type TeamMemberListResponse = ListResponse[TeamMemberResponse]

// TeamOptionsResponse lists suggestions for the free-text fields
type TeamOptionsResponse struct {
	Cargos        []string `json:"cargos"`
	Departamentos []string `json:"departamentos"`
	Status        []string `json:"status"`
}
