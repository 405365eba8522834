package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type CaseStatus string

const (
	CaseInProgress CaseStatus = "Em Andamento"
	CaseWaiting    CaseStatus = "Aguardando"
	CaseClosed     CaseStatus = "Concluído"
)

var CaseStatuses = []CaseStatus{CaseInProgress, CaseWaiting, CaseClosed}

type Priority string

const (
	PriorityHigh   Priority = "Alta"
	PriorityMedium Priority = "Média"
	PriorityLow    Priority = "Baixa"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Case is a legal proceeding ("processo") handled for a client.
type Case struct {
	ID          string          `db:"id"`
	OwnerID     string          `db:"user_id"`
	Number      string          `db:"numero"`
	ClientID    string          `db:"cliente_id"`
	Subject     string          `db:"assunto"`
	Status      CaseStatus      `db:"status"`
	Priority    Priority        `db:"prioridade"`
	StartDate   civildate.Date  `db:"data_inicio"`
	Deadline    *civildate.Date `db:"data_limite"`
	Responsible *string         `db:"responsavel"`
	Instance    *string         `db:"instancia"`
	ClaimValue  *float64        `db:"valor_causa"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	// Read-only, filled by list queries.
	ClientName string `db:"cliente_nome"`
}

func NewCase(ownerID string) *Case {
	now := time.Now().UTC()
	return &Case{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    CaseInProgress,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Case) IsActive() bool {
	return c.Status != CaseClosed
}

func (c *Case) Normalize() {
	c.Number = strings.TrimSpace(c.Number)
	c.Subject = strings.TrimSpace(c.Subject)
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.Responsible = trimOptional(c.Responsible)
	c.Instance = trimOptional(c.Instance)
	if c.Status == "" {
		c.Status = CaseInProgress
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
}

func (c *Case) Validate() error {
	errs := ValidationErrors{}
	requireText(errs, "numero", c.Number)
	requireText(errs, "assunto", c.Subject)
	requireText(errs, "cliente_id", c.ClientID)
	requireOneOf(errs, "status", c.Status, CaseStatuses)
	requireOneOf(errs, "prioridade", c.Priority, Priorities)
	if c.StartDate.IsZero() {
		errs.Add("data_inicio", "is required")
	}
	if c.Deadline != nil && c.Deadline.Before(c.StartDate) {
		errs.Add("data_limite", "must not be before data_inicio")
	}
	if c.ClaimValue != nil && *c.ClaimValue < 0 {
		errs.Add("valor_causa", "must not be negative")
	}
	return errs.Err()
}
