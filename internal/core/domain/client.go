package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "Ativo"
	ClientInactive ClientStatus = "Inativo"
)

var ClientStatuses = []ClientStatus{ClientActive, ClientInactive}

// Client is a person or company represented by the office.
type Client struct {
	ID           string          `db:"id"`
	OwnerID      string          `db:"user_id"`
	Name         string          `db:"nome"`
	Email        string          `db:"email"`
	Phone        *string         `db:"telefone"`
	Address      *string         `db:"endereco"`
	Status       ClientStatus    `db:"status"`
	ActiveCases  int             `db:"processos_ativos"`
	RegisteredOn civildate.Date  `db:"data_registro"`
	LastContact  *civildate.Date `db:"ultimo_contato"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func NewClient(ownerID string, registeredOn civildate.Date) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Status:       ClientActive,
		RegisteredOn: registeredOn,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Normalize trims text fields and drops blank optionals.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = trimOptional(c.Phone)
	c.Address = trimOptional(c.Address)
	if c.Status == "" {
		c.Status = ClientActive
	}
}

func (c *Client) Validate() error {
	errs := ValidationErrors{}
	requireMin(errs, "nome", c.Name, 3)
	requireEmail(errs, "email", c.Email)
	if c.Phone != nil && !minLen(*c.Phone, 10) {
		errs.Add("telefone", "must have at least 10 characters")
	}
	if c.Address != nil && !minLen(*c.Address, 5) {
		errs.Add("endereco", "must have at least 5 characters")
	}
	requireOneOf(errs, "status", c.Status, ClientStatuses)
	return errs.Err()
}
