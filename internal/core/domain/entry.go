package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type EntryStatus string

const (
	EntryPaid    EntryStatus = "Pago"
	EntryPending EntryStatus = "Pendente"

	// EntryOverdue is never stored. It is the display status of a pending
	// entry whose due date has passed.
	EntryOverdue EntryStatus = "Atrasado"
)

var EntryStatuses = []EntryStatus{EntryPaid, EntryPending}

// Entry is a billing record ("lançamento") receivable from a client.
type Entry struct {
	ID          string          `db:"id"`
	OwnerID     string          `db:"user_id"`
	ClientID    string          `db:"cliente_id"`
	Description string          `db:"descricao"`
	Amount      float64         `db:"valor"`
	DueDate     civildate.Date  `db:"data_vencimento"`
	PaidOn      *civildate.Date `db:"data_pagamento"`
	Status      EntryStatus     `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	ClientName string `db:"cliente_nome"`
}

func NewEntry(ownerID string) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    EntryPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayStatus projects the overdue state for today's civil date. The
// stored status is not touched.
func (e *Entry) DisplayStatus(today civildate.Date) EntryStatus {
	if e.IsOverdue(today) {
		return EntryOverdue
	}
	return e.Status
}

// IsOverdue reports a pending entry due strictly before today.
func (e *Entry) IsOverdue(today civildate.Date) bool {
	return e.Status == EntryPending && e.DueDate.Before(today)
}

// SetStatus moves the entry to paid or pending. Paying stamps the payment
// date; reverting to pending clears it.
func (e *Entry) SetStatus(status EntryStatus, paidOn civildate.Date) {
	e.Status = status
	switch status {
	case EntryPaid:
		e.PaidOn = &paidOn
	case EntryPending:
		e.PaidOn = nil
	}
}

func (e *Entry) Normalize() {
	e.Description = strings.TrimSpace(e.Description)
	e.ClientID = strings.TrimSpace(e.ClientID)
	if e.Status == "" {
		e.Status = EntryPending
	}
	if e.Status == EntryPending {
		e.PaidOn = nil
	}
}

func (e *Entry) Validate() error {
	errs := ValidationErrors{}
	requireMin(errs, "descricao", e.Description, 3)
	if e.Amount <= 0 {
		errs.Add("valor", "must be greater than zero")
	}
	if e.DueDate.IsZero() {
		errs.Add("data_vencimento", "is required")
	}
	requireText(errs, "cliente_id", e.ClientID)
	requireOneOf(errs, "status", e.Status, EntryStatuses)
	return errs.Err()
}
