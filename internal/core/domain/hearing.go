package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type HearingType string

const (
	HearingInstruction  HearingType = "Instrução"
	HearingConciliation HearingType = "Conciliação"
	HearingJudgment     HearingType = "Julgamento"
	HearingSingle       HearingType = "Una"
)

var HearingTypes = []HearingType{HearingInstruction, HearingConciliation, HearingJudgment, HearingSingle}

type HearingStatus string

const (
	HearingScheduled   HearingStatus = "Agendada"
	HearingHeld        HearingStatus = "Realizada"
	HearingCancelled   HearingStatus = "Cancelada"
	HearingRescheduled HearingStatus = "Reagendada"
)

var HearingStatuses = []HearingStatus{HearingScheduled, HearingHeld, HearingCancelled, HearingRescheduled}

// Hearing is a court appointment ("audiência") tied to a case number.
type Hearing struct {
	ID         string         `db:"id"`
	OwnerID    string         `db:"user_id"`
	CaseID     *string        `db:"processo_id"`
	CaseNumber string         `db:"processo_numero"`
	Date       civildate.Date `db:"data"`
	Time       string         `db:"hora"`
	Location   string         `db:"local"`
	Type       HearingType    `db:"tipo"`
	Status     HearingStatus  `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func NewHearing(ownerID string) *Hearing {
	now := time.Now().UTC()
	return &Hearing{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    HearingScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (h *Hearing) Normalize() {
	h.CaseNumber = strings.TrimSpace(h.CaseNumber)
	h.Location = strings.TrimSpace(h.Location)
	h.Time = strings.TrimSpace(h.Time)
	if len(h.Time) == len("15:04:05") {
		h.Time = h.Time[:5]
	}
	if h.Status == "" {
		h.Status = HearingScheduled
	}
}

func (h *Hearing) Validate() error {
	errs := ValidationErrors{}
	requireText(errs, "processo_numero", h.CaseNumber)
	requireText(errs, "local", h.Location)
	if h.Date.IsZero() {
		errs.Add("data", "is required")
	}
	if !ValidHour(h.Time) {
		errs.Add("hora", "must be HH:MM")
	}
	requireOneOf(errs, "tipo", h.Type, HearingTypes)
	requireOneOf(errs, "status", h.Status, HearingStatuses)
	return errs.Err()
}
