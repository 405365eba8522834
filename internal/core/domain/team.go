package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type MemberStatus string

const (
	MemberActive   MemberStatus = "Ativo"
	MemberInactive MemberStatus = "Inativo"
	MemberVacation MemberStatus = "Férias"
)

var MemberStatuses = []MemberStatus{MemberActive, MemberInactive, MemberVacation}

// Suggested values for the free-text position and department fields.
var (
	SuggestedPositions = []string{
		"Advogado Sênior",
		"Advogado Pleno",
		"Advogado Júnior",
		"Estagiário",
		"Paralegal",
		"Secretário Jurídico",
		"Assistente Administrativo",
		"Gerente",
		"Coordenador",
		"Analista",
	}
	SuggestedDepartments = []string{
		"Jurídico",
		"Administrativo",
		"Financeiro",
		"Recursos Humanos",
		"Tecnologia",
		"Marketing",
		"Atendimento",
	}
)

// TeamMember is a staff record ("equipe").
type TeamMember struct {
	ID         string          `db:"id"`
	OwnerID    string          `db:"user_id"`
	Name       string          `db:"nome"`
	Email      string          `db:"email"`
	Phone      *string         `db:"telefone"`
	Position   string          `db:"cargo"`
	Department string          `db:"departamento"`
	HiredOn    *civildate.Date `db:"data_admissao"`
	Salary     *float64        `db:"salario"`
	Status     MemberStatus    `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func NewTeamMember(ownerID string) *TeamMember {
	now := time.Now().UTC()
	return &TeamMember{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    MemberActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m *TeamMember) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Position = strings.TrimSpace(m.Position)
	m.Department = strings.TrimSpace(m.Department)
	m.Phone = trimOptional(m.Phone)
	if m.Status == "" {
		m.Status = MemberActive
	}
}

func (m *TeamMember) Validate() error {
	errs := ValidationErrors{}
	requireText(errs, "nome", m.Name)
	requireEmail(errs, "email", m.Email)
	requireText(errs, "cargo", m.Position)
	requireText(errs, "departamento", m.Department)
	requireOneOf(errs, "status", m.Status, MemberStatuses)
	if m.Salary != nil && *m.Salary < 0 {
		errs.Add("salario", "must not be negative")
	}
	return errs.Err()
}
