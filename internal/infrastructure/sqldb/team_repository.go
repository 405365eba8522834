package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

var teamList = listSpec{
	source:       "equipe",
	ownerColumn:  "user_id",
	searchFields: []string{"nome", "email", "cargo", "departamento"},
	defaultOrder: "nome ASC",
}

type teamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `
		INSERT INTO equipe (id, user_id, nome, email, telefone, cargo, departamento,
			data_admissao, salario, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		m.ID,
		m.OwnerID,
		m.Name,
		m.Email,
		m.Phone,
		m.Position,
		m.Department,
		m.HiredOn,
		m.Salary,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

func (r *teamRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.TeamMember, error) {
	var m domain.TeamMember
	err := r.db.get(ctx, &m, `SELECT * FROM equipe WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("team member", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	return &m, nil
}

func (r *teamRepository) Update(ctx context.Context, m *domain.TeamMember) error {
	query := `
		UPDATE equipe
		SET nome = ?, email = ?, telefone = ?, cargo = ?, departamento = ?, data_admissao = ?,
			salario = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		m.Name,
		m.Email,
		m.Phone,
		m.Position,
		m.Department,
		m.HiredOn,
		m.Salary,
		m.Status,
		m.UpdatedAt,
		m.ID,
		m.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	if rows == 0 {
		return notFound("team member", m.ID)
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM equipe WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if rows == 0 {
		return notFound("team member", id)
	}
	return nil
}

func (r *teamRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.TeamMember, error) {
	query, args := teamList.selectQuery(ownerID, opts)
	members := []*domain.TeamMember{}
	if err := r.db.selectAll(ctx, &members, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

func (r *teamRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := teamList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}
	return count, nil
}
