package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

const caseSource = `(
	SELECT p.*, COALESCE(c.nome, '') AS cliente_nome
	FROM processos p
	LEFT JOIN clientes c ON c.id = p.cliente_id
) AS t`

var caseList = listSpec{
	source:       caseSource,
	ownerColumn:  "user_id",
	searchFields: []string{"numero", "assunto", "cliente_nome", "responsavel"},
	defaultOrder: "data_inicio DESC, created_at DESC",
}

type caseRepository struct {
	db *DB
}

func NewCaseRepository(db *DB) repository.CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	query := `
		INSERT INTO processos (id, user_id, numero, cliente_id, assunto, status, prioridade,
			data_inicio, data_limite, responsavel, instancia, valor_causa, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		c.ID,
		c.OwnerID,
		c.Number,
		c.ClientID,
		c.Subject,
		c.Status,
		c.Priority,
		c.StartDate,
		c.Deadline,
		c.Responsible,
		c.Instance,
		c.ClaimValue,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (r *caseRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Case, error) {
	var c domain.Case
	err := r.db.get(ctx, &c, `SELECT * FROM `+caseSource+` WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("case", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find case: %w", err)
	}
	return &c, nil
}

func (r *caseRepository) FindByNumber(ctx context.Context, ownerID, number string) (*domain.Case, error) {
	var c domain.Case
	err := r.db.get(ctx, &c, `SELECT * FROM `+caseSource+` WHERE numero = ? AND user_id = ?`, number, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("case", number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find case: %w", err)
	}
	return &c, nil
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	query := `
		UPDATE processos
		SET numero = ?, cliente_id = ?, assunto = ?, status = ?, prioridade = ?,
			data_inicio = ?, data_limite = ?, responsavel = ?, instancia = ?, valor_causa = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		c.Number,
		c.ClientID,
		c.Subject,
		c.Status,
		c.Priority,
		c.StartDate,
		c.Deadline,
		c.Responsible,
		c.Instance,
		c.ClaimValue,
		c.UpdatedAt,
		c.ID,
		c.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	if rows == 0 {
		return notFound("case", c.ID)
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM processos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}
	if rows == 0 {
		return notFound("case", id)
	}
	return nil
}

func (r *caseRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Case, error) {
	query, args := caseList.selectQuery(ownerID, opts)
	cases := []*domain.Case{}
	if err := r.db.selectAll(ctx, &cases, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func (r *caseRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := caseList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return count, nil
}

func (r *caseRepository) CountByStatus(ctx context.Context, ownerID string) (map[domain.CaseStatus]int, error) {
	var rows []struct {
		Status domain.CaseStatus `db:"status"`
		Total  int               `db:"total"`
	}
	query := `SELECT status, COUNT(*) AS total FROM processos WHERE user_id = ? GROUP BY status`
	if err := r.db.selectAll(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to count cases by status: %w", err)
	}

	counts := make(map[domain.CaseStatus]int, len(domain.CaseStatuses))
	for _, s := range domain.CaseStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
