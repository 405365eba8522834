package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
)

const entrySource = `(
	SELECT f.*, COALESCE(c.nome, '') AS cliente_nome
	FROM financeiro_lancamentos f
	LEFT JOIN clientes c ON c.id = f.cliente_id
) AS t`

var entryList = listSpec{
	source:       entrySource,
	ownerColumn:  "user_id",
	searchFields: []string{"descricao", "cliente_nome"},
	defaultOrder: "data_vencimento DESC",
}

type entryRepository struct {
	db *DB
}

func NewEntryRepository(db *DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, e *domain.Entry) error {
	query := `
		INSERT INTO financeiro_lancamentos (id, user_id, cliente_id, descricao, valor,
			data_vencimento, data_pagamento, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		e.ID,
		e.OwnerID,
		e.ClientID,
		e.Description,
		e.Amount,
		e.DueDate,
		e.PaidOn,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (r *entryRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	var e domain.Entry
	err := r.db.get(ctx, &e, `SELECT * FROM `+entrySource+` WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return &e, nil
}

func (r *entryRepository) Update(ctx context.Context, e *domain.Entry) error {
	query := `
		UPDATE financeiro_lancamentos
		SET cliente_id = ?, descricao = ?, valor = ?, data_vencimento = ?, data_pagamento = ?,
			status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		e.ClientID,
		e.Description,
		e.Amount,
		e.DueDate,
		e.PaidOn,
		e.Status,
		e.UpdatedAt,
		e.ID,
		e.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if rows == 0 {
		return notFound("entry", e.ID)
	}
	return nil
}

func (r *entryRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM financeiro_lancamentos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if rows == 0 {
		return notFound("entry", id)
	}
	return nil
}

func (r *entryRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Entry, error) {
	query, args := entryList.selectQuery(ownerID, opts)
	entries := []*domain.Entry{}
	if err := r.db.selectAll(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (r *entryRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := entryList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (r *entryRepository) SumPending(ctx context.Context, ownerID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(valor), 0) FROM financeiro_lancamentos
		WHERE user_id = ? AND status = ?
	`
	var total float64
	if err := r.db.get(ctx, &total, query, ownerID, domain.EntryPending); err != nil {
		return 0, fmt.Errorf("failed to sum pending entries: %w", err)
	}
	return total, nil
}

func (r *entryRepository) SumPaidBetween(ctx context.Context, ownerID string, from, to civildate.Date) (float64, error) {
	query := `
		SELECT COALESCE(SUM(valor), 0) FROM financeiro_lancamentos
		WHERE user_id = ? AND status = ? AND data_pagamento >= ? AND data_pagamento <= ?
	`
	var total float64
	if err := r.db.get(ctx, &total, query, ownerID, domain.EntryPaid, from, to); err != nil {
		return 0, fmt.Errorf("failed to sum paid entries: %w", err)
	}
	return total, nil
}

func (r *entryRepository) CountOverdue(ctx context.Context, ownerID string, today civildate.Date) (int, error) {
	query := `
		SELECT COUNT(*) FROM financeiro_lancamentos
		WHERE user_id = ? AND status = ? AND data_vencimento < ?
	`
	var count int
	if err := r.db.get(ctx, &count, query, ownerID, domain.EntryPending, today); err != nil {
		return 0, fmt.Errorf("failed to count overdue entries: %w", err)
	}
	return count, nil
}

func (r *entryRepository) RevenueByMonth(ctx context.Context, ownerID string, from, to civildate.Date) ([]repository.MonthlyRevenue, error) {
	month := r.db.monthOf("data_pagamento")
	query := `
		SELECT ` + month + ` AS mes, COALESCE(SUM(valor), 0) AS total
		FROM financeiro_lancamentos
		WHERE user_id = ? AND status = ? AND data_pagamento >= ? AND data_pagamento <= ?
		GROUP BY ` + month + `
		ORDER BY mes ASC
	`
	revenue := []repository.MonthlyRevenue{}
	if err := r.db.selectAll(ctx, &revenue, query, ownerID, domain.EntryPaid, from, to); err != nil {
		return nil, fmt.Errorf("failed to group revenue by month: %w", err)
	}
	return revenue, nil
}
