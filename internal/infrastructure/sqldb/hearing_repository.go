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

var hearingList = listSpec{
	source:       "audiencias",
	ownerColumn:  "user_id",
	searchFields: []string{"processo_numero", "local", "tipo"},
	defaultOrder: "data ASC, hora ASC",
}

type hearingRepository struct {
	db *DB
}

func NewHearingRepository(db *DB) repository.HearingRepository {
	return &hearingRepository{db: db}
}

func (r *hearingRepository) Create(ctx context.Context, h *domain.Hearing) error {
	query := `
		INSERT INTO audiencias (id, user_id, processo_id, processo_numero, data, hora, local,
			tipo, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		h.ID,
		h.OwnerID,
		h.CaseID,
		h.CaseNumber,
		h.Date,
		h.Time,
		h.Location,
		h.Type,
		h.Status,
		h.CreatedAt,
		h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hearing: %w", err)
	}
	return nil
}

func (r *hearingRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Hearing, error) {
	var h domain.Hearing
	err := r.db.get(ctx, &h, `SELECT * FROM audiencias WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("hearing", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find hearing: %w", err)
	}
	return &h, nil
}

func (r *hearingRepository) Update(ctx context.Context, h *domain.Hearing) error {
	query := `
		UPDATE audiencias
		SET processo_id = ?, processo_numero = ?, data = ?, hora = ?, local = ?, tipo = ?,
			status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		h.CaseID,
		h.CaseNumber,
		h.Date,
		h.Time,
		h.Location,
		h.Type,
		h.Status,
		h.UpdatedAt,
		h.ID,
		h.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hearing: %w", err)
	}
	if rows == 0 {
		return notFound("hearing", h.ID)
	}
	return nil
}

func (r *hearingRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM audiencias WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete hearing: %w", err)
	}
	if rows == 0 {
		return notFound("hearing", id)
	}
	return nil
}

func (r *hearingRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Hearing, error) {
	query, args := hearingList.selectQuery(ownerID, opts)
	hearings := []*domain.Hearing{}
	if err := r.db.selectAll(ctx, &hearings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list hearings: %w", err)
	}
	return hearings, nil
}

func (r *hearingRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := hearingList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count hearings: %w", err)
	}
	return count, nil
}

func (r *hearingRepository) ListBetween(ctx context.Context, ownerID string, from, to civildate.Date) ([]*domain.Hearing, error) {
	query := `
		SELECT * FROM audiencias
		WHERE user_id = ? AND data >= ? AND data <= ?
		ORDER BY data ASC, hora ASC
	`
	hearings := []*domain.Hearing{}
	if err := r.db.selectAll(ctx, &hearings, query, ownerID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list hearings: %w", err)
	}
	return hearings, nil
}
