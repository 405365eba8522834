package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

// A user sees their own templates plus the shared defaults.
const templateScope = "(user_id = ? OR user_id IS NULL)"

var templateList = listSpec{
	source:       "message_templates",
	searchFields: []string{"title", "content"},
	defaultOrder: "is_default DESC, title ASC",
}

type templateRepository struct {
	db *DB
}

func NewTemplateRepository(db *DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, t *domain.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (id, user_id, title, content, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		t.ID,
		t.OwnerID,
		t.Title,
		t.Content,
		t.IsDefault,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.MessageTemplate, error) {
	var t domain.MessageTemplate
	err := r.db.get(ctx, &t, `SELECT * FROM message_templates WHERE id = ? AND `+templateScope, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("template", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return &t, nil
}

// Update only touches templates owned by t.OwnerID; defaults never match.
func (r *templateRepository) Update(ctx context.Context, t *domain.MessageTemplate) error {
	query := `
		UPDATE message_templates
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	rows, err := r.db.exec(ctx, query,
		t.Title,
		t.Content,
		t.UpdatedAt,
		t.ID,
		t.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if rows == 0 {
		return notFound("template", t.ID)
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM message_templates WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if rows == 0 {
		return notFound("template", id)
	}
	return nil
}

func (r *templateRepository) scoped(ownerID string, opts repository.ListOptions) (string, []interface{}) {
	where, args := templateList.where("", opts)
	return where + " AND " + templateScope, append(args, ownerID)
}

func (r *templateRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.MessageTemplate, error) {
	where, args := r.scoped(ownerID, opts)
	query := ApplyOrdering("SELECT * FROM "+templateList.source+where, opts.Order, templateList.defaultOrder)
	query, args = ApplyPagination(query, args, opts.Page, opts.PerPage)

	templates := []*domain.MessageTemplate{}
	if err := r.db.selectAll(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (r *templateRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	where, args := r.scoped(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, "SELECT COUNT(*) FROM "+templateList.source+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}
