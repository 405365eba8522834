package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

const documentSource = `(
	SELECT d.*, COALESCE(c.nome, '') AS cliente_nome
	FROM documentos d
	LEFT JOIN clientes c ON c.id = d.cliente_id
) AS t`

var documentList = listSpec{
	source:       documentSource,
	ownerColumn:  "user_id",
	searchFields: []string{"nome", "cliente_nome"},
	defaultOrder: "created_at DESC",
}

type documentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *domain.Document) error {
	query := `
		INSERT INTO documentos (id, user_id, cliente_id, processo_id, nome, storage_path,
			tamanho, tipo_mime, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx, query,
		d.ID,
		d.OwnerID,
		d.ClientID,
		d.CaseID,
		d.Name,
		d.StoragePath,
		d.Size,
		d.MimeType,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	var d domain.Document
	err := r.db.get(ctx, &d, `SELECT * FROM `+documentSource+` WHERE id = ? AND user_id = ?`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("document", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &d, nil
}

func (r *documentRepository) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := r.db.exec(ctx, `DELETE FROM documentos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if rows == 0 {
		return notFound("document", id)
	}
	return nil
}

func (r *documentRepository) List(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Document, error) {
	query, args := documentList.selectQuery(ownerID, opts)
	docs := []*domain.Document{}
	if err := r.db.selectAll(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (r *documentRepository) Count(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	query, args := documentList.countQuery(ownerID, opts)
	var count int
	if err := r.db.get(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
