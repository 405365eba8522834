package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Document, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Document, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)
}
