package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
)

// TemplateRepository returns a user's own templates together with the
// shared defaults.
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.MessageTemplate) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.MessageTemplate, error)
	Update(ctx context.Context, t *domain.MessageTemplate) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.MessageTemplate, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)
}
