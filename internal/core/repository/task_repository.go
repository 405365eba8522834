package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Task, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)

	// ListBetween returns tasks due within [from, to], ordered by due date.
	ListBetween(ctx context.Context, ownerID string, from, to civildate.Date) ([]*domain.Task, error)
}
