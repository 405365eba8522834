package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.TeamMember, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)
}
