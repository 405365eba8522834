package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
)

type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Case, error)
	FindByNumber(ctx context.Context, ownerID, number string) (*domain.Case, error)
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Case, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)

	// CountByStatus returns the number of cases per status.
	CountByStatus(ctx context.Context, ownerID string) (map[domain.CaseStatus]int, error)
}
