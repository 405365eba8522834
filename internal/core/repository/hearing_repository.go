package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/pkg/civildate"
)

type HearingRepository interface {
	Create(ctx context.Context, h *domain.Hearing) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Hearing, error)
	Update(ctx context.Context, h *domain.Hearing) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Hearing, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)

	// ListBetween returns hearings dated within [from, to], ordered by date and time.
	ListBetween(ctx context.Context, ownerID string, from, to civildate.Date) ([]*domain.Hearing, error)
}
