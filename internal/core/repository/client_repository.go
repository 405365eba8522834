package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
)

// ClientRepository stores law clients. Every method is scoped to ownerID.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Client, error)
	Count(ctx context.Context, ownerID string, opts ListOptions) (int, error)

	// RecountActiveCases refreshes processos_ativos from the cases table.
	RecountActiveCases(ctx context.Context, ownerID, clientID string) error
}
