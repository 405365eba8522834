package repository

import (
	"context"

	"github.com/martijn/lexdesk/internal/core/domain"
)

type APIClientRepository interface {
	Create(ctx context.Context, client *domain.APIClient) error
	FindByID(ctx context.Context, id string) (*domain.APIClient, error)
	Update(ctx context.Context, client *domain.APIClient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.APIClient, error)
}
