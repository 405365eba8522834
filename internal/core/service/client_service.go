package service

import (
	"context"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type ClientService struct {
	clientRepo repository.ClientRepository
	clock      *Clock
}

func NewClientService(clientRepo repository.ClientRepository, clock *Clock) *ClientService {
	return &ClientService{clientRepo: clientRepo, clock: clock}
}

// CreateClient validates and stores a client. A missing registration date
// defaults to today.
func (s *ClientService) CreateClient(ctx context.Context, client *domain.Client) error {
	if client.RegisteredOn.IsZero() {
		client.RegisteredOn = s.clock.Today()
	}
	client.Normalize()
	if err := client.Validate(); err != nil {
		return err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (s *ClientService) UpdateClient(ctx context.Context, client *domain.Client) error {
	client.Normalize()
	if err := client.Validate(); err != nil {
		return err
	}

	client.UpdatedAt = time.Now().UTC()
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// DeleteClient removes the client together with its cases and entries.
func (s *ClientService) DeleteClient(ctx context.Context, ownerID, id string) error {
	return s.clientRepo.Delete(ctx, ownerID, id)
}

func (s *ClientService) GetClient(ctx context.Context, ownerID, id string) (*domain.Client, error) {
	return s.clientRepo.FindByID(ctx, ownerID, id)
}

func (s *ClientService) ListClients(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx, ownerID, opts)
}

func (s *ClientService) CountClients(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.clientRepo.Count(ctx, ownerID, opts)
}
