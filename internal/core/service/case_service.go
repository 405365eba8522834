package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type CaseService struct {
	caseRepo   repository.CaseRepository
	clientRepo repository.ClientRepository
}

func NewCaseService(caseRepo repository.CaseRepository, clientRepo repository.ClientRepository) *CaseService {
	return &CaseService{caseRepo: caseRepo, clientRepo: clientRepo}
}

// checkClient turns a foreign or unknown cliente_id into a field error.
func checkClient(ctx context.Context, clientRepo repository.ClientRepository, ownerID, clientID string) (*domain.Client, error) {
	client, err := clientRepo.FindByID(ctx, ownerID, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ValidationErrors{"cliente_id": "client not found"}
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *CaseService) CreateCase(ctx context.Context, c *domain.Case) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	client, err := checkClient(ctx, s.clientRepo, c.OwnerID, c.ClientID)
	if err != nil {
		return err
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	c.ClientName = client.Name

	return s.clientRepo.RecountActiveCases(ctx, c.OwnerID, c.ClientID)
}

func (s *CaseService) UpdateCase(ctx context.Context, c *domain.Case) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	client, err := checkClient(ctx, s.clientRepo, c.OwnerID, c.ClientID)
	if err != nil {
		return err
	}

	previous, err := s.caseRepo.FindByID(ctx, c.OwnerID, c.ID)
	if err != nil {
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	c.ClientName = client.Name

	if err := s.clientRepo.RecountActiveCases(ctx, c.OwnerID, c.ClientID); err != nil {
		return err
	}
	if previous.ClientID != c.ClientID {
		return s.clientRepo.RecountActiveCases(ctx, c.OwnerID, previous.ClientID)
	}
	return nil
}

func (s *CaseService) DeleteCase(ctx context.Context, ownerID, id string) error {
	c, err := s.caseRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.caseRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	return s.clientRepo.RecountActiveCases(ctx, ownerID, c.ClientID)
}

func (s *CaseService) GetCase(ctx context.Context, ownerID, id string) (*domain.Case, error) {
	return s.caseRepo.FindByID(ctx, ownerID, id)
}

func (s *CaseService) ListCases(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Case, error) {
	return s.caseRepo.List(ctx, ownerID, opts)
}

func (s *CaseService) CountCases(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.caseRepo.Count(ctx, ownerID, opts)
}
