package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

// APIClientService manages integration credentials for the client_credentials grant.
type APIClientService struct {
	clientRepo repository.APIClientRepository
	userRepo   repository.UserRepository
}

func NewAPIClientService(clientRepo repository.APIClientRepository, userRepo repository.UserRepository) *APIClientService {
	return &APIClientService{clientRepo: clientRepo, userRepo: userRepo}
}

// CreateClient stores a new client and returns it with its plain secret,
// which is never retrievable again.
func (s *APIClientService) CreateClient(ctx context.Context, label, ownerID string, scopes []string) (*domain.APIClient, string, error) {
	errs := domain.ValidationErrors{}
	label = strings.TrimSpace(label)
	if label == "" {
		errs.Add("label", "is required")
	}
	if len(scopes) == 0 {
		scopes = []string{ScopeAll}
	}
	mergeValidation(errs, domain.ValidateScopes(scopes))
	if err := errs.Err(); err != nil {
		return nil, "", err
	}

	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		return nil, "", fmt.Errorf("failed to find owner: %w", err)
	}

	secret := uuid.New().String()
	hashedSecret, err := HashPassword(secret)
	if err != nil {
		return nil, "", err
	}

	client := domain.NewAPIClient(label, ownerID, hashedSecret, scopes)
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, "", fmt.Errorf("failed to create client: %w", err)
	}
	return client, secret, nil
}

func (s *APIClientService) GetClient(ctx context.Context, id string) (*domain.APIClient, error) {
	return s.clientRepo.FindByID(ctx, id)
}

func (s *APIClientService) ListClients(ctx context.Context) ([]*domain.APIClient, error) {
	return s.clientRepo.List(ctx)
}

// UpdateClient changes the label and, when given, the scopes.
func (s *APIClientService) UpdateClient(ctx context.Context, id, label string, scopes []string) (*domain.APIClient, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := domain.ValidationErrors{}
	if label = strings.TrimSpace(label); label == "" {
		errs.Add("label", "is required")
	}
	if scopes != nil {
		mergeValidation(errs, domain.ValidateScopes(scopes))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	client.Label = label
	if scopes != nil {
		client.Scopes = scopes
	}
	client.UpdatedAt = time.Now().UTC()
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *APIClientService) DeleteClient(ctx context.Context, id string) error {
	return s.clientRepo.Delete(ctx, id)
}
