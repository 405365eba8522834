package service

import (
	"context"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type TeamService struct {
	teamRepo repository.TeamRepository
}

func NewTeamService(teamRepo repository.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) CreateMember(ctx context.Context, m *domain.TeamMember) error {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.teamRepo.Create(ctx, m); err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

func (s *TeamService) UpdateMember(ctx context.Context, m *domain.TeamMember) error {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	if err := s.teamRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	return nil
}

func (s *TeamService) DeleteMember(ctx context.Context, ownerID, id string) error {
	return s.teamRepo.Delete(ctx, ownerID, id)
}

func (s *TeamService) GetMember(ctx context.Context, ownerID, id string) (*domain.TeamMember, error) {
	return s.teamRepo.FindByID(ctx, ownerID, id)
}

func (s *TeamService) ListMembers(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.TeamMember, error) {
	return s.teamRepo.List(ctx, ownerID, opts)
}

func (s *TeamService) CountMembers(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.teamRepo.Count(ctx, ownerID, opts)
}
