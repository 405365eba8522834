package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type HearingService struct {
	hearingRepo repository.HearingRepository
	caseRepo    repository.CaseRepository
}

func NewHearingService(hearingRepo repository.HearingRepository, caseRepo repository.CaseRepository) *HearingService {
	return &HearingService{hearingRepo: hearingRepo, caseRepo: caseRepo}
}

// linkCase points the hearing at the owned case with the same number, if any.
func (s *HearingService) linkCase(ctx context.Context, h *domain.Hearing) error {
	c, err := s.caseRepo.FindByNumber(ctx, h.OwnerID, h.CaseNumber)
	if errors.Is(err, domain.ErrNotFound) {
		h.CaseID = nil
		return nil
	}
	if err != nil {
		return err
	}
	h.CaseID = &c.ID
	return nil
}

func (s *HearingService) CreateHearing(ctx context.Context, h *domain.Hearing) error {
	h.Normalize()
	if err := h.Validate(); err != nil {
		return err
	}
	if err := s.linkCase(ctx, h); err != nil {
		return err
	}

	if err := s.hearingRepo.Create(ctx, h); err != nil {
		return fmt.Errorf("failed to create hearing: %w", err)
	}
	return nil
}

func (s *HearingService) UpdateHearing(ctx context.Context, h *domain.Hearing) error {
	h.Normalize()
	if err := h.Validate(); err != nil {
		return err
	}
	if err := s.linkCase(ctx, h); err != nil {
		return err
	}

	h.UpdatedAt = time.Now().UTC()
	if err := s.hearingRepo.Update(ctx, h); err != nil {
		return fmt.Errorf("failed to update hearing: %w", err)
	}
	return nil
}

func (s *HearingService) DeleteHearing(ctx context.Context, ownerID, id string) error {
	return s.hearingRepo.Delete(ctx, ownerID, id)
}

func (s *HearingService) GetHearing(ctx context.Context, ownerID, id string) (*domain.Hearing, error) {
	return s.hearingRepo.FindByID(ctx, ownerID, id)
}

func (s *HearingService) ListHearings(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Hearing, error) {
	return s.hearingRepo.List(ctx, ownerID, opts)
}

func (s *HearingService) CountHearings(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.hearingRepo.Count(ctx, ownerID, opts)
}
