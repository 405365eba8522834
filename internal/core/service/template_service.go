package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

const whatsAppBaseURL = "https://wa.me/55"

// GeneratedMessage is a rendered template ready to send.
type GeneratedMessage struct {
	Message     string
	WhatsAppURL string // empty when the client has no phone
	ClientName  string
}

type TemplateService struct {
	templateRepo repository.TemplateRepository
	clientRepo   repository.ClientRepository
	caseRepo     repository.CaseRepository
}

func NewTemplateService(
	templateRepo repository.TemplateRepository,
	clientRepo repository.ClientRepository,
	caseRepo repository.CaseRepository,
) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		clientRepo:   clientRepo,
		caseRepo:     caseRepo,
	}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, t *domain.MessageTemplate) error {
	t.IsDefault = false
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.templateRepo.Create(ctx, t); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// editable loads a template and rejects the shared defaults.
func (s *TemplateService) editable(ctx context.Context, ownerID, id string) (*domain.MessageTemplate, error) {
	t, err := s.templateRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !t.OwnedBy(ownerID) {
		return nil, ErrReadOnlyTemplate
	}
	return t, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, ownerID, id, title, content string) (*domain.MessageTemplate, error) {
	t, err := s.editable(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	t.Title = title
	t.Content = content
	if err := t.Validate(); err != nil {
		return nil, err
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.templateRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return t, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, ownerID, id string) error {
	if _, err := s.editable(ctx, ownerID, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, ownerID, id)
}

func (s *TemplateService) GetTemplate(ctx context.Context, ownerID, id string) (*domain.MessageTemplate, error) {
	return s.templateRepo.FindByID(ctx, ownerID, id)
}

func (s *TemplateService) ListTemplates(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.MessageTemplate, error) {
	return s.templateRepo.List(ctx, ownerID, opts)
}

func (s *TemplateService) CountTemplates(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.templateRepo.Count(ctx, ownerID, opts)
}

// Variables lists the placeholders of a template in order of first use.
func (s *TemplateService) Variables(ctx context.Context, ownerID, id string) ([]string, error) {
	t, err := s.templateRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return t.Variables(), nil
}

// Generate renders a template for a client. Client and case variables are
// filled from the records and override typed values. Any placeholder left
// without a value fails the call with one field error per variable.
func (s *TemplateService) Generate(ctx context.Context, ownerID, templateID, clientID string, caseID *string, values map[string]string) (*GeneratedMessage, error) {
	t, err := s.templateRepo.FindByID(ctx, ownerID, templateID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ValidationErrors{"modelo_id": "template not found"}
	}
	if err != nil {
		return nil, err
	}

	client, err := checkClient(ctx, s.clientRepo, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	filled := make(map[string]string, len(values)+3)
	for k, v := range values {
		filled[k] = v
	}
	filled[domain.VarClientName] = client.Name

	if caseID != nil && *caseID != "" {
		c, err := s.caseRepo.FindByID(ctx, ownerID, *caseID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ValidationErrors{"processo_id": "case not found"}
		}
		if err != nil {
			return nil, err
		}
		filled[domain.VarCaseNumber] = c.Number
		filled[domain.VarCaseStatus] = string(c.Status)
	}

	message, missing := t.Render(filled)
	if len(missing) > 0 {
		errs := domain.ValidationErrors{}
		for _, name := range missing {
			errs.Add(name, "is required")
		}
		return nil, errs
	}

	out := &GeneratedMessage{Message: message, ClientName: client.Name}
	if client.Phone != nil {
		out.WhatsAppURL = WhatsAppURL(*client.Phone, message)
	}
	return out, nil
}

// WhatsAppURL builds a wa.me deep link for a Brazilian phone number.
// It returns "" when phone has no digits.
func WhatsAppURL(phone, message string) string {
	digits := domain.Digits(phone)
	if digits == "" {
		return ""
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBaseURL + digits + "?text=" + text
}
