package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser registers a profile with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleMember
	}
	errs := domain.ValidationErrors{}
	mergeValidation(errs, domain.ValidateCredentials(email, password))
	mergeValidation(errs, domain.ValidateRole(role))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(email, hash, role)
	if name := strings.TrimSpace(fullName); name != "" {
		user.FullName = &name
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context, opts repository.ListOptions) ([]*domain.User, error) {
	return s.userRepo.List(ctx, opts)
}

func (s *UserService) CountUsers(ctx context.Context, opts repository.ListOptions) (int, error) {
	return s.userRepo.Count(ctx, opts)
}

// ResetPassword sets a new password without checking the old one.
func (s *UserService) ResetPassword(ctx context.Context, id, password string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ValidationErrors{"password": "must have at least 8 characters"}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	user.UpdatedAt = time.Now().UTC()
	return s.userRepo.Update(ctx, user)
}

// SetRole promotes or demotes a user.
func (s *UserService) SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if err := domain.ValidateRole(role); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a profile and, through foreign keys, everything it owns.
// actorID may be empty when called from the CLI.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID != "" && actorID == id {
		return NewServiceError(http.StatusBadRequest, "cannot delete your own account")
	}
	return s.userRepo.Delete(ctx, id)
}
