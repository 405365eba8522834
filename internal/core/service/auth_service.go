package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	AuthCodeExpirationMinutes = 10
	TokenExpirationHours      = 1
	BcryptCost                = 10

	SubjectUser   = "user"
	SubjectClient = "client"

	// ScopeAll grants every resource. Users always receive it.
	ScopeAll = "*"
)

// TokenClaims represents JWT claims
type TokenClaims struct {
	Subject     string      `json:"sub"`
	SubjectType string      `json:"sub_type"` // "user" or "client"
	OwnerID     string      `json:"owner_id"`
	Role        domain.Role `json:"role"`
	Scopes      []string    `json:"scopes"`
	jwt.RegisteredClaims
}

// Session is the authenticated caller of one request.
type Session struct {
	Subject     string
	SubjectType string
	OwnerID     string
	Role        domain.Role
	Scopes      []string
}

func (s *Session) IsAdmin() bool {
	return s.SubjectType == SubjectUser && s.Role == domain.RoleAdmin
}

// HasScope reports whether the session may touch resource.
func (s *Session) HasScope(resource string) bool {
	for _, scope := range s.Scopes {
		if scope == ScopeAll || scope == resource {
			return true
		}
	}
	return false
}

// Token is an issued access token.
type Token struct {
	AccessToken string
	ExpiresIn   int
}

type AuthService struct {
	userRepo     repository.UserRepository
	clientRepo   repository.APIClientRepository
	authCodeRepo repository.AuthCodeRepository
	jwtSecret    string
	jwtAlgorithm string
}

func NewAuthService(
	userRepo repository.UserRepository,
	clientRepo repository.APIClientRepository,
	authCodeRepo repository.AuthCodeRepository,
	jwtSecret string,
	jwtAlgorithm string,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		clientRepo:   clientRepo,
		authCodeRepo: authCodeRepo,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *AuthService) checkCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AuthorizeUser authenticates a user and returns a single-use auth code
func (s *AuthService) AuthorizeUser(ctx context.Context, email, password string) (*domain.AuthCode, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	authCode := domain.NewAuthCode(user.ID, []string{ScopeAll}, AuthCodeExpirationMinutes)
	if err := s.authCodeRepo.Create(ctx, authCode); err != nil {
		return nil, fmt.Errorf("failed to create auth code: %w", err)
	}

	// Clean up expired codes
	_ = s.authCodeRepo.DeleteExpired(ctx)

	return authCode, nil
}

// ExchangeAuthCode exchanges an auth code for a JWT token
func (s *AuthService) ExchangeAuthCode(ctx context.Context, code string) (*Token, error) {
	authCode, err := s.authCodeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, ErrInvalidAuthCode
	}

	// Single use, expired or not
	_ = s.authCodeRepo.Delete(ctx, code)

	if authCode.IsExpired() {
		return nil, ErrAuthCodeExpired
	}

	user, err := s.userRepo.FindByID(ctx, authCode.UserID)
	if err != nil {
		return nil, ErrInvalidAuthCode
	}

	return s.generateJWT(user.ID, SubjectUser, user.ID, user.Role, authCode.Scopes)
}

// PasswordGrant signs a user in directly with email and password.
func (s *AuthService) PasswordGrant(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.generateJWT(user.ID, SubjectUser, user.ID, user.Role, []string{ScopeAll})
}

// AuthenticateClient authenticates an integration client. The token acts on
// behalf of the client's owner with the client's scopes and never as admin.
func (s *AuthService) AuthenticateClient(ctx context.Context, clientID, clientSecret string) (*Token, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, ErrInvalidClient
	}

	if !VerifyPassword(clientSecret, client.Secret) {
		return nil, ErrInvalidClient
	}

	return s.generateJWT(clientID, SubjectClient, client.OwnerID, domain.RoleMember, client.Scopes)
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !VerifyPassword(current, user.Password) {
		return ErrInvalidCredentials
	}
	if len(next) < domain.MinPasswordLength {
		return domain.ValidationErrors{"new_password": "must have at least 8 characters"}
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	user.Password = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Me returns the profile of the signed-in user.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ValidateToken validates a JWT token and returns the session it carries
func (s *AuthService) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.OwnerID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Session{
		Subject:     claims.Subject,
		SubjectType: claims.SubjectType,
		OwnerID:     claims.OwnerID,
		Role:        claims.Role,
		Scopes:      claims.Scopes,
	}, nil
}

func (s *AuthService) generateJWT(subject, subjectType, ownerID string, role domain.Role, scopes []string) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(TokenExpirationHours * time.Hour)

	claims := TokenClaims{
		Subject:     subject,
		SubjectType: subjectType,
		OwnerID:     ownerID,
		Role:        role,
		Scopes:      scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "lexdesk",
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	tokenString, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{AccessToken: tokenString, ExpiresIn: TokenExpirationHours * 3600}, nil
}
