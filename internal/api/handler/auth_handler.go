package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/observability/metrics"
)

const (
	GrantAuthorizationCode = "authorization_code"
	GrantPassword          = "password"
	GrantClientCredentials = "client_credentials"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Authorize handles POST /auth/authorize
// @Summary Exchange email and password for a single-use authorization code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.AuthorizeRequest true "Credentials"
// @Success 200 {object} dto.AuthorizeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/authorize [post]
func (h *AuthHandler) Authorize(c *gin.Context) {
	var req dto.AuthorizeRequest
	if !bindJSON(c, &req) {
		return
	}

	authCode, err := h.authService.AuthorizeUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthorizeResponse{
		Code: authCode.Code,
	})
}

// Token handles POST /auth/token
// @Summary Issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TokenRequest true "Grant"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	var token *service.Token
	var err error
	ctx := c.Request.Context()

	switch req.GrantType {
	case GrantAuthorizationCode:
		if req.Code == "" {
			writeError(c, http.StatusBadRequest, "code is required for authorization_code grant type")
			return
		}
		token, err = h.authService.ExchangeAuthCode(ctx, req.Code)

	case GrantPassword:
		if req.Email == "" || req.Password == "" {
			writeError(c, http.StatusBadRequest, "email and password are required for password grant type")
			return
		}
		token, err = h.authService.PasswordGrant(ctx, req.Email, req.Password)

	case GrantClientCredentials:
		if req.ClientID == "" || req.ClientSecret == "" {
			writeError(c, http.StatusBadRequest, "client_id and client_secret are required for client_credentials grant type")
			return
		}
		token, err = h.authService.AuthenticateClient(ctx, req.ClientID, req.ClientSecret)

	default:
		writeError(c, http.StatusBadRequest, "Invalid grant_type. Must be 'authorization_code', 'password' or 'client_credentials'")
		return
	}

	metrics.ObserveLogin(req.GrantType, err == nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	})
}

// ChangePassword handles PUT /auth/password
// @Summary Change the signed-in user's password
// @Tags auth
// @Accept json
// @Security BearerAuth
// @Param body body dto.ChangePasswordRequest true "Passwords"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	s := session(c)
	if s.SubjectType != service.SubjectUser {
		writeError(c, http.StatusForbidden, "Only users have a password")
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), s.Subject, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me
// @Summary The signed-in user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
