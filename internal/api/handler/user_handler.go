package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

var userFields = listFields{
	query: []string{"id", "email", "role", "created_at"},
	order: []string{"email", "role", "created_at"},
}

// UserHandler is the admin surface over profiles.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers handles GET /usuarios
// @Summary List users
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Router /usuarios [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	opts, ok := parseListOptions(c, userFields)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.userService.CountUsers(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(users, count, opts, toUserResponse))
}

// CreateUser handles POST /usuarios
// @Summary Create a user
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /usuarios [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	role := domain.RoleMember
	if req.Role != nil {
		role = domain.Role(*req.Role)
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Email, req.Password, req.FullName, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// UpdateUser handles PATCH /usuarios/:id
// @Summary Change a user's role or reset their password
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body dto.UpdateUserRequest true "Changes"
// @Success 200 {object} dto.UserResponse
// @Router /usuarios/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if req.Password != nil {
		if err := h.userService.ResetPassword(ctx, id, *req.Password); err != nil {
			respondError(c, err)
			return
		}
	}

	var user *domain.User
	var err error
	if req.Role != nil {
		user, err = h.userService.SetRole(ctx, id, domain.Role(*req.Role))
	} else {
		user, err = h.userService.GetUser(ctx, id)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser handles DELETE /usuarios/:id
// @Summary Delete a user and everything they own
// @Tags usuarios
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /usuarios/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), session(c).Subject, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
