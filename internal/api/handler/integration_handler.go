package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

// IntegrationHandler manages API client credentials.
type IntegrationHandler struct {
	clientService *service.APIClientService
}

func NewIntegrationHandler(clientService *service.APIClientService) *IntegrationHandler {
	return &IntegrationHandler{
		clientService: clientService,
	}
}

// CreateIntegration handles POST /integracoes
// @Summary Create an API client
// @Tags integracoes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateIntegrationRequest true "Client"
// @Success 201 {object} dto.IntegrationCreateResponse
// @Router /integracoes [post]
func (h *IntegrationHandler) CreateIntegration(c *gin.Context) {
	var req dto.CreateIntegrationRequest
	if !bindJSON(c, &req) {
		return
	}

	owner := req.OwnerID
	if owner == "" {
		owner = ownerID(c)
	}

	client, secret, err := h.clientService.CreateClient(c.Request.Context(), req.Label, owner, req.Scopes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IntegrationCreateResponse{
		IntegrationResponse: toIntegrationResponse(client),
		Secret:              secret, // Only shown on creation!
	})
}

// GetIntegration handles GET /integracoes/:id
// @Summary Get an API client
// @Tags integracoes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} dto.IntegrationResponse
// @Router /integracoes/{id} [get]
func (h *IntegrationHandler) GetIntegration(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toIntegrationResponse(client))
}

// ListIntegrations handles GET /integracoes
// @Summary List API clients
// @Tags integracoes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.IntegrationListResponse
// @Router /integracoes [get]
func (h *IntegrationHandler) ListIntegrations(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	total := len(clients)
	response := dto.IntegrationListResponse{
		Items: make([]dto.IntegrationResponse, total),
		Pagination: dto.PaginationInfo{
			Total:      total,
			Page:       1,
			PerPage:    total,
			TotalPages: 1,
		},
	}

	for i, client := range clients {
		response.Items[i] = toIntegrationResponse(client)
	}

	c.JSON(http.StatusOK, response)
}

// UpdateIntegration handles PUT /integracoes/:id
// @Summary Rename an API client or change its scopes
// @Tags integracoes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.UpdateIntegrationRequest true "Changes"
// @Success 200 {object} dto.IntegrationResponse
// @Router /integracoes/{id} [put]
func (h *IntegrationHandler) UpdateIntegration(c *gin.Context) {
	var req dto.UpdateIntegrationRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req.Label, req.Scopes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toIntegrationResponse(client))
}

// DeleteIntegration handles DELETE /integracoes/:id
// @Summary Revoke an API client
// @Tags integracoes
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Router /integracoes/{id} [delete]
func (h *IntegrationHandler) DeleteIntegration(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toIntegrationResponse(client *domain.APIClient) dto.IntegrationResponse {
	return dto.IntegrationResponse{
		ID:        client.ID,
		Label:     client.Label,
		OwnerID:   client.OwnerID,
		Scopes:    client.Scopes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}
