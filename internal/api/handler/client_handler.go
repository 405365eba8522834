package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/pkg/civildate"
)

// Allowed fields for client queries and ordering
var clientFields = listFields{
	query: []string{"id", "nome", "email", "telefone", "status", "processos_ativos", "data_registro", "ultimo_contato", "created_at"},
	order: []string{"nome", "email", "status", "processos_ativos", "data_registro", "ultimo_contato", "created_at"},
}

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// CreateClient handles POST /clientes
// @Summary Create a client
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /clientes [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	var registeredOn civildate.Date
	if req.DataRegistro != nil {
		registeredOn = *req.DataRegistro
	}
	client := domain.NewClient(ownerID(c), registeredOn)
	applyClientRequest(client, req)

	if err := h.clientService.CreateClient(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toClientResponse(client))
}

// GetClient handles GET /clientes/:id
// @Summary Get a client
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// ListClients handles GET /clientes
// @Summary List clients
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param query query string false "Filters, e.g. status|Ativo"
// @Param order query string false "Ordering, e.g. nome|asc"
// @Param q query string false "Free-text search"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} dto.ClientListResponse
// @Router /clientes [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	opts, ok := parseListOptions(c, clientFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	clients, err := h.clientService.ListClients(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.clientService.CountClients(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(clients, count, opts, toClientResponse))
}

// UpdateClient handles PUT /clientes/:id
// @Summary Replace a client
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.ClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Router /clientes/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	applyClientRequest(client, req)
	if req.DataRegistro != nil {
		client.RegisteredOn = *req.DataRegistro
	}

	if err := h.clientService.UpdateClient(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// DeleteClient handles DELETE /clientes/:id
// @Summary Delete a client with its cases and entries
// @Tags clientes
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Router /clientes/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func applyClientRequest(client *domain.Client, req dto.ClientRequest) {
	client.Name = req.Nome
	client.Email = req.Email
	client.Phone = req.Telefone
	client.Address = req.Endereco
	client.Status = domain.ClientStatus(req.Status)
	client.LastContact = req.UltimoContato
}

func toClientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:              client.ID,
		Nome:            client.Name,
		Email:           client.Email,
		Telefone:        client.Phone,
		Endereco:        client.Address,
		Status:          string(client.Status),
		ProcessosAtivos: client.ActiveCases,
		DataRegistro:    client.RegisteredOn,
		UltimoContato:   client.LastContact,
		CreatedAt:       client.CreatedAt,
		UpdatedAt:       client.UpdatedAt,
	}
}
