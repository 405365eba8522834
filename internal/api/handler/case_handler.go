package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

// Allowed fields for case queries and ordering
var caseFields = listFields{
	query: []string{"id", "numero", "cliente_id", "cliente_nome", "assunto", "status", "prioridade", "data_inicio", "data_limite", "responsavel", "instancia", "valor_causa", "created_at"},
	order: []string{"numero", "cliente_nome", "assunto", "status", "prioridade", "data_inicio", "data_limite", "valor_causa", "created_at"},
}

type CaseHandler struct {
	caseService *service.CaseService
}

func NewCaseHandler(caseService *service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// CreateCase handles POST /processos
// @Summary Create a case
// @Tags processos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CaseRequest true "Case"
// @Success 201 {object} dto.CaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /processos [post]
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req dto.CaseRequest
	if !bindJSON(c, &req) {
		return
	}

	kase := domain.NewCase(ownerID(c))
	applyCaseRequest(kase, req)

	if err := h.caseService.CreateCase(c.Request.Context(), kase); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCaseResponse(kase))
}

// GetCase handles GET /processos/:id
// @Summary Get a case
// @Tags processos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} dto.CaseResponse
// @Router /processos/{id} [get]
func (h *CaseHandler) GetCase(c *gin.Context) {
	kase, err := h.caseService.GetCase(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCaseResponse(kase))
}

// ListCases handles GET /processos
// @Summary List cases with their client names
// @Tags processos
// @Produce json
// @Security BearerAuth
// @Param query query string false "Filters, e.g. status|Em Andamento"
// @Param order query string false "Ordering, e.g. data_inicio|desc"
// @Param q query string false "Free-text search"
// @Success 200 {object} dto.CaseListResponse
// @Router /processos [get]
func (h *CaseHandler) ListCases(c *gin.Context) {
	opts, ok := parseListOptions(c, caseFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	cases, err := h.caseService.ListCases(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.caseService.CountCases(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(cases, count, opts, toCaseResponse))
}

// UpdateCase handles PUT /processos/:id
// @Summary Replace a case
// @Tags processos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param body body dto.CaseRequest true "Case"
// @Success 200 {object} dto.CaseResponse
// @Router /processos/{id} [put]
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	var req dto.CaseRequest
	if !bindJSON(c, &req) {
		return
	}

	kase, err := h.caseService.GetCase(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	applyCaseRequest(kase, req)
	if err := h.caseService.UpdateCase(c.Request.Context(), kase); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCaseResponse(kase))
}

// DeleteCase handles DELETE /processos/:id
// @Summary Delete a case
// @Tags processos
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 204
// @Router /processos/{id} [delete]
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	if err := h.caseService.DeleteCase(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func applyCaseRequest(kase *domain.Case, req dto.CaseRequest) {
	kase.Number = req.Numero
	kase.ClientID = req.ClienteID
	kase.Subject = req.Assunto
	kase.Status = domain.CaseStatus(req.Status)
	kase.Priority = domain.Priority(req.Prioridade)
	kase.StartDate = req.DataInicio
	kase.Deadline = req.DataLimite
	kase.Responsible = req.Responsavel
	kase.Instance = req.Instancia
	kase.ClaimValue = req.ValorCausa
}

func toCaseResponse(kase *domain.Case) dto.CaseResponse {
	return dto.CaseResponse{
		ID:          kase.ID,
		Numero:      kase.Number,
		ClienteID:   kase.ClientID,
		ClienteNome: kase.ClientName,
		Assunto:     kase.Subject,
		Status:      string(kase.Status),
		Prioridade:  string(kase.Priority),
		DataInicio:  kase.StartDate,
		DataLimite:  kase.Deadline,
		Responsavel: kase.Responsible,
		Instancia:   kase.Instance,
		ValorCausa:  kase.ClaimValue,
		CreatedAt:   kase.CreatedAt,
		UpdatedAt:   kase.UpdatedAt,
	}
}
