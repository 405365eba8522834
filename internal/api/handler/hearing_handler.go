package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

// Allowed fields for hearing queries and ordering
var hearingFields = listFields{
	query: []string{"id", "processo_id", "processo_numero", "data", "hora", "local", "tipo", "status", "created_at"},
	order: []string{"processo_numero", "data", "hora", "local", "tipo", "status", "created_at"},
}

type HearingHandler struct {
	hearingService *service.HearingService
}

func NewHearingHandler(hearingService *service.HearingService) *HearingHandler {
	return &HearingHandler{hearingService: hearingService}
}

// CreateHearing handles POST /audiencias
// @Summary Schedule a hearing
// @Tags audiencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.HearingRequest true "Hearing"
// @Success 201 {object} dto.HearingResponse
// @Router /audiencias [post]
func (h *HearingHandler) CreateHearing(c *gin.Context) {
	var req dto.HearingRequest
	if !bindJSON(c, &req) {
		return
	}

	hearing := domain.NewHearing(ownerID(c))
	applyHearingRequest(hearing, req)

	if err := h.hearingService.CreateHearing(c.Request.Context(), hearing); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toHearingResponse(hearing))
}

// GetHearing handles GET /audiencias/:id
// @Summary Get a hearing
// @Tags audiencias
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hearing ID"
// @Success 200 {object} dto.HearingResponse
// @Router /audiencias/{id} [get]
func (h *HearingHandler) GetHearing(c *gin.Context) {
	hearing, err := h.hearingService.GetHearing(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toHearingResponse(hearing))
}

// ListHearings handles GET /audiencias
// @Summary List hearings
// @Tags audiencias
// @Produce json
// @Security BearerAuth
// @Param query query string false "Filters, e.g. data|gte|2025-06-01"
// @Param order query string false "Ordering, e.g. data|asc"
// @Success 200 {object} dto.HearingListResponse
// @Router /audiencias [get]
func (h *HearingHandler) ListHearings(c *gin.Context) {
	opts, ok := parseListOptions(c, hearingFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	hearings, err := h.hearingService.ListHearings(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.hearingService.CountHearings(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(hearings, count, opts, toHearingResponse))
}

// UpdateHearing handles PUT /audiencias/:id
// @Summary Replace a hearing
// @Tags audiencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hearing ID"
// @Param body body dto.HearingRequest true "Hearing"
// @Success 200 {object} dto.HearingResponse
// @Router /audiencias/{id} [put]
func (h *HearingHandler) UpdateHearing(c *gin.Context) {
	var req dto.HearingRequest
	if !bindJSON(c, &req) {
		return
	}

	hearing, err := h.hearingService.GetHearing(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	applyHearingRequest(hearing, req)
	if err := h.hearingService.UpdateHearing(c.Request.Context(), hearing); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toHearingResponse(hearing))
}

// DeleteHearing handles DELETE /audiencias/:id
// @Summary Delete a hearing
// @Tags audiencias
// @Security BearerAuth
// @Param id path string true "Hearing ID"
// @Success 204
// @Router /audiencias/{id} [delete]
func (h *HearingHandler) DeleteHearing(c *gin.Context) {
	if err := h.hearingService.DeleteHearing(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func applyHearingRequest(hearing *domain.Hearing, req dto.HearingRequest) {
	hearing.CaseNumber = req.ProcessoNumero
	hearing.Date = req.Data
	hearing.Time = req.Hora
	hearing.Location = req.Local
	hearing.Type = domain.HearingType(req.Tipo)
	hearing.Status = domain.HearingStatus(req.Status)
}

func toHearingResponse(hearing *domain.Hearing) dto.HearingResponse {
	return dto.HearingResponse{
		ID:             hearing.ID,
		ProcessoID:     hearing.CaseID,
		ProcessoNumero: hearing.CaseNumber,
		Data:           hearing.Date,
		Hora:           hearing.Time,
		Local:          hearing.Location,
		Tipo:           string(hearing.Type),
		Status:         string(hearing.Status),
		CreatedAt:      hearing.CreatedAt,
		UpdatedAt:      hearing.UpdatedAt,
	}
}
