package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

type CourtHandler struct {
	lookupService *service.CourtLookupService
}

func NewCourtHandler(lookupService *service.CourtLookupService) *CourtHandler {
	return &CourtHandler{lookupService: lookupService}
}

// Tribunals handles GET /consulta-processos/tribunais
// @Summary Searchable courts
// @Tags consulta-processos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TribunalResponse
// @Router /consulta-processos/tribunais [get]
func (h *CourtHandler) Tribunals(c *gin.Context) {
	tribunals := h.lookupService.Tribunals()
	response := make([]dto.TribunalResponse, len(tribunals))
	for i, t := range tribunals {
		response[i] = toTribunalResponse(t)
	}

	c.JSON(http.StatusOK, response)
}

// Lookup handles POST /consulta-processos
// @Summary Look a process up in a court's public records
// @Tags consulta-processos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CourtLookupRequest true "Court and process number"
// @Success 200 {object} dto.CourtLookupResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /consulta-processos [post]
func (h *CourtHandler) Lookup(c *gin.Context) {
	var req dto.CourtLookupRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.lookupService.Lookup(c.Request.Context(), req.Tribunal, req.NumeroProcesso)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CourtLookupResponse{
		Tribunal:        toTribunalResponse(result.Tribunal),
		NumeroProcesso:  result.Numero,
		NumeroFormatado: result.NumeroFormatado,
		Dados:           result.Data,
	})
}

func toTribunalResponse(t domain.Tribunal) dto.TribunalResponse {
	return dto.TribunalResponse{
		Alias:     t.Alias,
		Nome:      t.Name,
		Categoria: t.Category,
		URL:       t.URL,
	}
}
