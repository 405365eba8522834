package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/service"
)

type AgendaHandler struct {
	agendaService    *service.AgendaService
	dashboardService *service.DashboardService
}

func NewAgendaHandler(agendaService *service.AgendaService, dashboardService *service.DashboardService) *AgendaHandler {
	return &AgendaHandler{
		agendaService:    agendaService,
		dashboardService: dashboardService,
	}
}

// Agenda handles GET /agenda
// @Summary Hearings and tasks in a date range
// @Tags agenda
// @Produce json
// @Security BearerAuth
// @Param de query string false "First day (YYYY-MM-DD), defaults to today"
// @Param ate query string false "Last day (YYYY-MM-DD), defaults to de + 7 days"
// @Success 200 {object} dto.AgendaResponse
// @Router /agenda [get]
func (h *AgendaHandler) Agenda(c *gin.Context) {
	from, ok := queryDate(c, "de")
	if !ok {
		return
	}
	to, ok := queryDate(c, "ate")
	if !ok {
		return
	}

	start, end, err := h.agendaService.Range(from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.agendaService.Agenda(c.Request.Context(), ownerID(c), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.AgendaResponse{
		De:    start,
		Ate:   end,
		Items: make([]dto.AgendaItemResponse, len(items)),
	}
	for i, item := range items {
		response.Items[i] = dto.AgendaItemResponse{
			ID:             item.ID,
			Tipo:           item.Type,
			Titulo:         item.Title,
			Descricao:      item.Description,
			Data:           item.Date,
			Hora:           item.Time,
			Local:          item.Location,
			Status:         item.Status,
			Prioridade:     item.Priority,
			ProcessoNumero: item.CaseNumber,
		}
	}

	c.JSON(http.StatusOK, response)
}

// Dashboard handles GET /dashboard
// @Summary Office overview
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *AgendaHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboardService.Load(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.DashboardResponse{
		TotalClientes:      d.TotalClients,
		TotalProcessos:     d.TotalCases,
		AudienciasHoje:     d.HearingsToday,
		ReceitaMes:         d.RevenueMonth,
		ReceitaTotal:       d.RevenueTotal,
		PendenteTotal:      d.PendingTotal,
		ProcessosRecentes:  make([]dto.CaseResponse, len(d.RecentCases)),
		ProximasAudiencias: make([]dto.HearingResponse, len(d.NextHearings)),
		Produtividade: dto.ProductivityStats{
			ProcessosConcluidos:  d.Productivity.CasesClosed,
			AudienciasRealizadas: d.Productivity.HearingsHeld,
			TarefasConcluidas:    d.Productivity.TasksDone,
		},
		Mes: dto.MonthStats{
			Ganhos:      d.Month.Won,
			EmAndamento: d.Month.InProgress,
			Novos:       d.Month.New,
		},
	}
	for i, kase := range d.RecentCases {
		response.ProcessosRecentes[i] = toCaseResponse(kase)
	}
	for i, hearing := range d.NextHearings {
		response.ProximasAudiencias[i] = toHearingResponse(hearing)
	}

	c.JSON(http.StatusOK, response)
}
