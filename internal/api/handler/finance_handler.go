package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/api/util"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/pkg/civildate"
)

var entryFields = listFields{
	query: []string{"id", "cliente_id", "cliente_nome", "descricao", "valor", "data_vencimento", "data_pagamento", "status", "created_at"},
	order: []string{"cliente_nome", "descricao", "valor", "data_vencimento", "data_pagamento", "status", "created_at"},
}

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// CreateEntry handles POST /financeiro
// @Summary Create a billing entry
// @Tags financeiro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EntryRequest true "Entry"
// @Success 201 {object} dto.EntryResponse
// @Router /financeiro [post]
func (h *FinanceHandler) CreateEntry(c *gin.Context) {
	var req dto.EntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry := domain.NewEntry(ownerID(c))
	applyEntryRequest(entry, req)

	if err := h.financeService.CreateEntry(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.toEntryResponse(entry))
}

// GetEntry handles GET /financeiro/:id
// @Summary Get a billing entry
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Router /financeiro/{id} [get]
func (h *FinanceHandler) GetEntry(c *gin.Context) {
	entry, err := h.financeService.GetEntry(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toEntryResponse(entry))
}

// ListEntries handles GET /financeiro
// @Summary List billing entries
// @Description status|Atrasado selects pending entries past their due date.
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Param query query string false "Filters, e.g. status|Pendente"
// @Success 200 {object} dto.EntryListResponse
// @Router /financeiro [get]
func (h *FinanceHandler) ListEntries(c *gin.Context) {
	opts, ok := parseListOptions(c, entryFields)
	if !ok {
		return
	}
	opts.Filters = expandOverdue(opts.Filters, h.financeService.Today())

	owner := ownerID(c)
	entries, err := h.financeService.ListEntries(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.financeService.CountEntries(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(entries, count, opts, h.toEntryResponse))
}

// UpdateEntry handles PUT /financeiro/:id
// @Summary Replace a billing entry
// @Tags financeiro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param body body dto.EntryRequest true "Entry"
// @Success 200 {object} dto.EntryResponse
// @Router /financeiro/{id} [put]
func (h *FinanceHandler) UpdateEntry(c *gin.Context) {
	var req dto.EntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.financeService.GetEntry(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	applyEntryRequest(entry, req)
	if err := h.financeService.UpdateEntry(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toEntryResponse(entry))
}

// SetStatus handles PATCH /financeiro/:id/status
// @Summary Mark an entry paid or pending
// @Tags financeiro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param body body dto.EntryStatusRequest true "Status"
// @Success 200 {object} dto.EntryResponse
// @Router /financeiro/{id}/status [patch]
func (h *FinanceHandler) SetStatus(c *gin.Context) {
	var req dto.EntryStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.financeService.SetStatus(c.Request.Context(), ownerID(c), c.Param("id"), domain.EntryStatus(req.Status), req.DataPagamento)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toEntryResponse(entry))
}

// DeleteEntry handles DELETE /financeiro/:id
// @Summary Delete a billing entry
// @Tags financeiro
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Router /financeiro/{id} [delete]
func (h *FinanceHandler) DeleteEntry(c *gin.Context) {
	if err := h.financeService.DeleteEntry(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary handles GET /financeiro/resumo
// @Summary Receivable, received in the last 30 days, overdue count
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.FinanceSummaryResponse
// @Router /financeiro/resumo [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.financeService.Summary(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FinanceSummaryResponse{
		TotalAReceber:         summary.Receivable,
		RecebidoUltimos30Dias: summary.ReceivedLast30Days,
		Atrasados:             summary.OverdueCount,
	})
}

// Revenue handles GET /relatorios/receitas
// @Summary Paid revenue per month
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param de query string false "First payment date (YYYY-MM-DD)"
// @Param ate query string false "Last payment date (YYYY-MM-DD)"
// @Success 200 {object} dto.RevenueResponse
// @Router /relatorios/receitas [get]
func (h *FinanceHandler) Revenue(c *gin.Context) {
	from, ok := queryDate(c, "de")
	if !ok {
		return
	}
	to, ok := queryDate(c, "ate")
	if !ok {
		return
	}

	points, err := h.financeService.Revenue(c.Request.Context(), ownerID(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.RevenueResponse{Items: make([]dto.RevenuePoint, len(points))}
	for i, p := range points {
		response.Items[i] = dto.RevenuePoint{Mes: p.Month, Rotulo: p.Label, Total: p.Total}
		response.Total += p.Total
	}

	c.JSON(http.StatusOK, response)
}

// expandOverdue rewrites status|Atrasado, which is never stored, into the
// pending-and-past-due condition it projects.
func expandOverdue(filters []util.QueryFilter, today civildate.Date) []util.QueryFilter {
	out := make([]util.QueryFilter, 0, len(filters)+1)
	for _, f := range filters {
		if f.Field == "status" && f.Operator == util.OpEq && f.Value == string(domain.EntryOverdue) {
			out = append(out,
				util.QueryFilter{Field: "status", Operator: util.OpEq, Value: string(domain.EntryPending)},
				util.QueryFilter{Field: "data_vencimento", Operator: util.OpLt, Value: today.String()},
			)
			continue
		}
		out = append(out, f)
	}
	return out
}

func applyEntryRequest(entry *domain.Entry, req dto.EntryRequest) {
	entry.ClientID = req.ClienteID
	entry.Description = req.Descricao
	entry.Amount = req.Valor
	entry.DueDate = req.DataVencimento
	entry.PaidOn = req.DataPagamento
	entry.Status = domain.EntryStatus(req.Status)
}

func (h *FinanceHandler) toEntryResponse(entry *domain.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:             entry.ID,
		ClienteID:      entry.ClientID,
		ClienteNome:    entry.ClientName,
		Descricao:      entry.Description,
		Valor:          entry.Amount,
		DataVencimento: entry.DueDate,
		DataPagamento:  entry.PaidOn,
		Status:         string(entry.Status),
		StatusExibicao: string(entry.DisplayStatus(h.financeService.Today())),
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
}
