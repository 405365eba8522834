package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
)

var templateFields = listFields{
	query: []string{"id", "title", "is_default", "created_at"},
	order: []string{"title", "is_default", "created_at"},
}

// TemplateHandler serves message templates and message generation.
type TemplateHandler struct {
	templateService *service.TemplateService
}

func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplate handles POST /mensagens/modelos
// @Summary Create a message template
// @Tags mensagens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Router /mensagens/modelos [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.TemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tmpl := domain.NewMessageTemplate(ownerID(c))
	tmpl.Title = req.Title
	tmpl.Content = req.Content

	if err := h.templateService.CreateTemplate(c.Request.Context(), tmpl); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTemplateResponse(tmpl))
}

// GetTemplate handles GET /mensagens/modelos/:id
// @Summary Get a message template
// @Tags mensagens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Router /mensagens/modelos/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.templateService.GetTemplate(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTemplateResponse(tmpl))
}

// ListTemplates handles GET /mensagens/modelos
// @Summary List the caller's templates and the shared defaults
// @Tags mensagens
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TemplateListResponse
// @Router /mensagens/modelos [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	opts, ok := parseListOptions(c, templateFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	templates, err := h.templateService.ListTemplates(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.templateService.CountTemplates(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(templates, count, opts, toTemplateResponse))
}

// UpdateTemplate handles PUT /mensagens/modelos/:id
// @Summary Replace one of the caller's templates
// @Tags mensagens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param body body dto.TemplateRequest true "Template"
// @Success 200 {object} dto.TemplateResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /mensagens/modelos/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req dto.TemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tmpl, err := h.templateService.UpdateTemplate(c.Request.Context(), ownerID(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTemplateResponse(tmpl))
}

// DeleteTemplate handles DELETE /mensagens/modelos/:id
// @Summary Delete one of the caller's templates
// @Tags mensagens
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Router /mensagens/modelos/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.DeleteTemplate(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Variables handles GET /mensagens/modelos/:id/variaveis
// @Summary Placeholders of a template in order of first use
// @Tags mensagens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} dto.VariablesResponse
// @Router /mensagens/modelos/{id}/variaveis [get]
func (h *TemplateHandler) Variables(c *gin.Context) {
	vars, err := h.templateService.Variables(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VariablesResponse{Variables: vars})
}

// Generate handles POST /mensagens/gerar
// @Summary Render a template for a client
// @Tags mensagens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GenerateMessageRequest true "Template, client and values"
// @Success 200 {object} dto.GenerateMessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing variables are listed in fields"
// @Router /mensagens/gerar [post]
func (h *TemplateHandler) Generate(c *gin.Context) {
	var req dto.GenerateMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.templateService.Generate(c.Request.Context(), ownerID(c), req.ModeloID, req.ClienteID, req.ProcessoID, req.Valores)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateMessageResponse{
		Mensagem:    msg.Message,
		ClienteNome: msg.ClientName,
		WhatsAppURL: msg.WhatsAppURL,
	})
}

func toTemplateResponse(tmpl *domain.MessageTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:        tmpl.ID,
		Title:     tmpl.Title,
		Content:   tmpl.Content,
		IsDefault: tmpl.IsDefault,
		Variables: tmpl.Variables(),
		CreatedAt: tmpl.CreatedAt,
		UpdatedAt: tmpl.UpdatedAt,
	}
}
