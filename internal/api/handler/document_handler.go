package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/observability/logger"
)

var documentFields = listFields{
	query: []string{"id", "nome", "cliente_id", "cliente_nome", "processo_id", "tipo_mime", "tamanho", "created_at"},
	order: []string{"nome", "cliente_nome", "tipo_mime", "tamanho", "created_at"},
}

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// UploadDocument handles POST /documentos
// @Summary Upload a document for a client
// @Tags documentos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param arquivo formData file true "File (max 10 MB)"
// @Param cliente_id formData string true "Client ID"
// @Param processo_id formData string false "Case ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Router /documentos [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	fields := map[string]string{}
	clientID := strings.TrimSpace(c.PostForm("cliente_id"))
	if clientID == "" {
		fields["cliente_id"] = "is required"
	}
	header, err := c.FormFile("arquivo")
	if err != nil {
		fields["arquivo"] = "is required"
	}
	if len(fields) > 0 {
		respondError(c, domain.ValidationErrors(fields))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	var caseID *string
	if v := strings.TrimSpace(c.PostForm("processo_id")); v != "" {
		caseID = &v
	}

	doc, err := h.documentService.Upload(c.Request.Context(), service.Upload{
		OwnerID:  ownerID(c),
		ClientID: clientID,
		CaseID:   caseID,
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

// GetDocument handles GET /documentos/:id
// @Summary Get document metadata
// @Tags documentos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Router /documentos/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// ListDocuments handles GET /documentos
// @Summary List documents
// @Tags documentos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DocumentListResponse
// @Router /documentos [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	opts, ok := parseListOptions(c, documentFields)
	if !ok {
		return
	}

	owner := ownerID(c)
	docs, err := h.documentService.ListDocuments(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.documentService.CountDocuments(c.Request.Context(), owner, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toList(docs, count, opts, toDocumentResponse))
}

// DeleteDocument handles DELETE /documentos/:id
// @Summary Delete a document and its file
// @Tags documentos
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 204
// @Router /documentos/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.DeleteDocument(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateLink handles POST /documentos/:id/link
// @Summary Issue a short-lived public download link
// @Tags documentos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 201 {object} dto.SignedLinkResponse
// @Router /documentos/{id}/link [post]
func (h *DocumentHandler) CreateLink(c *gin.Context) {
	link, err := h.documentService.CreateLink(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignedLinkResponse{
		URL:       "/documentos/download/" + link.Token,
		ExpiresAt: link.ExpiresAt,
	})
}

// Download handles GET /documentos/download/:token
// @Summary Download a document through a signed link
// @Tags documentos
// @Produce octet-stream
// @Param token path string true "Link token"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /documentos/download/{token} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, file, size, err := h.documentService.OpenLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.From(c.Request.Context()).Warn("failed to close document", logger.ID(doc.ID), logger.Err(err))
		}
	}()

	c.DataFromReader(http.StatusOK, size, doc.MimeType, file, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename=%q`, doc.Name),
	})
}

func toDocumentResponse(doc *domain.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:          doc.ID,
		Nome:        doc.Name,
		ClienteID:   doc.ClientID,
		ClienteNome: doc.ClientName,
		ProcessoID:  doc.CaseID,
		Tamanho:     doc.Size,
		TipoMime:    doc.MimeType,
		CreatedAt:   doc.CreatedAt,
	}
}
