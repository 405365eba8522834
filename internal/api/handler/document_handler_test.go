package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/martijn/lexdesk/internal/api/dto"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// upload posts a multipart form; empty fields are left out
func (env *testEnv) upload(t *testing.T, clientID, caseID, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if clientID != "" {
		_ = form.WriteField("cliente_id", clientID)
	}
	if caseID != "" {
		_ = form.WriteField("processo_id", caseID)
	}
	if filename != "" {
		part, err := form.CreateFormFile("arquivo", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := form.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/documentos", &body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestUploadAndDownloadDocument(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	client := env.seedClient(t, "Ana Costa", "ana@x.com", nil)
	kase := env.seedCase(t, client.ID, "0001234-56.2025.8.26.0100", "")

	w := env.upload(t, client.ID, kase.ID, "peticao.pdf", samplePDF)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	doc := parseJSON[dto.DocumentResponse](t, w)
	if doc.Nome != "peticao.pdf" || doc.TipoMime != "application/pdf" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Tamanho == nil || *doc.Tamanho != int64(len(samplePDF)) {
		t.Errorf("expected size %d, got %v", len(samplePDF), doc.Tamanho)
	}
	if doc.ProcessoID == nil || *doc.ProcessoID != kase.ID {
		t.Errorf("expected processo_id %s, got %v", kase.ID, doc.ProcessoID)
	}

	w = env.do(t, http.MethodPost, "/documentos/"+doc.ID+"/link", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	link := parseJSON[dto.SignedLinkResponse](t, w)
	if !strings.HasPrefix(link.URL, "/documentos/download/") {
		t.Fatalf("unexpected link: %s", link.URL)
	}

	w = env.makeRequest(t, link.URL)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if !bytes.Equal(w.Body.Bytes(), samplePDF) {
		t.Error("downloaded content does not match the upload")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected Content-Type application/pdf, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "peticao.pdf") {
		t.Errorf("expected filename in Content-Disposition, got %s", cd)
	}

	if w := env.makeRequest(t, "/documentos/download/forged-token"); w.Code != http.StatusNotFound {
		t.Errorf("expected forged token to be rejected with 404, got %d", w.Code)
	}

	list := parseJSON[dto.DocumentListResponse](t, env.makeRequest(t, "/documentos?query=cliente_id|"+client.ID))
	if list.Pagination.Total != 1 || list.Items[0].ClienteNome != "Ana Costa" {
		t.Errorf("unexpected document list: %+v", list)
	}

	if w := env.do(t, http.MethodDelete, "/documentos/"+doc.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if w := env.makeRequest(t, link.URL); w.Code != http.StatusNotFound {
		t.Errorf("expected link of a deleted document to fail with 404, got %d", w.Code)
	}
}

func TestUploadDocumentRejections(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	client := env.seedClient(t, "Ana Costa", "ana@x.com", nil)
	elf := append([]byte("\x7fELF\x02\x01\x01\x00"), make([]byte, 56)...)

	tests := []struct {
		name           string
		clientID       string
		caseID         string
		filename       string
		content        []byte
		expectedStatus int
		expectedField  string
	}{
		{"executable", client.ID, "", "run.pdf", elf, http.StatusUnsupportedMediaType, ""},
		{"missing client", "", "", "peticao.pdf", samplePDF, http.StatusBadRequest, "cliente_id"},
		{"missing file", client.ID, "", "", nil, http.StatusBadRequest, "arquivo"},
		{"empty file", client.ID, "", "vazio.pdf", []byte{}, http.StatusBadRequest, "arquivo"},
		{"unknown case", client.ID, "missing", "peticao.pdf", samplePDF, http.StatusBadRequest, "processo_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.upload(t, tt.clientID, tt.caseID, tt.filename, tt.content)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedField != "" {
				if resp := parseErrorResponse(t, w); resp.Fields[tt.expectedField] == "" {
					t.Errorf("expected field error for %s, got %v", tt.expectedField, resp.Fields)
				}
			}
		})
	}

	list := parseJSON[dto.DocumentListResponse](t, env.makeRequest(t, "/documentos"))
	if list.Pagination.Total != 0 {
		t.Errorf("expected no stored documents, got %d", list.Pagination.Total)
	}
}
