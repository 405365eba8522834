package dto

import "time"

// DocumentResponse represents an uploaded document
type DocumentResponse struct {
	ID          string    `json:"id"`
	Nome        string    `json:"nome"`
	ClienteID   *string   `json:"cliente_id"`
	ClienteNome string    `json:"cliente_nome"`
	ProcessoID  *string   `json:"processo_id"`
	Tamanho     *int64    `json:"tamanho"`
	TipoMime    string    `json:"tipo_mime"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentListResponse = ListResponse[DocumentResponse]

// SignedLinkResponse is a short-lived public download link
type SignedLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
