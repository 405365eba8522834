package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxDocumentSize is the upload limit for one file.
const MaxDocumentSize = 10 << 20

// AllowedDocumentTypes is the MIME allow-list for uploads.
var AllowedDocumentTypes = []string{
	// PDF
	"application/pdf",

	// Images
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/webp",
	"image/svg+xml",
	"image/tiff",

	// Word
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",

	// Spreadsheets
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.oasis.opendocument.spreadsheet",
	"text/csv",

	// Audio
	"audio/mpeg",
	"audio/mp3",
	"audio/wav",
	"audio/ogg",
	"audio/aac",
	"audio/flac",
	"audio/x-m4a",
	"audio/x-ms-wma",

	// Data
	"application/json",
	"text/json",
	"application/xml",
	"text/xml",

	// Text
	"text/plain",

	// Presentations
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",

	// Other
	"application/rtf",
	"text/rtf",
	"application/zip",
	"application/x-rar-compressed",
}

// Document is an uploaded file attached to a client and optionally a case.
type Document struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"user_id"`
	ClientID    *string   `db:"cliente_id"`
	CaseID      *string   `db:"processo_id"`
	Name        string    `db:"nome"`
	StoragePath string    `db:"storage_path"`
	Size        *int64    `db:"tamanho"`
	MimeType    string    `db:"tipo_mime"`
	CreatedAt   time.Time `db:"created_at"`

	ClientName string `db:"cliente_nome"`
}

func NewDocument(ownerID, name string) *Document {
	return &Document{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
