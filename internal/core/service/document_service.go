package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/martijn/lexdesk/internal/adapter/storage"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/internal/observability/logger"
	"github.com/martijn/lexdesk/internal/observability/metrics"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

var (
	ErrFileTooLarge     = NewServiceError(http.StatusRequestEntityTooLarge, "file exceeds the 10 MB limit")
	ErrFileTypeRejected = NewServiceError(http.StatusUnsupportedMediaType, "file type not allowed")
	ErrLinkExpired      = NewServiceError(http.StatusNotFound, "download link is invalid or expired")
)

// BlobStore is the file storage behind documents.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(key string) (*os.File, int64, error)
	Delete(ctx context.Context, key string) error
}

// Upload is an incoming file.
type Upload struct {
	OwnerID  string
	ClientID string
	CaseID   *string
	Filename string
	Body     io.Reader
}

// SignedLink is a short-lived public download URL token.
type SignedLink struct {
	Token     string
	ExpiresAt time.Time
}

type signedEntry struct {
	ownerID    string
	documentID string
}

type DocumentService struct {
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	caseRepo   repository.CaseRepository
	blobs      BlobStore
	links      *cache.Cache
	linkTTL    time.Duration
	maxBytes   int64
}

func NewDocumentService(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	caseRepo repository.CaseRepository,
	blobs BlobStore,
	linkTTL time.Duration,
	maxBytes int64,
) *DocumentService {
	if linkTTL <= 0 {
		linkTTL = time.Minute
	}
	if maxBytes <= 0 {
		maxBytes = domain.MaxDocumentSize
	}
	return &DocumentService{
		docRepo:    docRepo,
		clientRepo: clientRepo,
		caseRepo:   caseRepo,
		blobs:      blobs,
		links:      cache.New(linkTTL, 2*linkTTL),
		linkTTL:    linkTTL,
		maxBytes:   maxBytes,
	}
}

// AllowedType reports whether the sniffed type is on the allow-list.
func AllowedType(mtype *mimetype.MIME) bool {
	for _, allowed := range domain.AllowedDocumentTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}

// Upload sniffs and stores the file, then records it. A failed insert
// removes the stored blob.
func (s *DocumentService) Upload(ctx context.Context, up Upload) (*domain.Document, error) {
	client, err := checkClient(ctx, s.clientRepo, up.OwnerID, up.ClientID)
	if err != nil {
		return nil, err
	}
	if up.CaseID != nil && *up.CaseID != "" {
		if _, err := s.caseRepo.FindByID(ctx, up.OwnerID, *up.CaseID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ValidationErrors{"processo_id": "case not found"}
			}
			return nil, err
		}
	} else {
		up.CaseID = nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, domain.ValidationErrors{"arquivo": "file is empty"}
	}

	mtype := mimetype.Detect(head)
	if !AllowedType(mtype) {
		return nil, NewServiceError(ErrFileTypeRejected.Code, fmt.Sprintf("file type not allowed: %s", mtype.String()))
	}

	key := storage.Key(up.OwnerID, up.Filename)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), up.Body), s.maxBytes+1)
	size, err := s.blobs.Put(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if size > s.maxBytes {
		s.removeBlob(ctx, key)
		return nil, ErrFileTooLarge
	}

	doc := domain.NewDocument(up.OwnerID, storage.SanitizeFilename(up.Filename))
	doc.ClientID = &client.ID
	doc.CaseID = up.CaseID
	doc.StoragePath = key
	doc.Size = &size
	doc.MimeType = mtype.String()

	if err := s.docRepo.Create(ctx, doc); err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	doc.ClientName = client.Name

	metrics.ObserveDocumentBytes(size)
	return doc, nil
}

func (s *DocumentService) removeBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logger.From(ctx).Warn("failed to remove document blob",
			zap.String("storage_path", key),
			zap.Error(err),
		)
	}
}

// DeleteDocument removes the blob and the row. A failed blob removal is
// logged and the row is deleted anyway.
func (s *DocumentService) DeleteDocument(ctx context.Context, ownerID, id string) error {
	doc, err := s.docRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	s.removeBlob(ctx, doc.StoragePath)
	return s.docRepo.Delete(ctx, ownerID, id)
}

func (s *DocumentService) GetDocument(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	return s.docRepo.FindByID(ctx, ownerID, id)
}

func (s *DocumentService) ListDocuments(ctx context.Context, ownerID string, opts repository.ListOptions) ([]*domain.Document, error) {
	return s.docRepo.List(ctx, ownerID, opts)
}

func (s *DocumentService) CountDocuments(ctx context.Context, ownerID string, opts repository.ListOptions) (int, error) {
	return s.docRepo.Count(ctx, ownerID, opts)
}

// CreateLink issues a download token for an owned document.
func (s *DocumentService) CreateLink(ctx context.Context, ownerID, id string) (*SignedLink, error) {
	doc, err := s.docRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	token := uuid.New().String()
	s.links.Set(token, signedEntry{ownerID: doc.OwnerID, documentID: doc.ID}, s.linkTTL)
	return &SignedLink{Token: token, ExpiresAt: time.Now().Add(s.linkTTL).UTC()}, nil
}

// OpenLink resolves a download token to the document and its content.
// The caller closes the file.
func (s *DocumentService) OpenLink(ctx context.Context, token string) (*domain.Document, *os.File, int64, error) {
	value, ok := s.links.Get(token)
	if !ok {
		return nil, nil, 0, ErrLinkExpired
	}
	entry := value.(signedEntry)

	doc, err := s.docRepo.FindByID(ctx, entry.ownerID, entry.documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, 0, ErrLinkExpired
		}
		return nil, nil, 0, err
	}

	f, size, err := s.blobs.Open(doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, 0, NewServiceError(http.StatusNotFound, "file is missing from storage")
		}
		return nil, nil, 0, err
	}
	return doc, f, size, nil
}
