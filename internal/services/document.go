package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type UploadDocumentInput struct {
	Title       string
	ContentType string
	Data        []byte
}

// DocumentService handles the admin knowledge-base uploads. Files are
// stored opaquely in the bucket; only the title is indexed for retrieval,
// no content parsing happens here.
type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput) (*types.Document, error)
	List(ctx context.Context) ([]*types.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	docRepo repos.DocumentRepo
	bucket  BucketService
	rag     RAGService
	log     *logger.Logger
}

func NewDocumentService(docRepo repos.DocumentRepo, bucket BucketService, rag RAGService, baseLog *logger.Logger) DocumentService {
	return &documentService{
		docRepo: docRepo,
		bucket:  bucket,
		rag:     rag,
		log:     baseLog.With("service", "DocumentService"),
	}
}

func (s *documentService) requireAdmin(ctx context.Context) (uuid.UUID, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	if !requestdata.IsAdmin(ctx) {
		return uuid.Nil, apperr.ErrAccessDenied
	}
	return userID, nil
}

func (s *documentService) Upload(ctx context.Context, input UploadDocumentInput) (*types.Document, error) {
	userID, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperr.ErrValidation)
	}

	doc := &types.Document{
		ID:          uuid.New(),
		Title:       input.Title,
		ContentType: input.ContentType,
		SizeBytes:   int64(len(input.Data)),
		UploadedBy:  userID,
	}
	doc.BucketKey = fmt.Sprintf("documents/%s", doc.ID)

	if err := s.bucket.Upload(ctx, doc.BucketKey, input.ContentType, input.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrExternalService, err)
	}
	if err := s.docRepo.Create(ctx, nil, doc); err != nil {
		if delErr := s.bucket.Delete(ctx, doc.BucketKey); delErr != nil {
			s.log.Warn("Failed to clean up orphaned upload", "key", doc.BucketKey, "error", delErr)
		}
		return nil, err
	}

	if _, err := s.rag.Add(ctx, KnowledgeEntry{
		Title:   doc.Title,
		Content: doc.Title,
		Source:  s.bucket.PublicURL(doc.BucketKey),
	}); err != nil {
		s.log.Warn("Failed to index document in knowledge base", "document_id", doc.ID, "error", err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context) ([]*types.Document, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.docRepo.List(ctx, nil)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.requireAdmin(ctx); err != nil {
		return err
	}
	doc, err := s.docRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.docRepo.SoftDeleteByID(ctx, nil, doc.ID); err != nil {
		return err
	}
	if err := s.bucket.Delete(ctx, doc.BucketKey); err != nil {
		s.log.Warn("Failed to delete document object", "key", doc.BucketKey, "error", err)
	}
	return nil
}
