package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/medrfq/internal/confirm"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/export"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages stored RFQ documents.
type DocumentService struct {
	store    driven.RFQStore
	reviewer driven.Reviewer
}

// NewDocumentService creates a new document service. reviewer may be nil.
func NewDocumentService(store driven.RFQStore, reviewer driven.Reviewer) *DocumentService {
	return &DocumentService{
		store:    store,
		reviewer: reviewer,
	}
}

// List returns summaries of stored documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.RFQSummary, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.List(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.RFQDocument, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.Get(ctx, documentID)
}

// Export writes a document in the given format.
func (s *DocumentService) Export(ctx context.Context, documentID, format string, w io.Writer) error {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return err
	}
	return export.Write(w, format, doc)
}

// Delete removes a stored document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	return s.store.Delete(ctx, documentID)
}

// Confirm compares extracted items against expected lines.
func (s *DocumentService) Confirm(ctx context.Context, documentID string, expectedCount int, expectedLines []string) (*domain.Confirmation, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return confirm.Check(doc.ID, doc.LineItems, expectedCount, expectedLines), nil
}

// Review sends the document to the configured reviewer.
func (s *DocumentService) Review(ctx context.Context, documentID string) (*domain.Review, error) {
	if s.reviewer == nil {
		return nil, domain.ErrLLMUnavailable
	}
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	review, err := s.reviewer.Review(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("review with %s: %w", s.reviewer.ModelName(), err)
	}
	return review, nil
}
