package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// Ensure RFQStore implements the interface.
var _ driven.RFQStore = (*RFQStore)(nil)

// RFQStore is an in-memory implementation of driven.RFQStore.
// Used when the data directory cannot be opened, and in tests.
type RFQStore struct {
	mu        sync.RWMutex
	documents map[string]domain.RFQDocument
}

// NewRFQStore creates a new in-memory document store.
func NewRFQStore() *RFQStore {
	return &RFQStore{
		documents: make(map[string]domain.RFQDocument),
	}
}

// Save stores or replaces a document. The stored copy does not share
// line items with the caller.
func (s *RFQStore) Save(_ context.Context, doc *domain.RFQDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document without id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = clone(*doc)
	return nil
}

// Get retrieves a document by ID.
func (s *RFQStore) Get(_ context.Context, id string) (*domain.RFQDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc = clone(doc)
	return &doc, nil
}

// List returns summaries of all documents, newest first.
func (s *RFQStore) List(_ context.Context) ([]domain.RFQSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.RFQSummary, 0, len(s.documents))
	for _, doc := range s.documents {
		summaries = append(summaries, doc.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.ExtractedAt.Equal(b.ExtractedAt) {
			return a.ExtractedAt.After(b.ExtractedAt)
		}
		return a.ID < b.ID
	})
	return summaries, nil
}

// Delete removes a document.
func (s *RFQStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

func clone(doc domain.RFQDocument) domain.RFQDocument {
	items := make([]domain.LineItem, len(doc.LineItems))
	for i, item := range doc.LineItems {
		if item.Validation != nil {
			v := *item.Validation
			item.Validation = &v
		}
		items[i] = item
	}
	doc.LineItems = items
	return doc
}
