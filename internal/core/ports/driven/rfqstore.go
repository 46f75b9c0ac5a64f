package driven

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// RFQStore persists extracted RFQ documents and their line items.
// Backed by SQLite.
type RFQStore interface {
	// Save stores or replaces a document with its line items.
	Save(ctx context.Context, doc *domain.RFQDocument) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.RFQDocument, error)

	// List returns summaries of all stored documents, newest first.
	List(ctx context.Context) ([]domain.RFQSummary, error)

	// Delete removes a document and its line items.
	Delete(ctx context.Context, id string) error
}
