package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// DocumentService manages stored RFQ documents.
type DocumentService interface {
	// List returns summaries of stored documents, newest first.
	List(ctx context.Context) ([]domain.RFQSummary, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.RFQDocument, error)

	// Export writes a document in the given format ("csv" or "json").
	// Unknown formats return domain.ErrUnknownFormat.
	Export(ctx context.Context, documentID, format string, w io.Writer) error

	// Delete removes a stored document.
	Delete(ctx context.Context, documentID string) error

	// Confirm compares extracted items against expected lines.
	// An expectedCount below 0 means no count was given.
	Confirm(ctx context.Context, documentID string, expectedCount int, expectedLines []string) (*domain.Confirmation, error)

	// Review sends the document to the configured reviewer.
	// Returns domain.ErrLLMUnavailable when no reviewer is configured.
	Review(ctx context.Context, documentID string) (*domain.Review, error)
}
