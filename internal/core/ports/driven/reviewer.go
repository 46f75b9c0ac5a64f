package driven

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Reviewer asks an external language model to cross-check an extracted document.
// This is an optional service; when nil, review is unavailable.
//
// Implementations may include:
//   - OpenAI-compatible chat completion endpoints
type Reviewer interface {
	// Review returns the model's verdict. It never modifies doc.
	Review(ctx context.Context, doc *domain.RFQDocument) (*domain.Review, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
