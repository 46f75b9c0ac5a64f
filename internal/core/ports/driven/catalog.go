package driven

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// CatalogLoader builds the immutable reference snapshot.
// Missing sources yield an empty snapshot rather than an error.
type CatalogLoader interface {
	Load(ctx context.Context) (*domain.ReferenceSnapshot, error)
}
