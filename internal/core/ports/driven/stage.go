package driven

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Stage processes the line items of one extracted document.
// Stages are chained in a pipeline (e.g., dedupe, classify, authorize).
type Stage interface {
	// Name returns the stage name for logging and configuration.
	Name() string

	// Process takes the current items and returns the processed items.
	Process(ctx context.Context, doc *domain.RFQDocument, items []domain.LineItem) ([]domain.LineItem, error)
}

// StagePipeline chains multiple Stages.
type StagePipeline interface {
	// Process runs the document's items through all stages in order.
	Process(ctx context.Context, doc *domain.RFQDocument) ([]domain.LineItem, error)
}
