package driving

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// ExtractionService turns RFQ files into stored RFQ documents.
type ExtractionService interface {
	// Extract acquires and parses a raw document, runs the configured stages,
	// and persists the result. Zero line items is a valid result.
	// Acquisition failures wrap domain.ErrAcquisition.
	Extract(ctx context.Context, raw *domain.RawDocument, opts ExtractOptions) (*domain.RFQDocument, error)
}

// ExtractOptions override settings for a single extraction.
type ExtractOptions struct {
	// Mode overrides the configured extraction mode when non-empty.
	Mode domain.ExtractionMode

	// Stages overrides the configured pipeline stages when non-nil.
	Stages []string

	// DryRun skips persistence.
	DryRun bool
}
