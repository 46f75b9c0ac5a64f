package driven

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Acquirer turns a raw document into table rows and/or a text stream.
// Each acquirer handles specific MIME types (e.g., PDF, CSV).
type Acquirer interface {
	// SupportedMIMETypes returns the MIME types this acquirer handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Structured acquirers should return 50-89.
	// Fallback acquirers should return 1-9.
	Priority() int

	// Acquire reads the raw bytes. Unreadable input returns an error
	// wrapping domain.ErrAcquisition.
	Acquire(ctx context.Context, raw *domain.RawDocument) (*domain.AcquiredDocument, error)
}

// AcquirerRegistry selects the appropriate acquirer for a document.
type AcquirerRegistry interface {
	// Acquire reads a raw document using the best matching acquirer.
	Acquire(ctx context.Context, raw *domain.RawDocument) (*domain.AcquiredDocument, error)

	// Register adds an acquirer to the registry.
	Register(acquirer Acquirer)

	// SupportedMIMETypes returns all MIME types that can be acquired.
	SupportedMIMETypes() []string
}
