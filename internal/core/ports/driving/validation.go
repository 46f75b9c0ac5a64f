package driving

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// ValidationService checks requested medicines against the authorized reference list.
type ValidationService interface {
	// Validate partitions queries into authorized and rejected sets.
	// A minConfidence of 0 uses the configured threshold.
	Validate(ctx context.Context, queries []domain.MedicineQuery, minConfidence float64) (*domain.ValidationReport, error)

	// Search returns reference entries similar to query, best first.
	Search(ctx context.Context, query string, limit int) ([]domain.AuthorizedMedicine, error)

	// DatabaseSize returns the number of authorized reference entries.
	DatabaseSize() int
}
