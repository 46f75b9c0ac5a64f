package services

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/medicines"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService checks requested medicines against the authorized reference list.
type ValidationService struct {
	validator *medicines.Validator
}

// NewValidationService creates a validation service. A nil validator behaves
// as an empty reference list.
func NewValidationService(validator *medicines.Validator) *ValidationService {
	if validator == nil {
		validator = medicines.New(nil, 0)
	}
	return &ValidationService{validator: validator}
}

// Validate partitions queries into authorized and rejected sets.
func (s *ValidationService) Validate(ctx context.Context, queries []domain.MedicineQuery, minConfidence float64) (*domain.ValidationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.validator.Report(queries, minConfidence), nil
}

// Search returns reference entries similar to query, best first.
func (s *ValidationService) Search(ctx context.Context, query string, limit int) ([]domain.AuthorizedMedicine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.validator.Search(query, limit), nil
}

// DatabaseSize returns the number of authorized reference entries.
func (s *ValidationService) DatabaseSize() int {
	return s.validator.Size()
}
