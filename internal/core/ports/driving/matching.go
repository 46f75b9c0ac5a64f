package driving

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// MatchingService ranks candidate vendors per line item.
type MatchingService interface {
	// MatchItems returns one ranked result per item, in item order.
	// A limit of 0 uses the configured limit.
	MatchItems(ctx context.Context, items []domain.LineItem, presets []string, limit int) ([]domain.MatchResult, error)

	// Vendors returns the eligible vendors for a category.
	// An empty category returns every eligible vendor.
	Vendors(ctx context.Context, category domain.Category) ([]domain.VendorRecord, error)
}
