package services

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/category"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/scoring"
)

// Ensure MatchingService implements the interface.
var _ driving.MatchingService = (*MatchingService)(nil)

// MatchingService ranks candidate vendors per line item.
type MatchingService struct {
	vendors    []domain.VendorRecord
	enrichment driven.VendorEnrichment
	settings   domain.MatchingSettings
}

// NewMatchingService creates a matching service over a vendor list.
// A nil enrichment uses the deterministic hash enrichment.
func NewMatchingService(vendors []domain.VendorRecord, enrichment driven.VendorEnrichment, settings domain.MatchingSettings) *MatchingService {
	if enrichment == nil {
		enrichment = scoring.HashEnrichment{}
	}
	if settings.Limit <= 0 {
		settings.Limit = domain.DefaultMatchLimit
	}
	return &MatchingService{
		vendors:    vendors,
		enrichment: enrichment,
		settings:   settings,
	}
}

// MatchItems returns one ranked result per item, in item order.
// Empty presets use the configured presets, then balanced.
func (s *MatchingService) MatchItems(ctx context.Context, items []domain.LineItem, presets []string, limit int) ([]domain.MatchResult, error) {
	if len(presets) == 0 {
		presets = s.settings.Presets
	}
	if len(presets) == 0 {
		presets = []string{scoring.PresetBalanced}
	}
	if limit <= 0 {
		limit = s.settings.Limit
	}

	results := make([]domain.MatchResult, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cat := item.Category
		if cat == "" {
			cat = category.ClassifyItem(item)
		}
		eligible := scoring.Eligible(s.vendors, cat)

		candidates := make([]domain.VendorCandidate, len(eligible))
		for i, v := range eligible {
			candidates[i] = s.enrichment.Enrich(v, item.Quantity)
		}
		top, others := scoring.Rank(candidates, item.Quantity, presets, limit)

		results = append(results, domain.MatchResult{
			Medicine:          item.Name,
			Quantity:          item.Quantity,
			Preferences:       append([]string(nil), presets...),
			TotalVendorsFound: len(candidates),
			TopVendor:         top,
			OtherVendors:      others,
		})
	}
	return results, nil
}

// Vendors returns the eligible vendors for a category.
func (s *MatchingService) Vendors(ctx context.Context, cat domain.Category) ([]domain.VendorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scoring.Eligible(s.vendors, cat), nil
}
