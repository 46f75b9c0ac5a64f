// Package dedupe collapses exact duplicate line items.
package dedupe

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// Name is the stage name used in configuration.
const Name = "dedupe"

// Stage drops line items identical to an earlier item, keeping the first.
// Items that share an item number but differ in any field are kept.
type Stage struct{}

// New creates a dedupe stage.
func New() *Stage {
	return &Stage{}
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return Name
}

// Process removes exact duplicates, preserving order.
func (s *Stage) Process(_ context.Context, _ *domain.RFQDocument, items []domain.LineItem) ([]domain.LineItem, error) {
	type key struct {
		number                          int
		name, dosage, form, unit, brand string
		quantity                        int
		generic                         bool
	}

	seen := make(map[key]struct{}, len(items))
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		k := key{it.ItemNumber, it.Name, it.Dosage, it.Form, it.UnitOfIssue, it.BrandName, it.Quantity, it.GenericAllowed}
		if _, dup := seen[k]; dup {
			logger.Debug("dedupe: dropped duplicate item %d (%s)", it.ItemNumber, it.Name)
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}
