// Package classify tags line items with a coarse product category.
package classify

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/category"
	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Name is the stage name used in configuration.
const Name = "classify"

// Stage sets each item's category from its name, dosage and form.
type Stage struct {
	overwrite bool
}

// Option configures the classify stage.
type Option func(*Stage)

// WithOverwrite replaces categories that are already set.
func WithOverwrite(overwrite bool) Option {
	return func(s *Stage) {
		s.overwrite = overwrite
	}
}

// New creates a classify stage.
func New(opts ...Option) *Stage {
	s := &Stage{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return Name
}

// Process classifies items. Existing categories are kept unless overwrite is set.
func (s *Stage) Process(_ context.Context, _ *domain.RFQDocument, items []domain.LineItem) ([]domain.LineItem, error) {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		if it.Category == "" || s.overwrite {
			it.Category = category.ClassifyItem(it)
		}
		out[i] = it
	}
	return out, nil
}
