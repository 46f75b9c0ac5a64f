// Package authorize annotates line items with the medicine validator verdict.
package authorize

import (
	"context"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/logger"
	"github.com/custodia-labs/medrfq/internal/medicines"
)

// Name is the stage name used in configuration.
const Name = "authorize"

// Stage validates each item name against the authorized reference list.
type Stage struct {
	validator     *medicines.Validator
	minConfidence float64
	dropRejected  bool
}

// Option configures the authorize stage.
type Option func(*Stage)

// WithMinConfidence sets the confidence an item needs to be authorized.
func WithMinConfidence(minConfidence float64) Option {
	return func(s *Stage) {
		if minConfidence > 0 {
			s.minConfidence = minConfidence
		}
	}
}

// WithDropRejected removes unauthorized items from the output.
func WithDropRejected() Option {
	return func(s *Stage) {
		s.dropRejected = true
	}
}

// New creates an authorize stage. The default minimum confidence is the
// validator's threshold.
func New(validator *medicines.Validator, opts ...Option) *Stage {
	s := &Stage{
		validator:     validator,
		minConfidence: validator.Threshold(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return Name
}

// Process sets each item's Validation. Rejected items are dropped when
// configured to; otherwise every item is kept.
func (s *Stage) Process(ctx context.Context, _ *domain.RFQDocument, items []domain.LineItem) ([]domain.LineItem, error) {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		verdict := s.validator.Validate(it.Name, it.Dosage, it.Form)
		v := &domain.ItemValidation{
			Authorized: verdict.Authorized && verdict.Confidence >= s.minConfidence,
			Confidence: verdict.Confidence,
		}
		if v.Authorized {
			v.MatchedName = verdict.Match.INNName
		}
		it.Validation = v

		if !v.Authorized && s.dropRejected {
			logger.Debug("authorize: dropped item %d (%s), confidence %.2f", it.ItemNumber, it.Name, v.Confidence)
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
