// Package pipeline runs post-extraction stages over a document's line items.
package pipeline

import (
	"context"
	"fmt"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.StagePipeline = (*Pipeline)(nil)

// Pipeline chains multiple Stages and runs them in order.
type Pipeline struct {
	stages []driven.Stage
}

// NewPipeline creates a new pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...driven.Stage) *Pipeline {
	return &Pipeline{
		stages: stages,
	}
}

// Process runs the document's line items through all stages in order.
// The first stage receives the extracted items; each later stage receives
// the previous stage's output. The result is never nil.
func (p *Pipeline) Process(ctx context.Context, doc *domain.RFQDocument) ([]domain.LineItem, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	items := doc.LineItems
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		items, err = stage.Process(ctx, doc, items)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}

	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage driven.Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
