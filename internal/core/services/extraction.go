package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/medrfq/internal/acquirers"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/lineitems"
	"github.com/custodia-labs/medrfq/internal/logger"
	"github.com/custodia-labs/medrfq/internal/pipeline"
	"github.com/custodia-labs/medrfq/internal/rfqmeta"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService turns RFQ files into stored RFQ documents.
type ExtractionService struct {
	acquirers driven.AcquirerRegistry
	extractor *lineitems.Extractor
	stages    *pipeline.Registry
	store     driven.RFQStore
	pipeline  domain.PipelineSettings

	now   func() time.Time
	newID func() string
}

// NewExtractionService creates a new extraction service.
// stages and store may be nil: items are then stored as extracted, or not stored.
func NewExtractionService(
	acquirerRegistry driven.AcquirerRegistry,
	extractor *lineitems.Extractor,
	stages *pipeline.Registry,
	store driven.RFQStore,
	pipelineSettings domain.PipelineSettings,
) *ExtractionService {
	if extractor == nil {
		extractor = lineitems.New(lineitems.DefaultOptions())
	}
	return &ExtractionService{
		acquirers: acquirerRegistry,
		extractor: extractor,
		stages:    stages,
		store:     store,
		pipeline:  pipelineSettings,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Extract acquires and parses a raw document, runs the configured stages,
// and persists the result.
func (s *ExtractionService) Extract(ctx context.Context, raw *domain.RawDocument, opts driving.ExtractOptions) (*domain.RFQDocument, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if s.acquirers == nil {
		return nil, fmt.Errorf("%w: no acquirers configured", domain.ErrUnsupportedType)
	}
	if raw.MIMEType == "" {
		raw.MIMEType = acquirers.DetectMIMEType(raw.Filename)
	}

	logger.Section("Acquire " + raw.Filename)
	acquired, err := s.acquirers.Acquire(ctx, raw)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = s.extractor.Options().Mode
	}
	res := s.extractor.ExtractMode(acquired, mode)

	doc := &domain.RFQDocument{
		ID:          s.newID(),
		Filename:    raw.Filename,
		Mode:        res.Mode,
		Pages:       acquired.Pages,
		LineItems:   res.Items,
		ExtractedAt: s.now().UTC(),
	}
	rfqmeta.Parse(fullText(acquired)).Apply(doc)

	if err := s.runStages(ctx, doc, opts.Stages); err != nil {
		return nil, err
	}

	if opts.DryRun || s.store == nil {
		logger.Debug("not persisting %s", doc.ID)
		return doc, nil
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	logger.Info("stored %s as %s (%d line items)", raw.Filename, doc.ID, len(doc.LineItems))
	return doc, nil
}

func (s *ExtractionService) runStages(ctx context.Context, doc *domain.RFQDocument, override []string) error {
	names := s.pipeline.Stages
	if override != nil {
		names = override
	}
	if len(names) == 0 || s.stages == nil {
		return nil
	}

	p, err := s.stages.BuildPipeline(names, s.pipeline.StageConfig)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	logger.Debug("running stages: %s", strings.Join(p.Names(), ", "))

	items, err := p.Process(ctx, doc)
	if err != nil {
		return err
	}
	doc.LineItems = items
	return nil
}

// fullText is the text RFQ-level fields are searched in.
func fullText(doc *domain.AcquiredDocument) string {
	if doc.Text != "" {
		return doc.Text
	}
	return strings.Join(doc.Lines(), "\n")
}
