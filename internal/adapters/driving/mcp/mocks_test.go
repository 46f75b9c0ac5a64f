package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
)

// mockExtractionService is a mock implementation of driving.ExtractionService.
type mockExtractionService struct {
	document *domain.RFQDocument
	err      error

	gotRaw  *domain.RawDocument
	gotOpts driving.ExtractOptions
}

func (m *mockExtractionService) Extract(
	_ context.Context,
	raw *domain.RawDocument,
	opts driving.ExtractOptions,
) (*domain.RFQDocument, error) {
	m.gotRaw = raw
	m.gotOpts = opts
	return m.document, m.err
}

// mockValidationService is a mock implementation of driving.ValidationService.
type mockValidationService struct {
	report *domain.ValidationReport
	err    error

	gotQueries []domain.MedicineQuery
	gotMinConf float64
}

func (m *mockValidationService) Validate(
	_ context.Context,
	queries []domain.MedicineQuery,
	minConfidence float64,
) (*domain.ValidationReport, error) {
	m.gotQueries = queries
	m.gotMinConf = minConfidence
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockValidationService) Search(_ context.Context, _ string, _ int) ([]domain.AuthorizedMedicine, error) {
	return nil, m.err
}

func (m *mockValidationService) DatabaseSize() int {
	return 0
}

// mockMatchingService is a mock implementation of driving.MatchingService.
type mockMatchingService struct {
	results []domain.MatchResult
	err     error

	gotItems   []domain.LineItem
	gotPresets []string
	gotLimit   int
}

func (m *mockMatchingService) MatchItems(
	_ context.Context,
	items []domain.LineItem,
	presets []string,
	limit int,
) ([]domain.MatchResult, error) {
	m.gotItems = items
	m.gotPresets = presets
	m.gotLimit = limit
	return m.results, m.err
}

func (m *mockMatchingService) Vendors(_ context.Context, _ domain.Category) ([]domain.VendorRecord, error) {
	return nil, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	summaries []domain.RFQSummary
	document  *domain.RFQDocument
	exported  string
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.RFQSummary, error) {
	return m.summaries, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.RFQDocument, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Export(_ context.Context, _, _ string, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.exported)
	return err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Confirm(_ context.Context, _ string, _ int, _ []string) (*domain.Confirmation, error) {
	return nil, m.err
}

func (m *mockDocumentService) Review(_ context.Context, _ string) (*domain.Review, error) {
	return nil, m.err
}
