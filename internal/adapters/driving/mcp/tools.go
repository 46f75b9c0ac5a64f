package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/medicines"
)

// ExtractInput is the input schema for the extract_line_items tool.
type ExtractInput struct {
	Path   string `json:"path" jsonschema:"absolute path of the RFQ file (pdf, txt or csv)"`
	Mode   string `json:"mode,omitempty" jsonschema:"extraction mode: auto, text or table (default from settings)"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"extract without storing the document"`
}

// ExtractOutput is the output schema for the extract_line_items tool.
type ExtractOutput struct {
	DocumentID string            `json:"document_id"`
	Filename   string            `json:"filename"`
	Mode       string            `json:"mode"`
	Count      int               `json:"total_line_items"`
	RFQID      string            `json:"rfq_id,omitempty"`
	LineItems  []domain.LineItem `json:"line_items"`
}

// ValidateInput is the input schema for the validate_medicines tool.
type ValidateInput struct {
	Medicines     []string `json:"medicines,omitempty" jsonschema:"medicine names to validate"`
	DocumentID    string   `json:"document_id,omitempty" jsonschema:"validate the line items of a stored document instead"`
	MinConfidence float64  `json:"min_confidence,omitempty" jsonschema:"minimum match confidence in (0, 1] (default from settings)"`
}

// RankItem is one medicine to rank vendors for.
type RankItem struct {
	Name     string `json:"name" jsonschema:"medicine or product name"`
	Quantity int    `json:"quantity,omitempty" jsonschema:"requested quantity"`
	Form     string `json:"form,omitempty" jsonschema:"pharmaceutical form, used for the product category"`
}

// RankInput is the input schema for the rank_vendors tool.
type RankInput struct {
	Items      []RankItem `json:"items,omitempty" jsonschema:"medicines to rank vendors for"`
	DocumentID string     `json:"document_id,omitempty" jsonschema:"rank vendors for every line item of a stored document instead"`
	Presets    []string   `json:"presets,omitempty" jsonschema:"weighting presets: time, quality, quantity, resource-saving, balanced"`
	Limit      int        `json:"limit,omitempty" jsonschema:"vendors per medicine including the top vendor (default from settings)"`
}

// RankOutput is the output schema for the rank_vendors tool.
type RankOutput struct {
	Results []domain.MatchResult `json:"results"`
	Count   int                  `json:"count"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []domain.RFQSummary `json:"documents"`
	Count     int                 `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_line_items",
		Description: "Extract procurement line items and RFQ details from a local RFQ file",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_medicines",
		Description: "Check medicine names against the authorized medicines list",
	}, s.handleValidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rank_vendors",
		Description: "Rank candidate vendors per medicine using weighting presets",
	}, s.handleRank)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List stored RFQ documents, newest first",
	}, s.handleListDocuments)
}

// handleExtract handles the extract_line_items tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if input.Path == "" {
		return nil, ExtractOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	mode, err := domain.ParseExtractionMode(input.Mode)
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, input.Mode)
	}

	content, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	opts := driving.ExtractOptions{DryRun: input.DryRun}
	if input.Mode != "" {
		opts.Mode = mode
	}
	doc, err := s.ports.Extraction.Extract(ctx, &domain.RawDocument{
		Filename: filepath.Base(input.Path),
		Content:  content,
	}, opts)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	return nil, ExtractOutput{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		Mode:       string(doc.Mode),
		Count:      len(doc.LineItems),
		RFQID:      doc.Metadata.RFQID,
		LineItems:  doc.LineItems,
	}, nil
}

// handleValidate handles the validate_medicines tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, domain.ValidationReport, error) {
	if s.ports.Validation == nil {
		return nil, domain.ValidationReport{}, errors.New("mcp: validation service is not configured")
	}

	var queries []domain.MedicineQuery
	if input.DocumentID != "" {
		items, err := s.documentItems(ctx, input.DocumentID)
		if err != nil {
			return nil, domain.ValidationReport{}, err
		}
		queries = medicines.QueriesFromItems(items)
	} else {
		for i, name := range input.Medicines {
			queries = append(queries, domain.MedicineQuery{ItemNumber: i + 1, Name: name})
		}
	}

	report, err := s.ports.Validation.Validate(ctx, queries, input.MinConfidence)
	if err != nil {
		return nil, domain.ValidationReport{}, err
	}
	return nil, *report, nil
}

// handleRank handles the rank_vendors tool invocation.
func (s *Server) handleRank(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RankInput,
) (*mcp.CallToolResult, RankOutput, error) {
	if s.ports.Matching == nil {
		return nil, RankOutput{}, errors.New("mcp: matching service is not configured")
	}

	var items []domain.LineItem
	if input.DocumentID != "" {
		var err error
		if items, err = s.documentItems(ctx, input.DocumentID); err != nil {
			return nil, RankOutput{}, err
		}
	} else {
		for i, it := range input.Items {
			items = append(items, domain.LineItem{
				ItemNumber: i + 1,
				Name:       it.Name,
				Form:       it.Form,
				Quantity:   it.Quantity,
			})
		}
	}

	results, err := s.ports.Matching.MatchItems(ctx, items, input.Presets, input.Limit)
	if err != nil {
		return nil, RankOutput{}, err
	}
	return nil, RankOutput{Results: results, Count: len(results)}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Document == nil {
		return nil, ListDocumentsOutput{}, ErrMissingDocumentService
	}

	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	return nil, ListDocumentsOutput{Documents: docs, Count: len(docs)}, nil
}

func (s *Server) documentItems(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	if s.ports.Document == nil {
		return nil, ErrMissingDocumentService
	}
	doc, err := s.ports.Document.Get(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("getting document %s: %w", documentID, err)
	}
	return doc.LineItems, nil
}
