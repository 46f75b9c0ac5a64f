package mcp

import (
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Extraction turns RFQ files into documents.
	Extraction driving.ExtractionService

	// Validation checks medicines against the authorized list.
	Validation driving.ValidationService

	// Matching ranks vendors per line item.
	Matching driving.MatchingService

	// Document manages stored RFQ documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	// Validation, Matching and Document are optional; their tools report
	// an error when called without them.
	return nil
}
