// Package mcp provides an MCP (Model Context Protocol) server adapter for medrfq.
// It lets AI assistants extract RFQ line items, validate medicines and rank vendors.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")

// ErrMissingDocumentService is returned by tools that need stored documents
// when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is not configured")
