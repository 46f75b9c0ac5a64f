// Package plaintext acquires RFQ content from text and CSV files.
package plaintext

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// Ensure acquirers implement the interface.
var (
	_ driven.Acquirer = (*Acquirer)(nil)
	_ driven.Acquirer = (*CSVAcquirer)(nil)
)

// Acquirer handles plain text. Form feeds are treated as page breaks.
type Acquirer struct{}

// New creates a plain text acquirer.
func New() *Acquirer {
	return &Acquirer{}
}

// SupportedMIMETypes returns the MIME types this acquirer handles.
func (a *Acquirer) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv"}
}

// Priority returns the selection priority.
func (a *Acquirer) Priority() int {
	return 5 // Fallback acquirer
}

// Acquire returns the content as a text stream.
func (a *Acquirer) Acquire(_ context.Context, raw *domain.RawDocument) (*domain.AcquiredDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")
	pages := strings.Count(text, "\f") + 1
	if strings.TrimSpace(text) == "" {
		pages = 0
	}
	return &domain.AcquiredDocument{
		Text:  strings.ReplaceAll(text, "\f", "\n"),
		Pages: pages,
	}, nil
}

// CSVAcquirer reads CSV files as table rows.
type CSVAcquirer struct{}

// NewCSV creates a CSV acquirer.
func NewCSV() *CSVAcquirer {
	return &CSVAcquirer{}
}

// SupportedMIMETypes returns the MIME types this acquirer handles.
func (a *CSVAcquirer) SupportedMIMETypes() []string {
	return []string{"text/csv"}
}

// Priority returns the selection priority.
func (a *CSVAcquirer) Priority() int {
	return 60
}

// Acquire parses every record into a row on page 1. The text stream holds the
// same rows joined with spaces so text mode can run as a fallback.
func (a *CSVAcquirer) Acquire(ctx context.Context, raw *domain.RawDocument) (*domain.AcquiredDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r := csv.NewReader(bytes.NewReader(raw.Content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	doc := &domain.AcquiredDocument{}
	var lines []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv: %v", domain.ErrAcquisition, err)
		}
		doc.Rows = append(doc.Rows, domain.TableRow{Page: 1, Cells: record})
		lines = append(lines, strings.Join(record, " "))
	}

	if len(doc.Rows) > 0 {
		doc.Pages = 1
	}
	doc.Text = strings.Join(lines, "\n")
	return doc, nil
}
