// Package pdf acquires table rows and text from PDF files.
//
// Text runs on a page are grouped into rows by their baseline and split into
// cells where the horizontal gap between runs is wide. This recovers the
// row/column shape of simple item tables; it is not a layout analyser.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// Verify interface compliance.
var _ driven.Acquirer = (*Acquirer)(nil)

// Acquirer reads PDF documents.
type Acquirer struct {
	layout Layout
}

// New creates a PDF acquirer with the default layout tolerances.
func New() *Acquirer {
	return &Acquirer{layout: DefaultLayout()}
}

// NewWithLayout creates a PDF acquirer with custom layout tolerances.
func NewWithLayout(layout Layout) *Acquirer {
	return &Acquirer{layout: layout}
}

// SupportedMIMETypes returns the MIME types this acquirer handles.
func (a *Acquirer) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (a *Acquirer) Priority() int {
	return 50
}

// Acquire reads every page. Malformed documents return an error wrapping
// domain.ErrAcquisition; the reader's panics are recovered.
func (a *Acquirer) Acquire(ctx context.Context, raw *domain.RawDocument) (doc *domain.AcquiredDocument, err error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if len(raw.Content) == 0 {
		return nil, fmt.Errorf("%w: empty pdf", domain.ErrAcquisition)
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: malformed pdf: %v", domain.ErrAcquisition, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", domain.ErrAcquisition, err)
	}

	doc = &domain.AcquiredDocument{}
	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Pages++

		rows := a.layout.Rows(page.Content().Text, i)
		doc.Rows = append(doc.Rows, rows...)

		pageText, textErr := page.GetPlainText(nil)
		if textErr != nil || strings.TrimSpace(pageText) == "" {
			logger.Debug("page %d: no plain text, using row text", i)
			pageText = rowText(rows)
		}
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(strings.TrimRight(pageText, "\n"))
	}
	doc.Text = text.String()

	logger.Debug("pdf %s: %d pages, %d rows", raw.Filename, doc.Pages, len(doc.Rows))
	return doc, nil
}

func rowText(rows []domain.TableRow) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Join(r.Cells, " ")
	}
	return strings.Join(lines, "\n")
}
