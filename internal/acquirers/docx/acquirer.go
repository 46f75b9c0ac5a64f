// Package docx acquires RFQ content from Word (OOXML) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// MIMEType is the OOXML word-processing content type.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const documentPart = "word/document.xml"

// Ensure Acquirer implements the interface.
var _ driven.Acquirer = (*Acquirer)(nil)

// Acquirer reads Word tables as rows and body paragraphs as text lines.
type Acquirer struct{}

// New creates a new DOCX acquirer.
func New() *Acquirer {
	return &Acquirer{}
}

// SupportedMIMETypes returns the MIME types this acquirer handles.
func (a *Acquirer) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (a *Acquirer) Priority() int {
	return 50
}

// Acquire unpacks the document body. Every table row becomes a row with
// one cell per table cell; every paragraph outside a table becomes a
// single-cell row. Word documents carry no page layout, so everything is page 1.
func (a *Acquirer) Acquire(ctx context.Context, raw *domain.RawDocument) (*domain.AcquiredDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", domain.ErrAcquisition, err)
	}

	body, err := readPart(reader, documentPart)
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", domain.ErrAcquisition, err)
	}

	rows, err := parseBody(body)
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", domain.ErrAcquisition, err)
	}

	doc := &domain.AcquiredDocument{Rows: rows}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row.Cells, " ")
	}
	doc.Text = strings.Join(lines, "\n")
	if len(rows) > 0 {
		doc.Pages = 1
	}
	return doc, nil
}

func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing %s", name)
}

// bodyParser walks word/document.xml tokens. Nested tables are flattened
// into the enclosing cell.
type bodyParser struct {
	rows       []domain.TableRow
	tableDepth int
	row        []string
	cell       []string
	para       strings.Builder
}

func parseBody(content []byte) ([]domain.TableRow, error) {
	p := &bodyParser{}
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return p.rows, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(dec, t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			p.end(t.Name.Local)
		}
	}
}

func (p *bodyParser) start(dec *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "tbl":
		p.tableDepth++
	case "tr":
		if p.tableDepth == 1 {
			p.row = nil
		}
	case "tc":
		if p.tableDepth == 1 {
			p.cell = nil
		}
	case "p":
		p.para.Reset()
	case "t":
		var text string
		if err := dec.DecodeElement(&text, &el); err != nil {
			return err
		}
		p.para.WriteString(text)
	case "tab", "br", "cr":
		p.para.WriteByte(' ')
	}
	return nil
}

func (p *bodyParser) end(name string) {
	switch name {
	case "p":
		text := strings.Join(strings.Fields(p.para.String()), " ")
		p.para.Reset()
		if p.tableDepth > 0 {
			if text != "" {
				p.cell = append(p.cell, text)
			}
			return
		}
		if text != "" {
			p.rows = append(p.rows, domain.TableRow{Page: 1, Cells: []string{text}})
		}
	case "tc":
		if p.tableDepth == 1 {
			p.row = append(p.row, strings.Join(p.cell, " "))
			p.cell = nil
		}
	case "tr":
		if p.tableDepth == 1 {
			if hasText(p.row) {
				p.rows = append(p.rows, domain.TableRow{Page: 1, Cells: p.row})
			}
			p.row = nil
		}
	case "tbl":
		if p.tableDepth > 0 {
			p.tableDepth--
		}
	}
}

func hasText(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return true
		}
	}
	return false
}
