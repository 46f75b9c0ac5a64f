package domain

import "strings"

// RawDocument represents opaque bytes of an RFQ file before acquisition.
type RawDocument struct {
	// Filename is the original file name, used for display and MIME detection.
	Filename string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// TableRow is one row of cells produced by acquisition.
type TableRow struct {
	// Page is the 1-based page the row was found on.
	Page int

	// Cells are the ordered cell strings, left to right.
	Cells []string
}

// AcquiredDocument is the output of acquisition.
// Either Rows, Text, or both may be populated; the extractor accepts either shape.
type AcquiredDocument struct {
	// Rows are table rows grouped by page, in reading order.
	Rows []TableRow

	// Text is a flat text stream with embedded line breaks.
	Text string

	// Pages is the number of pages read.
	Pages int
}

// Lines returns the text stream split into lines. When only rows were acquired,
// each row's cells are joined with single spaces.
func (d *AcquiredDocument) Lines() []string {
	if d == nil {
		return nil
	}
	if d.Text != "" {
		return splitLines(d.Text)
	}
	lines := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		lines = append(lines, strings.Join(row.Cells, " "))
	}
	return lines
}

// Structured reports whether the rows carry real column structure:
// at least half of the non-empty rows have two or more cells.
func (d *AcquiredDocument) Structured() bool {
	if d == nil || len(d.Rows) == 0 {
		return false
	}
	var total, multi int
	for _, row := range d.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		total++
		if len(row.Cells) > 1 {
			multi++
		}
	}
	return total > 0 && multi*2 >= total
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
