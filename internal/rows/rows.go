// Package rows cleans raw cells and lines and classifies them before extraction.
//
// Cleaning is NFKC normalisation, newline collapse and whitespace trimming.
// Classification drops boilerplate (signature blocks, price labels, page
// markers) and column-header rows, which are structural metadata rather than data.
package rows

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind is the classification of a row.
type Kind int

// Row kinds.
const (
	KindData Kind = iota
	KindBlank
	KindNoise
	KindHeader
)

// String returns the kind name used in debug logs.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindNoise:
		return "noise"
	case KindHeader:
		return "header"
	default:
		return "data"
	}
}

// noiseKeywords are case-insensitive substrings that mark a boilerplate row.
var noiseKeywords = []string{
	"click or tap",
	"rfq reference",
	"date:",
	"signature",
	"authorized by",
	"approved by",
	"section:",
	"annex",
	"page ",
	"total price",
	"unit price",
	"currency",
	"delivery term",
	"lead time",
	"validity",
	"payment terms",
	"country of origin",
}

// headerTokens are column-header labels found in item tables.
var headerTokens = []string{
	"item no",
	"nonproprietary",
	"dosage form",
	"unit of issue",
	"international",
	"generic name",
	"brand name",
	"strength per",
	"total qty",
}

// CleanCell normalises a raw cell: NFKC, newlines collapsed to spaces,
// runs of whitespace collapsed, and the result trimmed.
func CleanCell(cell string) string {
	if cell == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFKC.String(cell)), " ")
}

// CleanCells cleans every cell and drops the empty ones.
// Returns nil when nothing remains.
func CleanCells(cells []string) []string {
	var out []string
	for _, c := range cells {
		if cleaned := CleanCell(c); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// Join returns the cleaned, space-joined text of a row.
func Join(cells []string) string {
	return strings.Join(CleanCells(cells), " ")
}

// IsNoise reports whether text contains a boilerplate phrase.
func IsNoise(text string) bool {
	t := strings.ToLower(text)
	for _, k := range noiseKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// IsHeader reports whether text is a column-header row: it names both a
// description and a quantity column, or contains two or more header tokens.
func IsHeader(text string) bool {
	t := strings.ToLower(text)
	if strings.Contains(t, "description") && strings.Contains(t, "qty") {
		return true
	}
	hits := 0
	for _, tok := range headerTokens {
		if strings.Contains(t, tok) {
			hits++
		}
	}
	return hits >= 2
}

// Classify cleans text and returns its kind.
func Classify(text string) Kind {
	cleaned := CleanCell(text)
	switch {
	case cleaned == "":
		return KindBlank
	case IsNoise(cleaned):
		return KindNoise
	case IsHeader(cleaned):
		return KindHeader
	default:
		return KindData
	}
}
