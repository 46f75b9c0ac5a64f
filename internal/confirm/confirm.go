// Package confirm checks extracted line items against lines a reviewer expects.
//
// Both sides are reduced to a normalized comparison string before an exact
// comparison: lowercase, punctuation other than '/' and '%' dropped,
// whitespace collapsed and common unit words shortened.
package confirm

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Mismatch reasons.
const (
	ReasonCountMismatch = "count_mismatch"
	ReasonLineMismatch  = "line_mismatch"
)

// unitWords are applied in order; "tablets" must precede "tablet".
var unitWords = strings.NewReplacer(
	"millilitre", "ml",
	"milliliter", "ml",
	"milligram", "mg",
	"microgram", "mcg",
	"tablets", "tab",
	"tablet", "tab",
	"boxes", "box",
)

// NormalizeText reduces s to its comparison form.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "\u00a0", " "))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '/' || r == '%' {
			b.WriteRune(r)
		}
	}
	return unitWords.Replace(strings.Join(strings.Fields(b.String()), " "))
}

// ItemText is the comparison form of an item: its non-empty name, dosage,
// form and unit joined and normalized.
func ItemText(item domain.LineItem) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{item.Name, item.Dosage, item.Form, item.UnitOfIssue} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return NormalizeText(strings.Join(parts, " | "))
}

// Check compares items with the expectation. expectedCount below 0 and an
// empty expectedLines each mean that part was not given.
func Check(documentID string, items []domain.LineItem, expectedCount int, expectedLines []string) *domain.Confirmation {
	res := &domain.Confirmation{
		DocumentID:    documentID,
		Confirmed:     true,
		ExpectedCount: expectedCount,
		FoundCount:    len(items),
		Mismatches:    []domain.Mismatch{},
	}

	if expectedCount >= 0 && expectedCount != len(items) {
		res.Confirmed = false
	}
	if len(expectedLines) == 0 {
		return res
	}
	if expectedCount < 0 {
		res.ExpectedCount = len(expectedLines)
	}

	if len(expectedLines) != len(items) {
		res.Confirmed = false
		res.Mismatches = append(res.Mismatches, domain.Mismatch{
			Reason:   ReasonCountMismatch,
			Index:    -1,
			Expected: strconv.Itoa(len(expectedLines)),
			Found:    strconv.Itoa(len(items)),
		})
	}

	for i, item := range items {
		var expected string
		if i < len(expectedLines) {
			expected = NormalizeText(expectedLines[i])
		}
		found := ItemText(item)
		if expected == found {
			continue
		}
		res.Confirmed = false
		res.Mismatches = append(res.Mismatches, domain.Mismatch{
			Reason:     ReasonLineMismatch,
			Index:      i,
			ItemNumber: item.ItemNumber,
			Expected:   expected,
			Found:      found,
		})
	}
	return res
}
