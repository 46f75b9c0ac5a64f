package lineitems

import (
	"regexp"

	"github.com/custodia-labs/medrfq/internal/rows"
)

// Section is the half-open line range [Start, End) holding the item table.
type Section struct {
	Start int
	End   int

	// Marker is the start marker line, or -1 when none was found.
	Marker int

	// Corroborated is true when the start marker had column-header context nearby.
	Corroborated bool
}

var (
	startMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)schedule\s+of\s+requirements`),
		regexp.MustCompile(`(?i)technical\s+specifications?`),
		regexp.MustCompile(`(?i)\bitem\s*no\b`),
		regexp.MustCompile(`(?i)international.{0,40}non-?\s*proprietary\s+name`),
		regexp.MustCompile(`(?i)\bnon-?\s*proprietary\s+name`),
	}

	endMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^annex\b`),
		regexp.MustCompile(`(?i)quotation\s+submission\s+form`),
		regexp.MustCompile(`(?i)vendor\s+information\s+sheet`),
		regexp.MustCompile(`(?i)bidder(?:'|’)?s?\s+declaration`),
		regexp.MustCompile(`(?i)technical\s+and\s+financial\s+offer`),
	}

	columnTokenRe = regexp.MustCompile(`(?i)\b(?:dosage|strength|form)\b`)
)

// FindSection bounds the item table within lines. The start marker with a
// column-header token (dosage, strength, form) within lookahead lines is
// preferred over the first bare marker hit. Without any marker the section
// starts at the first line. The end is the first annex, form or declaration
// marker after the start, or the end of input.
func FindSection(lines []string, lookahead int) Section {
	if lookahead < 1 {
		lookahead = 1
	}

	cleaned := make([]string, len(lines))
	for i, l := range lines {
		cleaned[i] = rows.CleanCell(l)
	}

	sec := Section{Marker: -1, End: len(lines)}
	for i, l := range cleaned {
		if !matchesAny(startMarkers, l) {
			continue
		}
		if hasColumnContext(cleaned, i, lookahead) {
			sec.Marker = i
			sec.Corroborated = true
			break
		}
		if sec.Marker < 0 {
			sec.Marker = i
		}
	}
	if sec.Marker >= 0 {
		sec.Start = sec.Marker + 1
	}

	for i := sec.Start; i < len(cleaned); i++ {
		if IsEndMarker(cleaned[i]) {
			sec.End = i
			break
		}
	}
	return sec
}

// IsEndMarker reports whether a cleaned line opens an annex, form or declaration.
func IsEndMarker(line string) bool {
	return matchesAny(endMarkers, line)
}

// hasColumnContext looks for a column token from the marker line onwards,
// stopping early at an end marker so table-of-contents entries do not qualify.
func hasColumnContext(lines []string, at, lookahead int) bool {
	end := at + lookahead
	if end > len(lines) {
		end = len(lines)
	}
	for j := at; j < end; j++ {
		if j > at && IsEndMarker(lines[j]) {
			return false
		}
		if columnTokenRe.MatchString(lines[j]) {
			return true
		}
	}
	return false
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
