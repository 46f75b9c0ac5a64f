package lineitems

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Match is a field value found in an item buffer, with its byte span.
type Match struct {
	// Rule is the name of the rule that produced the match.
	Rule string

	// Value is the extracted field value.
	Value string

	// Start and End delimit the matched text in the buffer.
	Start int
	End   int
}

// Rule is a named, pure field extractor. Rules for one field are tried in
// order and the first match wins.
type Rule struct {
	Name string
	Find func(text string) (Match, bool)
}

// Apply runs rules in order and returns the first match.
func Apply(rules []Rule, text string) (Match, bool) {
	for _, r := range rules {
		if m, ok := r.Find(text); ok {
			m.Rule = r.Name
			return m, true
		}
	}
	return Match{}, false
}

var (
	labelledQuantityRe = regexp.MustCompile(`(?i)\b(?:qty|quantity|total|req)\b[:.\s]+(\d{1,3}(?:,\d{3})+|\d+)\b`)
	trailingQuantityRe = regexp.MustCompile(`(?:^|\s)(\d{1,3}(?:,\d{3})+|\d{1,7})\s*$`)

	dosageRe = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:(?:mcg|µg|μg|mg|ml|iu|units?|g|u)\b|%)` +
		`(?:\s*/\s*(?:\d+(?:[.,]\d+)?\s*)?(?:mcg|µg|μg|mg|ml|iu|g|u)\b)?`)

	unitRe = regexp.MustCompile(`(?i)\b(box|bottle|vial|ampoule|ampule|tablet|injection|inhaler|pen|tube|patch|sachet|spray|solution|pack)\b`)

	orAnyOtherRe  = regexp.MustCompile(`(?i)\s*\bor\s+any\s+other\b`)
	capitalRunRe  = regexp.MustCompile(`\b[A-Z][A-Za-z-]*(?:[ \t]+[A-Z][A-Za-z-]*)*`)
	genericHintRe = regexp.MustCompile(`(?i)alternative|generic`)
)

// forms is the ordered form vocabulary. The first pattern that matches wins.
var forms = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Tablet", regexp.MustCompile(`(?i)\btab(?:let)?s?\b`)},
	{"Capsule", regexp.MustCompile(`(?i)\bcap(?:sule)?s?\b`)},
	{"Syrup", regexp.MustCompile(`(?i)\bsyrups?\b`)},
	{"Suspension", regexp.MustCompile(`(?i)\bsuspensions?\b`)},
	{"Injection", regexp.MustCompile(`(?i)\binj(?:ection|ectable)?s?\b`)},
	{"Ampoule", regexp.MustCompile(`(?i)\bamp(?:oule|ule)?s?\b`)},
	{"Vial", regexp.MustCompile(`(?i)\bvials?\b`)},
	{"Inhaler", regexp.MustCompile(`(?i)\binhalers?\b`)},
	{"Solution", regexp.MustCompile(`(?i)\bsolutions?\b`)},
	{"Cream", regexp.MustCompile(`(?i)\bcreams?\b`)},
	{"Gel", regexp.MustCompile(`(?i)\bgels?\b`)},
	{"Patch", regexp.MustCompile(`(?i)\bpatch(?:es)?\b`)},
	{"Suppository", regexp.MustCompile(`(?i)\bsuppositor(?:y|ies)\b`)},
	{"Powder", regexp.MustCompile(`(?i)\bpowders?\b`)},
	{"Spray", regexp.MustCompile(`(?i)\bsprays?\b`)},
}

// brandStopwords are capitalised words that describe packaging, form or
// pharmacopoeia rather than a brand.
var brandStopwords = map[string]bool{
	"box": true, "bottle": true, "vial": true, "ampoule": true, "ampule": true,
	"tablet": true, "tablets": true, "tab": true, "capsule": true, "capsules": true, "cap": true,
	"injection": true, "inj": true, "inhaler": true, "pen": true, "tube": true,
	"patch": true, "sachet": true, "spray": true, "solution": true, "pack": true,
	"syrup": true, "suspension": true, "cream": true, "gel": true, "suppository": true,
	"powder": true, "amp": true, "iu": true, "mg": true, "ml": true, "mcg": true,
	"bp": true, "usp": true, "ep": true, "qty": true, "quantity": true, "total": true,
	"generic": true, "allowed": true, "alternative": true, "or": true, "and": true,
}

// QuantityRules find the requested quantity: an explicit label first, then a
// trailing standalone integer.
var QuantityRules = []Rule{
	{Name: "labelled-quantity", Find: labelledQuantity},
	{Name: "trailing-integer", Find: trailingQuantity},
}

// DosageRules find the strength expression.
var DosageRules = []Rule{
	{Name: "strength", Find: findDosage},
}

// UnitRules find the unit of issue.
var UnitRules = []Rule{
	{Name: "unit-vocabulary", Find: findUnit},
}

// FormRules find the pharmaceutical form.
var FormRules = []Rule{
	{Name: "form-vocabulary", Find: findForm},
}

func labelledQuantity(text string) (Match, bool) {
	loc := labelledQuantityRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	n, ok := parseQuantity(text[loc[2]:loc[3]])
	if !ok || !plausibleQuantity(n, text) {
		return Match{}, false
	}
	return Match{Value: strconv.Itoa(n), Start: loc[0], End: loc[1]}, true
}

func trailingQuantity(text string) (Match, bool) {
	loc := trailingQuantityRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	n, ok := parseQuantity(text[loc[2]:loc[3]])
	if !ok || !plausibleQuantity(n, text) {
		return Match{}, false
	}
	return Match{Value: strconv.Itoa(n), Start: loc[2], End: loc[1]}, true
}

// parseQuantity parses an integer cell, ignoring thousands separators.
func parseQuantity(s string) (int, bool) {
	s = strings.NewReplacer(",", "", ".", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// plausibleQuantity rejects values at or above the ceiling, and year-like
// values unless the surrounding text carries dosage or form evidence.
func plausibleQuantity(n int, context string) bool {
	if n < 0 || n >= domain.DefaultQuantityCeiling {
		return false
	}
	if isYearLike(n) && !HasEvidence(context) {
		return false
	}
	return true
}

func isYearLike(n int) bool {
	return n >= 1900 && n <= 2099
}

func findDosage(text string) (Match, bool) {
	loc := dosageRe.FindStringIndex(text)
	if loc == nil {
		return Match{}, false
	}
	return Match{Value: strings.Join(strings.Fields(text[loc[0]:loc[1]]), " "), Start: loc[0], End: loc[1]}, true
}

func findUnit(text string) (Match, bool) {
	loc := unitRe.FindStringIndex(text)
	if loc == nil {
		return Match{}, false
	}
	return Match{Value: titleCase(text[loc[0]:loc[1]]), Start: loc[0], End: loc[1]}, true
}

func findForm(text string) (Match, bool) {
	for _, f := range forms {
		if loc := f.re.FindStringIndex(text); loc != nil {
			return Match{Value: f.name, Start: loc[0], End: loc[1]}, true
		}
	}
	return Match{}, false
}

// HasEvidence reports whether text contains a dosage-shaped token or a known
// form keyword, the corroboration required for a genuine medicine row.
func HasEvidence(text string) bool {
	if dosageRe.MatchString(text) {
		return true
	}
	_, ok := findForm(text)
	return ok
}

// Name returns the description preceding the dosage match, or preceding the
// first unit keyword when there is no dosage. Falls back to the first 50
// characters of text when the result is shorter than 3 characters.
func Name(text string, dosage *Match) string {
	end := len(text)
	if dosage != nil {
		end = dosage.Start
	} else if loc := unitRe.FindStringIndex(text); loc != nil {
		end = loc[0]
	}

	name := cleanName(text[:end])
	if len([]rune(name)) >= 3 {
		return name
	}

	fallback := []rune(strings.Join(strings.Fields(text), " "))
	if len(fallback) > 50 {
		fallback = fallback[:50]
	}
	return strings.TrimSpace(string(fallback))
}

func cleanName(s string) string {
	return strings.Trim(strings.Join(strings.Fields(s), " "), " .,;:-|/*")
}

// Brand returns the last capitalised word-run before any "or any other"
// qualifier, skipping packaging and form words and runs equal to the name.
// Low-confidence: callers must never use it as a validation key.
func Brand(text, name string) string {
	if loc := orAnyOtherRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	runs := capitalRunRe.FindAllString(text, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		var kept []string
		for _, w := range strings.Fields(runs[i]) {
			if !brandStopwords[strings.ToLower(w)] {
				kept = append(kept, w)
			}
		}
		if len(kept) == 0 {
			continue
		}
		brand := strings.Join(kept, " ")
		if strings.EqualFold(brand, name) || strings.Contains(strings.ToLower(name), strings.ToLower(brand)) {
			continue
		}
		return brand
	}
	return domain.BrandGenericAllowed
}

// GenericAllowed reports whether text mentions alternatives or generics.
func GenericAllowed(text string) bool {
	return genericHintRe.MatchString(text)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// removeSpan cuts a match out of text and collapses the seam.
func removeSpan(text string, m Match) string {
	return strings.Join(strings.Fields(text[:m.Start]+" "+text[m.End:]), " ")
}
