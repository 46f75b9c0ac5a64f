// Package rfqmeta reads RFQ-level terms from the full text of a document:
// reference and dates, issuer, currency, contract type, vendor requirements,
// delivery terms and evaluation criteria.
//
// Every field is optional. Fields that are not found keep their zero value,
// except currency (USD), contract type (purchase_order) and evaluation
// method (undisclosed), which always carry a value.
package rfqmeta

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Fields are the document-level terms found in one RFQ.
type Fields struct {
	Metadata           domain.Metadata
	VendorRequirements domain.VendorRequirements
	Delivery           domain.DeliveryRequirements
	Evaluation         domain.EvaluationCriteria
}

// Parse reads every document-level field from text.
func Parse(text string) Fields {
	return Fields{
		Metadata:           ParseMetadata(text),
		VendorRequirements: ParseVendorRequirements(text),
		Delivery:           ParseDelivery(text),
		Evaluation:         ParseEvaluation(text),
	}
}

// Apply copies the fields onto doc.
func (f Fields) Apply(doc *domain.RFQDocument) {
	doc.Metadata = f.Metadata
	doc.VendorRequirements = f.VendorRequirements
	doc.Delivery = f.Delivery
	doc.Evaluation = f.Evaluation
}

// submatch returns the trimmed first capture group of re in text.
func submatch(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// intSubmatch is submatch parsed as a positive integer.
func intSubmatch(re *regexp.Regexp, text string) (int, bool) {
	s, ok := submatch(re, text)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

var numberWords = map[string]int{"two": 2, "three": 3}

// count parses a digit or a spelled-out small number.
func count(s string) int {
	if n, ok := numberWords[strings.ToLower(s)]; ok {
		return n
	}
	n, _ := strconv.Atoi(s)
	return n
}
