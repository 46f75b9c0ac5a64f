package rfqmeta

import (
	"regexp"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

var (
	cgmpRe         = regexp.MustCompile(`cGMP|Current Good Manufacturing Practice`)
	iso9001Re      = regexp.MustCompile(`ISO\s*9001`)
	registrationRe = regexp.MustCompile(`(?i)(?:registered|registration).*(?:Ministry|MoPH|Health)`)
	experienceRe   = regexp.MustCompile(`(?i)minimum\s+(\d+)\s+year`)
	referencesRe   = regexp.MustCompile(`(?i)(?:list of|provide)\s+(three|3|two|2)\s+(?:clients|references)`)

	submissionFormRe = regexp.MustCompile(`Quotation Submission Form`)
	techFinOfferRe   = regexp.MustCompile(`(?i)Technical.*Financial.*Offer`)
	qmsCertRe        = regexp.MustCompile(`(?i)QMS.*certificate`)
	productRegRe     = regexp.MustCompile(`(?i)product.*registration`)

	vatInclusiveRe = regexp.MustCompile(`(?i)inclusive.*VAT`)
	vatExclusiveRe = regexp.MustCompile(`(?i)exclusive.*VAT`)
	paymentTermRe  = regexp.MustCompile(`(\d+)%\s+within\s+(\d+)\s+days`)
)

// ParseVendorRequirements reads eligibility requirements and mandatory documents.
// All slices are non-nil.
func ParseVendorRequirements(text string) domain.VendorRequirements {
	req := domain.VendorRequirements{
		Legal:              []string{},
		Technical:          []domain.Requirement{},
		Financial:          []domain.Requirement{},
		MandatoryDocuments: []string{},
	}

	if cgmpRe.MatchString(text) {
		req.Legal = append(req.Legal, "cGMP_certification")
	}
	if iso9001Re.MatchString(text) {
		req.Legal = append(req.Legal, "ISO_9001")
	}
	if registrationRe.MatchString(text) {
		req.Legal = append(req.Legal, "product_registration")
	}

	if years, ok := intSubmatch(experienceRe, text); ok {
		req.Technical = append(req.Technical, domain.Requirement{Type: "min_years_experience", Value: years})
	}
	if n, ok := submatch(referencesRe, text); ok {
		req.Technical = append(req.Technical, domain.Requirement{Type: "required_references", Value: count(n)})
	}

	docs := []struct {
		re   *regexp.Regexp
		name string
	}{
		{submissionFormRe, "quotation_submission_form"},
		{techFinOfferRe, "technical_financial_offer"},
		{qmsCertRe, "qms_certificate"},
		{productRegRe, "product_registration_certificate"},
	}
	for _, d := range docs {
		if d.re.MatchString(text) {
			req.MandatoryDocuments = append(req.MandatoryDocuments, d.name)
		}
	}

	switch {
	case vatInclusiveRe.MatchString(text):
		req.Financial = append(req.Financial, domain.Requirement{Type: "prices_inclusive_vat"})
	case vatExclusiveRe.MatchString(text):
		req.Financial = append(req.Financial, domain.Requirement{Type: "prices_exclusive_vat"})
	}
	if m := paymentTermRe.FindStringSubmatch(text); m != nil {
		req.Financial = append(req.Financial, domain.Requirement{
			Type:       "payment_term",
			Percentage: count(m[1]),
			Days:       count(m[2]),
		})
	}
	return req
}
