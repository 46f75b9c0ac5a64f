package rfqmeta

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

var (
	deliveryLocationRe = regexp.MustCompile(`(?:Exact Address|Delivery Location)[:\s]+([A-Za-z\s,]+?)(?:\n\n|Customs)`)
	landRe             = regexp.MustCompile(`(?i)(?:Preferred Mode|Transport).*\bland\b`)
	seaRe              = regexp.MustCompile(`(?i)\bsea\b`)
	airRe              = regexp.MustCompile(`(?i)\bair\b`)
	expiryRe           = regexp.MustCompile(`(?i)minimum of\s+(\d+)\s+month`)
	customsNARe        = regexp.MustCompile(`Not applicable.*Customs`)
	customsSupplierRe  = regexp.MustCompile(`(?i)Supplier.*Customs`)
	packagingRe        = regexp.MustCompile(`(?i)Standard packaging`)

	lowestCompliantRe   = regexp.MustCompile(`(?i)lowest price.*substantially compliant`)
	mostEconomicalRe    = regexp.MustCompile(`(?i)most economically advantageous`)
	postQualificationRe = regexp.MustCompile(`(?i)post-qualification`)
)

// ComplianceFactors are applied to every evaluation.
var ComplianceFactors = []string{
	"full_compliance_with_requirements",
	"acceptance_of_general_conditions",
	"completeness_of_offer",
}

// PostQualificationMethods are listed when post-qualification is required.
var PostQualificationMethods = []string{
	"accuracy_verification",
	"compliance_validation",
	"reference_checking",
	"physical_inspection",
}

// ParseDelivery reads delivery terms.
func ParseDelivery(text string) domain.DeliveryRequirements {
	var d domain.DeliveryRequirements

	if loc, ok := submatch(deliveryLocationRe, text); ok {
		d.Location = strings.Join(strings.Fields(loc), " ")
	}

	switch {
	case landRe.MatchString(text):
		d.TransportMode = "land"
	case seaRe.MatchString(text):
		d.TransportMode = "sea"
	case airRe.MatchString(text):
		d.TransportMode = "air"
	}

	d.MinExpiryMonths, _ = intSubmatch(expiryRe, text)

	switch {
	case customsNARe.MatchString(text):
		d.CustomsBy = "not_applicable"
	case customsSupplierRe.MatchString(text):
		d.CustomsBy = "supplier"
	}

	if packagingRe.MatchString(text) {
		d.Packaging = "standard"
	}
	return d
}

// ParseEvaluation reads evaluation criteria.
func ParseEvaluation(text string) domain.EvaluationCriteria {
	e := domain.EvaluationCriteria{
		ComplianceFactors: append([]string(nil), ComplianceFactors...),
	}

	switch {
	case lowestCompliantRe.MatchString(text):
		e.PrimaryCriteria = "lowest_price_substantially_compliant"
	case mostEconomicalRe.MatchString(text):
		e.PrimaryCriteria = MethodMostEconomical
	}

	if postQualificationRe.MatchString(text) {
		e.PostQualificationRequired = true
		e.PostQualificationMethods = append([]string(nil), PostQualificationMethods...)
	}
	return e
}
