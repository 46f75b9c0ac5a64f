package rfqmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

var sampleRFQ = strings.Join([]string{
	"Request for Quotation",
	"RFQ Ref: RFQ-LB-2024-017",
	"Date: 12 March 2024",
	"Issued by: United Nations Population Fund",
	"Submission Deadline: 28 March 2024 14:00 Beirut time",
	"Currency: EUR",
	"This will result in a Long Term Agreement (LTA).",
	"Quotations shall remain valid for 90 calendar days.",
	"Offers are evaluated on the lowest price per line item among substantially compliant offers.",
	"The buyer may select up to two (2) vendors.",
	"Delivery Location: Beirut, Lebanon",
	"Suppliers must hold cGMP and ISO 9001 certificates.",
	"Products must be registered with the Ministry of Public Health.",
	"The bidder shall have a minimum 5 years of experience and provide three references.",
	"Attach the Quotation Submission Form and the Technical and Financial Offer.",
	"A QMS certificate is required, with a copy of the product registration.",
	"Prices shall be inclusive of VAT.",
	"Payment: 100% within 30 days of delivery.",
	"Preferred Mode of Transport: land",
	"Shelf life: a minimum of 18 months at delivery.",
	"Supplier is responsible for Customs clearance.",
	"Standard packaging applies.",
	"Post-qualification may be conducted.",
}, "\n")

func TestParseMetadata(t *testing.T) {
	md := ParseMetadata(sampleRFQ)

	assert.Equal(t, domain.Metadata{
		RFQID:                 "RFQ-LB-2024-017",
		IssueDate:             "12 March 2024",
		SubmissionDeadline:    "28 March 2024 14:00",
		IssuerOrg:             "United Nations Population Fund",
		Currency:              "EUR",
		ContractType:          ContractLongTerm,
		QuotationValidityDays: 90,
		EvaluationMethod:      MethodLowestPrice,
		VendorsToSelect:       2,
		LocalOnly:             false,
		DeliveryLocation:      "Beirut, Lebanon",
	}, md)
}

func TestParseMetadata_Defaults(t *testing.T) {
	md := ParseMetadata("")

	assert.Equal(t, DefaultCurrency, md.Currency)
	assert.Equal(t, ContractPurchaseOrder, md.ContractType)
	assert.Equal(t, MethodUndisclosed, md.EvaluationMethod)
	assert.Empty(t, md.RFQID)
	assert.Zero(t, md.QuotationValidityDays)
	assert.False(t, md.LocalOnly)
}

func TestParseMetadata_Variants(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, md domain.Metadata)
	}{
		{"framework", "A Framework Agreement will be signed", func(t *testing.T, md domain.Metadata) {
			assert.Equal(t, ContractFramework, md.ContractType)
		}},
		{"LTA inside a word", "DELTA logistics", func(t *testing.T, md domain.Metadata) {
			assert.Equal(t, ContractPurchaseOrder, md.ContractType)
		}},
		{"most economical", "the most economical offer wins", func(t *testing.T, md domain.Metadata) {
			assert.Equal(t, MethodMostEconomical, md.EvaluationMethod)
		}},
		{"local only", "Open to local vendors only.", func(t *testing.T, md domain.Metadata) {
			assert.True(t, md.LocalOnly)
		}},
		{"iso date", "Issued 2024-05-02", func(t *testing.T, md domain.Metadata) {
			assert.Equal(t, "2024-05-02", md.IssueDate)
		}},
		{"quoted in", "Quotation shall be quoted in USD only", func(t *testing.T, md domain.Metadata) {
			assert.Equal(t, "USD", md.Currency)
		}},
		{"rfq hash", "RFQ# UNFPA/LBN/24/003", func(t *testing.T, md domain.Metadata) {
			assert.Equal(t, "UNFPA", md.RFQID)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ParseMetadata(tt.text))
		})
	}
}

func TestParseVendorRequirements(t *testing.T) {
	req := ParseVendorRequirements(sampleRFQ)

	assert.Equal(t, []string{"cGMP_certification", "ISO_9001", "product_registration"}, req.Legal)
	assert.Equal(t, []domain.Requirement{
		{Type: "min_years_experience", Value: 5},
		{Type: "required_references", Value: 3},
	}, req.Technical)
	assert.Equal(t, []domain.Requirement{
		{Type: "prices_inclusive_vat"},
		{Type: "payment_term", Percentage: 100, Days: 30},
	}, req.Financial)
	assert.Equal(t, []string{
		"quotation_submission_form",
		"technical_financial_offer",
		"qms_certificate",
		"product_registration_certificate",
	}, req.MandatoryDocuments)
}

func TestParseVendorRequirements_Empty(t *testing.T) {
	req := ParseVendorRequirements("nothing relevant here")

	assert.NotNil(t, req.Legal)
	assert.NotNil(t, req.Technical)
	assert.NotNil(t, req.Financial)
	assert.NotNil(t, req.MandatoryDocuments)
	assert.Empty(t, req.Legal)
	assert.Empty(t, req.MandatoryDocuments)
}

func TestParseVendorRequirements_ExclusiveVATAndTwoReferences(t *testing.T) {
	req := ParseVendorRequirements("Prices exclusive of VAT.\nPlease provide 2 clients as references.")

	assert.Equal(t, []domain.Requirement{{Type: "prices_exclusive_vat"}}, req.Financial)
	assert.Equal(t, []domain.Requirement{{Type: "required_references", Value: 2}}, req.Technical)
}

func TestParseDelivery(t *testing.T) {
	d := ParseDelivery(sampleRFQ)

	assert.Equal(t, "land", d.TransportMode)
	assert.Equal(t, 18, d.MinExpiryMonths)
	assert.Equal(t, "supplier", d.CustomsBy)
	assert.Equal(t, "standard", d.Packaging)
}

func TestParseDelivery_Location(t *testing.T) {
	d := ParseDelivery("Exact Address: Hamra Street,\nBeirut\n\nCustoms clearance: Not applicable")

	assert.Equal(t, "Hamra Street, Beirut", d.Location)
}

func TestParseDelivery_TransportWordBoundaries(t *testing.T) {
	assert.Empty(t, ParseDelivery("market research and repair services").TransportMode)
	assert.Equal(t, "sea", ParseDelivery("Shipment by sea freight").TransportMode)
	assert.Equal(t, "air", ParseDelivery("Goods travel by air").TransportMode)
}

func TestParseDelivery_CustomsNotApplicable(t *testing.T) {
	assert.Equal(t, "not_applicable", ParseDelivery("Not applicable - Customs handled by the buyer").CustomsBy)
}

func TestParseEvaluation(t *testing.T) {
	e := ParseEvaluation(sampleRFQ)

	assert.Equal(t, "lowest_price_substantially_compliant", e.PrimaryCriteria)
	assert.Equal(t, ComplianceFactors, e.ComplianceFactors)
	assert.True(t, e.PostQualificationRequired)
	assert.Equal(t, PostQualificationMethods, e.PostQualificationMethods)

	e = ParseEvaluation("The most economically advantageous offer")
	assert.Equal(t, MethodMostEconomical, e.PrimaryCriteria)
	assert.False(t, e.PostQualificationRequired)
	assert.Nil(t, e.PostQualificationMethods)
}

func TestParse_Apply(t *testing.T) {
	doc := &domain.RFQDocument{ID: "doc-1"}

	Parse(sampleRFQ).Apply(doc)

	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "RFQ-LB-2024-017", doc.Metadata.RFQID)
	assert.Len(t, doc.VendorRequirements.MandatoryDocuments, 4)
	assert.Equal(t, "land", doc.Delivery.TransportMode)
	assert.True(t, doc.Evaluation.PostQualificationRequired)
}
