package domain

import "time"

// RFQDocument is the structured result of extracting one RFQ file.
// Extraction always produces one, even when no line items were found.
type RFQDocument struct {
	// ID is the unique identifier for the document.
	ID string `json:"document_id"`

	// Filename is the original file name.
	Filename string `json:"filename"`

	// Mode is the extraction mode that produced the line items.
	Mode ExtractionMode `json:"mode"`

	// Pages is the number of pages read during acquisition.
	Pages int `json:"pages"`

	// Metadata holds RFQ-level fields found in the full text.
	Metadata Metadata `json:"metadata"`

	// VendorRequirements lists eligibility requirements stated in the RFQ.
	VendorRequirements VendorRequirements `json:"vendor_requirements"`

	// Delivery holds delivery terms.
	Delivery DeliveryRequirements `json:"delivery_requirements"`

	// Evaluation holds evaluation criteria.
	Evaluation EvaluationCriteria `json:"evaluation_criteria"`

	// LineItems are the extracted procurement entries, in source order.
	LineItems []LineItem `json:"line_items"`

	// ExtractedAt is when extraction finished.
	ExtractedAt time.Time `json:"extracted_at"`
}

// Summary returns the document's listing summary.
func (d *RFQDocument) Summary() RFQSummary {
	return RFQSummary{
		ID:                      d.ID,
		Filename:                d.Filename,
		RFQID:                   d.Metadata.RFQID,
		IssuerOrg:               d.Metadata.IssuerOrg,
		TotalLineItems:          len(d.LineItems),
		TotalMandatoryDocuments: len(d.VendorRequirements.MandatoryDocuments),
		SelectionMethod:         d.Metadata.EvaluationMethod,
		ExtractedAt:             d.ExtractedAt,
	}
}

// RFQSummary is the short listing form of a stored document.
type RFQSummary struct {
	ID                      string    `json:"document_id"`
	Filename                string    `json:"filename"`
	RFQID                   string    `json:"rfq_id,omitempty"`
	IssuerOrg               string    `json:"issuer_org,omitempty"`
	TotalLineItems          int       `json:"total_line_items"`
	TotalMandatoryDocuments int       `json:"total_mandatory_documents"`
	SelectionMethod         string    `json:"vendor_selection_method,omitempty"`
	ExtractedAt             time.Time `json:"extracted_at"`
}

// Metadata holds RFQ-level fields.
type Metadata struct {
	RFQID                 string `json:"rfq_id,omitempty"`
	IssueDate             string `json:"issue_date,omitempty"`
	SubmissionDeadline    string `json:"submission_deadline,omitempty"`
	IssuerOrg             string `json:"issuer_org,omitempty"`
	Currency              string `json:"currency"`
	ContractType          string `json:"contract_type"`
	QuotationValidityDays int    `json:"quotation_validity_days,omitempty"`
	EvaluationMethod      string `json:"evaluation_method"`
	VendorsToSelect       int    `json:"vendors_to_select,omitempty"`
	LocalOnly             bool   `json:"local_only"`
	DeliveryLocation      string `json:"delivery_location,omitempty"`
}

// VendorRequirements are eligibility requirements grouped by kind.
type VendorRequirements struct {
	Legal              []string      `json:"legal_requirements"`
	Technical          []Requirement `json:"technical_requirements"`
	Financial          []Requirement `json:"financial_requirements"`
	MandatoryDocuments []string      `json:"mandatory_documents"`
}

// Requirement is a typed requirement with an optional numeric value.
type Requirement struct {
	Type       string `json:"type"`
	Value      int    `json:"value,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
	Days       int    `json:"days,omitempty"`
}

// DeliveryRequirements are delivery terms.
type DeliveryRequirements struct {
	Location        string `json:"delivery_location,omitempty"`
	TransportMode   string `json:"transport_mode,omitempty"`
	MinExpiryMonths int    `json:"min_expiry_months,omitempty"`
	CustomsBy       string `json:"customs_by,omitempty"`
	Packaging       string `json:"packaging,omitempty"`
}

// EvaluationCriteria describe how offers are evaluated.
type EvaluationCriteria struct {
	PrimaryCriteria           string   `json:"primary_criteria,omitempty"`
	ComplianceFactors         []string `json:"compliance_factors"`
	PostQualificationRequired bool     `json:"post_qualification_required"`
	PostQualificationMethods  []string `json:"post_qualification_methods,omitempty"`
}

// Confirmation is the result of comparing extracted items against expectations.
type Confirmation struct {
	DocumentID    string     `json:"document_id"`
	Confirmed     bool       `json:"confirmed"`
	ExpectedCount int        `json:"expected_count"`
	FoundCount    int        `json:"found_count"`
	Mismatches    []Mismatch `json:"mismatches"`
}

// Mismatch describes one line that differs from the expectation.
type Mismatch struct {
	Reason     string `json:"reason"`
	Index      int    `json:"index"`
	ItemNumber int    `json:"item_number,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Found      string `json:"found,omitempty"`
}
