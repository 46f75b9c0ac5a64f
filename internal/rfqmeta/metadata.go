package rfqmeta

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Contract types.
const (
	ContractLongTerm      = "long_term_agreement"
	ContractFramework     = "framework_agreement"
	ContractPurchaseOrder = "purchase_order"
)

// Evaluation methods.
const (
	MethodLowestPrice    = "lowest_price_per_line_item"
	MethodMostEconomical = "most_economically_advantageous"
	MethodUndisclosed    = "undisclosed"
)

// DefaultCurrency is used when the RFQ names no currency.
const DefaultCurrency = "USD"

var (
	rfqIDRe = regexp.MustCompile(`(?i)RFQ[#\s]*(?:Ref[erence]*)?[:\s#]*([A-Z0-9\-.]+)`)

	issueDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Issue|Date)[:\s]+(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`),
		regexp.MustCompile(`(?i)(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`),
		regexp.MustCompile(`(\d{4}[-/]\d{2}[-/]\d{2})`),
	}

	deadlineRe  = regexp.MustCompile(`(?i)(?:Deadline|Due Date)[:\s]+([0-9\s\w,:/]+?)(?:Beirut|GMT|UTC|Zone)`)
	issuerRe    = regexp.MustCompile(`(?:Issued by|Organization)[:\s]+([A-Z][A-Za-z\s()]+?)(?:\n|Signature)`)
	currencyRe  = regexp.MustCompile(`(?:Currency|Quotation shall be quoted in)\s*:?\s*([A-Z]{3})`)
	longTermRe  = regexp.MustCompile(`Long Term Agreement|\bLTA\b`)
	validityRe  = regexp.MustCompile(`(?i)(?:valid|remain.*valid)\s+for\s+(\d+)\s+(?:calendar\s+)?days`)
	selectRe    = regexp.MustCompile(`(?i)(?:up to|select)\s+(?:two|2|three|3)\s+\((\d)\)`)
	localOnlyRe = regexp.MustCompile(`(?i)local vendors only`)
	locationRe  = regexp.MustCompile(`(?:Delivery Location|Address|Country)[:\s]+([A-Za-z\s,]+?)(?:\n|$)`)
)

// ParseMetadata reads the RFQ-level metadata block.
func ParseMetadata(text string) domain.Metadata {
	md := domain.Metadata{
		Currency:         DefaultCurrency,
		ContractType:     ContractPurchaseOrder,
		EvaluationMethod: MethodUndisclosed,
	}

	md.RFQID, _ = submatch(rfqIDRe, text)
	for _, re := range issueDateRes {
		if d, ok := submatch(re, text); ok {
			md.IssueDate = d
			break
		}
	}
	md.SubmissionDeadline, _ = submatch(deadlineRe, text)
	md.IssuerOrg, _ = submatch(issuerRe, text)
	if c, ok := submatch(currencyRe, text); ok {
		md.Currency = c
	}

	switch {
	case longTermRe.MatchString(text):
		md.ContractType = ContractLongTerm
	case strings.Contains(text, "Framework"):
		md.ContractType = ContractFramework
	}

	md.QuotationValidityDays, _ = intSubmatch(validityRe, text)

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "lowest price"):
		md.EvaluationMethod = MethodLowestPrice
	case strings.Contains(lower, "most economical"):
		md.EvaluationMethod = MethodMostEconomical
	}

	md.VendorsToSelect, _ = intSubmatch(selectRe, text)
	md.LocalOnly = localOnlyRe.MatchString(text)
	md.DeliveryLocation, _ = submatch(locationRe, text)
	return md
}
