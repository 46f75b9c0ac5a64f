package domain

import "strings"

// Sentinel field values used when a field could not be detected.
const (
	// DosageNotAvailable marks a line item with no detectable strength.
	DosageNotAvailable = "N/A"

	// BrandGenericAllowed marks a line item with no detectable brand.
	BrandGenericAllowed = "Generic allowed"
)

// Category is a coarse product classification derived from name and form.
// It is advisory and never authoritative.
type Category string

const (
	// CategoryPharmaceuticals covers medicines in any dosage form.
	CategoryPharmaceuticals Category = "Pharmaceuticals"

	// CategoryMedicalSupplies covers consumables.
	CategoryMedicalSupplies Category = "Medical Supplies"

	// CategoryMedicalEquipment covers devices.
	CategoryMedicalEquipment Category = "Medical Equipment"
)

// LineItem is one requested procurement entry extracted from an RFQ.
type LineItem struct {
	// ItemNumber is the source-assigned ordinal. Not guaranteed unique or contiguous.
	ItemNumber int `json:"item_number"`

	// Name is the INN or product description. Never empty.
	Name string `json:"name"`

	// Dosage is a free-form strength expression or DosageNotAvailable.
	Dosage string `json:"dosage"`

	// Form is the pharmaceutical or product form.
	Form string `json:"form"`

	// UnitOfIssue is the packaging unit.
	UnitOfIssue string `json:"unit_of_issue"`

	// Quantity is the requested quantity; 0 when none was found.
	Quantity int `json:"quantity"`

	// BrandName is low-confidence metadata or BrandGenericAllowed.
	BrandName string `json:"brand_name"`

	// GenericAllowed is advisory: the source text mentions alternatives or generics.
	GenericAllowed bool `json:"generic_allowed"`

	// Category is set by the classify stage.
	Category Category `json:"category,omitempty"`

	// Validation is set by the authorize stage.
	Validation *ItemValidation `json:"validation,omitempty"`
}

// ItemValidation is the validator verdict attached to a line item.
type ItemValidation struct {
	Authorized  bool    `json:"authorized"`
	Confidence  float64 `json:"confidence"`
	MatchedName string  `json:"matched_name,omitempty"`
}

// ExtractionMode selects how acquired content is turned into line items.
type ExtractionMode string

const (
	// ModeAuto uses table mode for structured rows and falls back to text mode.
	ModeAuto ExtractionMode = "auto"

	// ModeText runs the section-bounded line state machine.
	ModeText ExtractionMode = "text"

	// ModeTable anchors each row on its right-most quantity cell.
	ModeTable ExtractionMode = "table"
)

// ParseExtractionMode converts a config or flag value into an ExtractionMode.
// Matching is case-insensitive.
func ParseExtractionMode(s string) (ExtractionMode, error) {
	mode := ExtractionMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case ModeAuto, ModeText, ModeTable:
		return mode, nil
	case "":
		return ModeAuto, nil
	default:
		return "", ErrInvalidInput
	}
}
