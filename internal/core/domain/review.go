package domain

// Review is the structured verdict returned by an external LLM reviewer.
// It is advisory and never changes extracted line items.
type Review struct {
	Total           int             `json:"total"`
	Confirmed       bool            `json:"confirmed"`
	ValidatedLines  []ReviewedLine  `json:"validated_lines"`
	Classifications Classifications `json:"classifications"`
}

// ReviewedLine is the reviewer's verdict for one line item.
type ReviewedLine struct {
	ItemNumber      int    `json:"line_item_id"`
	Match           bool   `json:"match"`
	NormalizedFound string `json:"normalized_found"`
	Notes           string `json:"notes"`
}

// Classifications group vendor requirements by kind.
type Classifications struct {
	Legal     []string `json:"legal"`
	Technical []string `json:"technical"`
	Financial []string `json:"financial"`
	Documents []string `json:"documents"`
}
