package domain

// AuthorizedMedicine is one entry of the authorized-medicines reference list.
type AuthorizedMedicine struct {
	INNName  string `json:"inn_name"`
	Dosage   string `json:"dosage"`
	Strength string `json:"strength"`
	Form     string `json:"form"`
	Brand    string `json:"brand,omitempty"`
}

// ReferenceSnapshot is the immutable reference data loaded once at startup.
// It is safe for concurrent reads and is never mutated after construction.
type ReferenceSnapshot struct {
	Vendors   []VendorRecord
	Medicines []AuthorizedMedicine
}

// EmptySnapshot returns a snapshot with no reference data.
func EmptySnapshot() *ReferenceSnapshot {
	return &ReferenceSnapshot{}
}

// MedicineQuery is the validator input tuple.
type MedicineQuery struct {
	ItemNumber int    `json:"item_number,omitempty"`
	Name       string `json:"name"`
	Dosage     string `json:"dosage,omitempty"`
	Form       string `json:"form,omitempty"`
}

// ValidatedMedicine is a query annotated with the validator verdict.
type ValidatedMedicine struct {
	MedicineQuery
	Confidence       float64             `json:"confidence_score"`
	MatchedReference *AuthorizedMedicine `json:"matched_reference,omitempty"`
	RejectionReason  string              `json:"rejection_reason,omitempty"`
}

// ValidationReport summarises a batch validation.
type ValidationReport struct {
	Total             int                 `json:"total"`
	AuthorizedCount   int                 `json:"authorized_count"`
	RejectedCount     int                 `json:"rejected_count"`
	AuthorizationRate float64             `json:"authorization_rate"`
	Authorized        []ValidatedMedicine `json:"authorized"`
	Rejected          []ValidatedMedicine `json:"rejected"`
	DatabaseSize      int                 `json:"database_size"`
}
