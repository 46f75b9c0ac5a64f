package domain

// VendorRecord is one entry of the external vendor master index. Read-only.
type VendorRecord struct {
	VendorID            string   `json:"vendor_id"`
	LegalName           string   `json:"legal_name"`
	TradeName           string   `json:"trade_name_dba"`
	CountriesServed     []string `json:"countries_served"`
	PrimaryCategories   []string `json:"primary_categories"`
	SpecializationTags  []string `json:"specialization_tags"`
	ConfidenceScore     float64  `json:"confidence_score"`
	GDPCompliance       bool     `json:"gdp_compliance"`
	ServiceCapabilities struct {
		ColdChain bool `json:"cold_chain"`
	} `json:"service_capabilities"`

	// Offer fields are optional real data; when absent an enrichment supplies them.
	AvailableQty     *int     `json:"availableQty,omitempty"`
	LandedCost       *float64 `json:"landedCost,omitempty"`
	DeliveryDays     *int     `json:"deliveryDays,omitempty"`
	ReliabilityScore *float64 `json:"reliabilityScore,omitempty"`
}

// DisplayName returns the legal name, falling back to the trade name.
func (v VendorRecord) DisplayName() string {
	if v.LegalName != "" {
		return v.LegalName
	}
	return v.TradeName
}

// Country returns the first served country or "Unknown".
func (v VendorRecord) Country() string {
	if len(v.CountriesServed) == 0 || v.CountriesServed[0] == "" {
		return "Unknown"
	}
	return v.CountriesServed[0]
}

// VendorCandidate is a vendor's offer for one line item.
// Score is always computed by the scorer, never supplied.
type VendorCandidate struct {
	VendorID         string  `json:"vendor_id"`
	DisplayName      string  `json:"name"`
	Country          string  `json:"country"`
	AvailableQty     int     `json:"availableQty"`
	LandedCost       float64 `json:"landedCost"`
	DeliveryDays     int     `json:"deliveryDays"`
	QualityScore     float64 `json:"qualityScore"`
	ReliabilityScore float64 `json:"reliabilityScore"`
	ColdChain        bool    `json:"cold_chain"`
	GDPCompliance    bool    `json:"gdp_compliance"`
	Score            float64 `json:"score"`
}

// Weights maps the five scoring criteria to non-negative weights.
type Weights struct {
	Qty         float64 `json:"qty"`
	Cost        float64 `json:"cost"`
	Delivery    float64 `json:"delivery"`
	Quality     float64 `json:"quality"`
	Reliability float64 `json:"reliability"`
}

// MatchResult is the ranked vendor list for one line item.
type MatchResult struct {
	Medicine          string            `json:"medicine"`
	Quantity          int               `json:"quantity"`
	Preferences       []string          `json:"preferences"`
	TotalVendorsFound int               `json:"total_vendors_found"`
	TopVendor         *VendorCandidate  `json:"top_vendor"`
	OtherVendors      []VendorCandidate `json:"other_vendors"`
}
