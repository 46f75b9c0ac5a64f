package scoring

import (
	"hash/fnv"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// defaultConfidence is used when a vendor record carries no confidence score.
const defaultConfidence = 80

// HashEnrichment fills missing offer attributes from a hash of the vendor ID.
// Values are stable across runs and processes; real record fields win.
type HashEnrichment struct{}

// Verify interface compliance.
var _ driven.VendorEnrichment = HashEnrichment{}

// Enrich builds the candidate offer for one vendor.
func (HashEnrichment) Enrich(v domain.VendorRecord, quantity int) domain.VendorCandidate {
	id := v.VendorID

	c := domain.VendorCandidate{
		VendorID:         id,
		DisplayName:      v.DisplayName(),
		Country:          v.Country(),
		AvailableQty:     max(0, quantity) * 2,
		LandedCost:       float64(10 + hashMod(id, 90)),
		DeliveryDays:     3 + int(hashMod(prefix(id, 8), 14)),
		QualityScore:     defaultConfidence / 10.0,
		ReliabilityScore: float64(5 + hashMod(prefix(id, 6), 5)),
		ColdChain:        v.ServiceCapabilities.ColdChain,
		GDPCompliance:    v.GDPCompliance,
	}
	if v.ConfidenceScore > 0 {
		c.QualityScore = v.ConfidenceScore / 10
	}
	if v.AvailableQty != nil {
		c.AvailableQty = *v.AvailableQty
	}
	if v.LandedCost != nil {
		c.LandedCost = *v.LandedCost
	}
	if v.DeliveryDays != nil && *v.DeliveryDays > 0 {
		c.DeliveryDays = *v.DeliveryDays
	}
	if v.ReliabilityScore != nil {
		c.ReliabilityScore = *v.ReliabilityScore
	}
	return c
}

func hashMod(s string, n uint32) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32() % n
}

// prefix returns the first n bytes of s, or s when shorter.
func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
