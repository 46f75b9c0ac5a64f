package driven

import "github.com/custodia-labs/medrfq/internal/core/domain"

// VendorEnrichment supplies offer attributes for a vendor and a requested quantity.
// Implementations must be deterministic per vendor.
type VendorEnrichment interface {
	Enrich(vendor domain.VendorRecord, quantity int) domain.VendorCandidate
}
