// Package driven declares what the core needs from the outside world:
// reading RFQ files (Acquirer, AcquirerRegistry), keeping extracted
// documents (RFQStore) and settings (ConfigStore), and loading the vendor
// and medicine catalogs (CatalogLoader).
//
// Stage, VendorEnrichment and Reviewer are optional. Without stages items
// are stored as extracted; without an enrichment the hash enrichment fills
// offer attributes; without a reviewer `document review` reports
// domain.ErrLLMUnavailable.
//
// This package imports only domain.
package driven
