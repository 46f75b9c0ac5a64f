package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no acquirer handles the document's MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownFormat indicates an export format that is not supported.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrAcquisition indicates the source document could not be read.
	// It is fatal to that document only.
	ErrAcquisition = errors.New("document acquisition failed")

	// ErrCatalogUnavailable indicates a reference catalog file could not be loaded.
	// Validation and scoring continue over an empty catalog.
	ErrCatalogUnavailable = errors.New("reference catalog unavailable")

	// ErrLLMUnavailable indicates the LLM reviewer is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrStoreUnavailable indicates no document store is configured.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
