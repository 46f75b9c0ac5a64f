package acquirers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.AcquirerRegistry = (*Registry)(nil)

var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".text": "text/plain",
	".csv":  "text/csv",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// DetectMIMEType derives a MIME type from a file name's extension.
// Unknown extensions yield application/octet-stream.
func DetectMIMEType(filename string) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}
	return "application/octet-stream"
}

// SupportedExtensions returns the file extensions DetectMIMEType recognises.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Registry selects the highest-priority acquirer for a MIME type.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[string][]driven.Acquirer
}

// NewRegistry creates a registry holding the given acquirers.
func NewRegistry(acquirers ...driven.Acquirer) *Registry {
	r := &Registry{byType: make(map[string][]driven.Acquirer)}
	for _, a := range acquirers {
		r.Register(a)
	}
	return r
}

// Register adds an acquirer for each MIME type it supports.
func (r *Registry) Register(a driven.Acquirer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range a.SupportedMIMETypes() {
		list := append(r.byType[t], a)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byType[t] = list
	}
}

// SupportedMIMETypes returns every registered MIME type, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Acquire reads raw with the best acquirer for its MIME type. An empty MIME
// type is derived from the file name.
func (r *Registry) Acquire(ctx context.Context, raw *domain.RawDocument) (*domain.AcquiredDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mimeType := raw.MIMEType
	if mimeType == "" {
		mimeType = DetectMIMEType(raw.Filename)
	}

	r.mu.RLock()
	candidates := r.byType[mimeType]
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}

	doc, err := candidates[0].Acquire(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", raw.Filename, err)
	}
	return doc, nil
}
