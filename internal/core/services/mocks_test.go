package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// mockReviewer records the document it was asked to review.
type mockReviewer struct {
	review *domain.Review
	err    error
	got    *domain.RFQDocument
}

var _ driven.Reviewer = (*mockReviewer)(nil)

func (m *mockReviewer) Review(_ context.Context, doc *domain.RFQDocument) (*domain.Review, error) {
	m.got = doc
	if m.err != nil {
		return nil, m.err
	}
	return m.review, nil
}

func (m *mockReviewer) ModelName() string { return "mock-model" }

// failingStore fails every write.
type failingStore struct {
	driven.RFQStore
}

var errDiskFull = errors.New("disk full")

func (failingStore) Save(context.Context, *domain.RFQDocument) error { return errDiskFull }

// fixedClock returns a constant time.
func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
}

func sampleDocument() *domain.RFQDocument {
	return &domain.RFQDocument{
		ID:       "doc-1",
		Filename: "rfq.pdf",
		Mode:     domain.ModeText,
		LineItems: []domain.LineItem{
			{ItemNumber: 1, Name: "Paracetamol", Dosage: "500 mg", Form: "Tablet", UnitOfIssue: "Box", Quantity: 100},
			{ItemNumber: 2, Name: "Amoxicillin", Dosage: "250 mg", Form: "Capsule", UnitOfIssue: "Box", Quantity: 50},
		},
		ExtractedAt: fixedClock(),
	}
}
