package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medrfq/internal/confirm"
	"github.com/custodia-labs/medrfq/internal/core/domain"
)

func seededDocuments(t *testing.T, reviewer *mockReviewer) *DocumentService {
	t.Helper()
	store := memory.NewRFQStore()
	require.NoError(t, store.Save(context.Background(), sampleDocument()))
	if reviewer == nil {
		return NewDocumentService(store, nil)
	}
	return NewDocumentService(store, reviewer)
}

func TestDocumentService_ListAndGet(t *testing.T) {
	svc := seededDocuments(t, nil)

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "doc-1", summaries[0].ID)
	assert.Equal(t, 2, summaries[0].TotalLineItems)

	doc, err := svc.Get(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "rfq.pdf", doc.Filename)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Export(t *testing.T) {
	svc := seededDocuments(t, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), "doc-1", "csv", &buf))
	assert.Contains(t, buf.String(), "Paracetamol")

	buf.Reset()
	require.NoError(t, svc.Export(context.Background(), "doc-1", "json", &buf))
	assert.Contains(t, buf.String(), `"document_id": "doc-1"`)

	err := svc.Export(context.Background(), "doc-1", "xlsx", &buf)
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)

	err = svc.Export(context.Background(), "missing", "csv", &buf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete(t *testing.T) {
	svc := seededDocuments(t, nil)

	require.NoError(t, svc.Delete(context.Background(), "doc-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "doc-1"), domain.ErrNotFound)
}

func TestDocumentService_Confirm(t *testing.T) {
	svc := seededDocuments(t, nil)

	tests := []struct {
		name      string
		count     int
		lines     []string
		confirmed bool
		reasons   []string
	}{
		{
			name:      "count matches",
			count:     2,
			confirmed: true,
		},
		{
			name:      "count differs",
			count:     3,
			confirmed: false,
		},
		{
			name:  "lines match",
			count: -1,
			lines: []string{
				"Paracetamol 500 mg Tablet Box",
				"Amoxicillin 250 mg Capsule Box",
			},
			confirmed: true,
		},
		{
			name:      "missing line",
			count:     -1,
			lines:     []string{"Paracetamol 500 mg Tablet Box"},
			confirmed: false,
			reasons:   []string{confirm.ReasonCountMismatch, confirm.ReasonLineMismatch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Confirm(context.Background(), "doc-1", tt.count, tt.lines)
			require.NoError(t, err)
			assert.Equal(t, "doc-1", got.DocumentID)
			assert.Equal(t, 2, got.FoundCount)
			assert.Equal(t, tt.confirmed, got.Confirmed)

			reasons := make([]string, 0, len(got.Mismatches))
			for _, m := range got.Mismatches {
				reasons = append(reasons, m.Reason)
			}
			if tt.reasons == nil {
				assert.Empty(t, reasons)
			} else {
				assert.Equal(t, tt.reasons, reasons)
			}
		})
	}
}

func TestDocumentService_Review(t *testing.T) {
	reviewer := &mockReviewer{review: &domain.Review{Total: 2, Confirmed: true}}
	svc := seededDocuments(t, reviewer)

	review, err := svc.Review(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.True(t, review.Confirmed)
	require.NotNil(t, reviewer.got)
	assert.Equal(t, "doc-1", reviewer.got.ID)
}

func TestDocumentService_ReviewError(t *testing.T) {
	reviewer := &mockReviewer{err: errors.New("quota exceeded")}
	svc := seededDocuments(t, reviewer)

	_, err := svc.Review(context.Background(), "doc-1")
	assert.ErrorContains(t, err, "mock-model")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestDocumentService_ReviewUnavailable(t *testing.T) {
	svc := seededDocuments(t, nil)

	_, err := svc.Review(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestDocumentService_NoStore(t *testing.T) {
	svc := NewDocumentService(nil, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.Get(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), "doc-1"), domain.ErrStoreUnavailable)
}
