package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "medrfq://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "medrfq://documents/doc-456/csv",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists summaries", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{
			summaries: []domain.RFQSummary{{ID: "doc-1", Filename: "rfq.pdf"}},
		}})

		result, err := server.handleDocumentsResource(ctx, readRequest("medrfq://documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"document_id": "doc-1"`)
	})

	t.Run("no document service gives empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleDocumentsResource(ctx, readRequest("medrfq://documents"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("list error", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{err: errors.New("db locked")}})

		_, err := server.handleDocumentsResource(ctx, readRequest("medrfq://documents"))
		assert.ErrorContains(t, err, "db locked")
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns exported json", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{exported: `{"document_id": "doc-1"}`}})

		result, err := server.handleDocumentResource(ctx, readRequest("medrfq://documents/doc-1"))
		require.NoError(t, err)
		assert.Equal(t, `{"document_id": "doc-1"}`, result.Contents[0].Text)
	})

	t.Run("returns exported csv", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{exported: "Item No,INN Name\n"}})

		result, err := server.handleDocumentCSVResource(ctx, readRequest("medrfq://documents/doc-1/csv"))
		require.NoError(t, err)
		assert.Equal(t, "text/csv", result.Contents[0].MIMEType)
		assert.Equal(t, "Item No,INN Name\n", result.Contents[0].Text)
	})

	t.Run("unknown document", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{err: domain.ErrNotFound}})

		_, err := server.handleDocumentResource(ctx, readRequest("medrfq://documents/nope"))
		assert.Error(t, err)
	})

	t.Run("no document service", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleDocumentResource(ctx, readRequest("medrfq://documents/doc-1"))
		assert.Error(t, err)
	})
}
