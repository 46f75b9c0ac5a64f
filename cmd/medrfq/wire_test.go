package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{name: "no env keeps stored key", env: nil, expected: "stored"},
		{name: "openai key", env: map[string]string{"OPENAI_API_KEY": "sk-env"}, expected: "sk-env"},
		{
			name:     "medrfq key wins",
			env:      map[string]string{"OPENAI_API_KEY": "sk-env", "MEDRFQ_OPENAI_API_KEY": "sk-medrfq"},
			expected: "sk-medrfq",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultSettings()
			settings.LLM.APIKey = "stored"
			applyEnv(&settings, func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.expected, settings.LLM.APIKey)
		})
	}
}

func TestNewReviewer_DisabledWithoutKey(t *testing.T) {
	assert.Nil(t, newReviewer(domain.LLMSettings{}, t.TempDir()))
}

func TestNewReviewer_WithKey(t *testing.T) {
	dir := t.TempDir()
	reviewer := newReviewer(domain.LLMSettings{APIKey: "sk-test", Model: "test-model"}, dir)

	require.NotNil(t, reviewer)
	assert.Equal(t, "test-model", reviewer.ModelName())
}

func TestBootstrap(t *testing.T) {
	t.Setenv("MEDRFQ_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	medicinesPath := filepath.Join(dir, "medicines.csv")
	require.NoError(t, os.WriteFile(medicinesPath, []byte("Name\nParacetamol\nIbuprofen\n"), 0600))
	config := "[catalog]\nmedicines_path = \"" + filepath.ToSlash(medicinesPath) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0600))

	svc, closeFn, err := bootstrap(dir)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	assert.Equal(t, 2, svc.Validation.DatabaseSize())
	assert.FileExists(t, filepath.Join(dir, "data", "medrfq.db"))

	docs, err := svc.Document.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = svc.Document.Review(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestBootstrap_InvalidMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[extraction]\nmode = \"ocr\"\n"), 0600))

	_, _, err := bootstrap(dir)
	assert.ErrorContains(t, err, "invalid settings")
}
