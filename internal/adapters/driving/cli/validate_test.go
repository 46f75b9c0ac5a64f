package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

func TestValidateCmd_Use(t *testing.T) {
	assert.Equal(t, "validate [medicine...]", validateCmd.Use)
}

func TestValidateCmd_Names(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("validate", "Paracetamol", "Zolgensma")

	require.NoError(t, err)
	assert.Contains(t, out, "Authorized:     1/2 (50.00%)")
	assert.Contains(t, out, "Reference list: 3 medicines")
	assert.Contains(t, out, "authorized")
	assert.Contains(t, out, "rejected")
}

func TestValidateCmd_DocumentJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("validate", "--document", "doc-1", "--json")
	require.NoError(t, err)

	var report domain.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.AuthorizedCount)
	assert.Equal(t, 1, report.Authorized[0].ItemNumber)
}

func TestValidateCmd_Errors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("validate")
	assert.EqualError(t, err, "provide medicine names or --document")

	_, err = executeCommand("validate", "--document", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidateCmd_NoService(t *testing.T) {
	_, err := executeCommand("validate", "Paracetamol")
	assert.EqualError(t, err, "validation service not configured")
}
