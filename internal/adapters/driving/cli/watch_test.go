package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/adapters/driving/watch"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [dir]", watchCmd.Use)

	settle := watchCmd.Flags().Lookup("settle")
	require.NotNil(t, settle)
	assert.Equal(t, watch.DefaultSettle.String(), settle.DefValue)
}

func TestWatchCmd_MissingDirectory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("watch", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inbox error")
}

func TestWatchCmd_InvalidMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("watch", "--mode", "ocr", t.TempDir())
	assert.EqualError(t, err, `invalid mode "ocr": want auto, text or table`)
}

func TestWatchCmd_NoService(t *testing.T) {
	_, err := executeCommand("watch", t.TempDir())
	assert.EqualError(t, err, "extraction service not configured")
}
