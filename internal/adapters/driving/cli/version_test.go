package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	original := version
	t.Cleanup(func() { version = original })

	tests := []struct {
		name    string
		version string
	}{
		{"dev build", "dev"},
		{"release", "1.4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)

			out, err := executeCommand("version")
			require.NoError(t, err)
			assert.Contains(t, out, "medrfq version "+tt.version)
			assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
		})
	}
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := executeCommand("version", "extra")
	assert.Error(t, err)
}
