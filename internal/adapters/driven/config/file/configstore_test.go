package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

const sampleConfig = `
[extraction]
mode = "table"
blank_run_limit = 4

[validation]
min_confidence = 0.8

[matching]
presets = ["time", "quality"]
limit = 3

[pipeline]
stages = ["dedupe", "authorize"]

[pipeline.authorize]
min_confidence = 1
drop_rejected = true
`

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())
	assert.NoFileExists(t, store.Path(), "nothing is written before Save")
}

func TestNewConfigStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, DefaultDirName, ConfigFileName), store.Path())
}

func TestNewConfigStore_ReadsTablesAsDottedKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, sampleConfig)

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "table", store.GetString("extraction.mode"))
	assert.Equal(t, 4, store.GetInt("extraction.blank_run_limit"))
	assert.Equal(t, 0.8, store.GetFloat("validation.min_confidence"))
	assert.Equal(t, []string{"time", "quality"}, store.GetStringSlice("matching.presets"))
	assert.Equal(t, 3, store.GetInt("matching.limit"))
	assert.Equal(t, []string{"dedupe", "authorize"}, store.GetStringSlice("pipeline.stages"))
	assert.Equal(t, 1.0, store.GetFloat("pipeline.authorize.min_confidence"))

	val, ok := store.Get("pipeline.authorize.drop_rejected")
	require.True(t, ok)
	assert.Equal(t, true, val)

	_, ok = store.Get("pipeline.authorize")
	assert.False(t, ok, "tables are not values")
}

func TestNewConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("extraction.mode")
	assert.False(t, ok)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[extraction\nmode = ")

	_, err := NewConfigStore(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("str", "value"))
	require.NoError(t, store.Set("int", 7))
	require.NoError(t, store.Set("int64", int64(9)))
	require.NoError(t, store.Set("float", 0.5))
	require.NoError(t, store.Set("mixed", []any{"time", 2, "quality"}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "value"},
		{"string of int", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 7},
		{"int64", store.GetInt("int64"), 9},
		{"int of string", store.GetInt("str"), 0},
		{"float", store.GetFloat("float"), 0.5},
		{"float of int", store.GetFloat("int64"), 9.0},
		{"slice drops non-strings", store.GetStringSlice("mixed"), []string{"time", "quality"}},
		{"missing slice", store.GetStringSlice("missing"), []string(nil)},
		{"missing string", store.GetString("missing"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SetEmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, store.Set(" ", "x"), domain.ErrInvalidInput)
}

func TestConfigStore_SetIsStagedUntilSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("extraction.mode", "text"))
	assert.Equal(t, "text", store.GetString("extraction.mode"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, reopened.GetString("extraction.mode"))

	require.NoError(t, store.Save())

	reopened, err = NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "text", reopened.GetString("extraction.mode"))
}

func TestConfigStore_SaveWritesTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("extraction.mode", "auto"))
	require.NoError(t, store.Set("matching.presets", []string{"balanced"}))
	require.NoError(t, store.Set("matching.limit", 5))
	require.NoError(t, store.Set("pipeline.stages", []string{"dedupe", "classify"}))
	require.NoError(t, store.Set("pipeline.authorize.min_confidence", 0.9))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[extraction]")
	assert.Contains(t, content, "[matching]")
	assert.Contains(t, content, "[pipeline.authorize]")
	assert.NotContains(t, content, "extraction.mode")

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "auto", reopened.GetString("extraction.mode"))
	assert.Equal(t, []string{"balanced"}, reopened.GetStringSlice("matching.presets"))
	assert.Equal(t, 5, reopened.GetInt("matching.limit"))
	assert.Equal(t, []string{"dedupe", "classify"}, reopened.GetStringSlice("pipeline.stages"))
	assert.Equal(t, 0.9, reopened.GetFloat("pipeline.authorize.min_confidence"))
}

func TestConfigStore_SaveKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, sampleConfig)

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "gpt-4o"))
	require.NoError(t, store.Save())

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", reopened.GetString("llm.model"))
	assert.Equal(t, "table", reopened.GetString("extraction.mode"))
	assert.Equal(t, 1.0, reopened.GetFloat("pipeline.authorize.min_confidence"))
}

func TestConfigStore_SaveFilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SaveConflictingKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("pipeline", "dedupe"))
	require.NoError(t, store.Set("pipeline.stages", []string{"dedupe"}))

	err = store.Save()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoFileExists(t, store.Path())
}

func TestNest(t *testing.T) {
	tree, err := nest(map[string]any{
		"a":     1,
		"b.c":   "x",
		"b.d.e": true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": 1,
		"b": map[string]any{
			"c": "x",
			"d": map[string]any{"e": true},
		},
	}, tree)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("matching.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("matching.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("matching.limit")
	assert.True(t, ok)
}
