package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CopiesSeed(t *testing.T) {
	seed := map[string]any{"extraction.mode": "text"}
	store := NewConfigStore(seed)

	seed["extraction.mode"] = "table"

	assert.Equal(t, "text", store.GetString("extraction.mode"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":        "value",
		"int":        42,
		"int64":      int64(7),
		"float":      0.8,
		"strings":    []string{"dedupe", "classify"},
		"any_slice":  []any{"time", 3, "quality"},
		"wrong_type": struct{}{},
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.Equal(t, 0.8, store.GetFloat("float"))
	assert.Equal(t, 42.0, store.GetFloat("int"))
	assert.Equal(t, []string{"dedupe", "classify"}, store.GetStringSlice("strings"))
	assert.Equal(t, []string{"time", "quality"}, store.GetStringSlice("any_slice"))
	assert.Nil(t, store.GetStringSlice("wrong_type"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetStringSliceReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"pipeline.stages": []string{"dedupe"}})

	got := store.GetStringSlice("pipeline.stages")
	got[0] = "changed"

	assert.Equal(t, []string{"dedupe"}, store.GetStringSlice("pipeline.stages"))
}

func TestConfigStore_SetAndSave(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("matching.limit", 5))
	require.NoError(t, store.Save())

	assert.Equal(t, 5, store.GetInt("matching.limit"))
	assert.Equal(t, 1, store.Saves())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("key")
		}()
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
