package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, ModeAuto, s.Extraction.Mode)
	assert.Equal(t, "Tablet", s.Extraction.DefaultForm)
	assert.Equal(t, "Box", s.Extraction.DefaultUnit)
	assert.Equal(t, "Unit", s.Extraction.TableUnit)
	assert.Equal(t, 15, s.Extraction.BlankRunLimit)
	assert.Equal(t, 6, s.Extraction.StartLookahead)
	assert.InDelta(t, 0.75, s.Validation.MinConfidence, 1e-9)
	assert.Equal(t, 10, s.Matching.Limit)
	assert.Empty(t, s.Matching.Presets)
	assert.Equal(t, []string{"dedupe", "classify"}, s.Pipeline.Stages)
	assert.InDelta(t, 1.0, s.LLM.RequestsPerSecond, 1e-9)
}

func TestDefaultSettings_StagesNotShared(t *testing.T) {
	a := DefaultSettings()
	a.Pipeline.Stages[0] = "authorize"

	assert.Equal(t, "dedupe", DefaultSettings().Pipeline.Stages[0])
	assert.Equal(t, "dedupe", DefaultStages[0])
}
