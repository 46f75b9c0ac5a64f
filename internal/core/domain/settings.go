package domain

// Default settings values.
const (
	DefaultForm            = "Tablet"
	DefaultUnit            = "Box"
	DefaultTableUnit       = "Unit"
	DefaultBlankRunLimit   = 15
	DefaultStartLookahead  = 6
	DefaultMinConfidence   = 0.75
	DefaultMatchLimit      = 10
	DefaultRequestsPerSec  = 1.0
	DefaultQuantityCeiling = 1_000_000
)

// DefaultStages are the pipeline stages run after extraction when none are configured.
var DefaultStages = []string{"dedupe", "classify"}

// Settings is the resolved application configuration.
type Settings struct {
	Extraction ExtractionSettings
	Validation ValidationSettings
	Matching   MatchingSettings
	Catalog    CatalogSettings
	Pipeline   PipelineSettings
	LLM        LLMSettings
	Storage    StorageSettings
}

// ExtractionSettings configure the line-item extractor.
type ExtractionSettings struct {
	Mode           ExtractionMode
	DefaultForm    string
	DefaultUnit    string
	TableUnit      string
	BlankRunLimit  int
	StartLookahead int
}

// ValidationSettings configure the medicine validator.
type ValidationSettings struct {
	MinConfidence float64
}

// MatchingSettings configure vendor ranking.
type MatchingSettings struct {
	Presets []string
	Limit   int
}

// CatalogSettings locate the reference catalogs.
type CatalogSettings struct {
	VendorsPath   string
	MedicinesPath string
}

// PipelineSettings list post-extraction stages by name.
type PipelineSettings struct {
	Stages []string

	// StageConfig holds per-stage options keyed by stage name.
	StageConfig map[string]map[string]any
}

// LLMSettings configure the optional reviewer.
type LLMSettings struct {
	APIKey            string
	BaseURL           string
	Model             string
	RequestsPerSecond float64
}

// StorageSettings locate persisted data.
type StorageSettings struct {
	DataDir string
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Extraction: ExtractionSettings{
			Mode:           ModeAuto,
			DefaultForm:    DefaultForm,
			DefaultUnit:    DefaultUnit,
			TableUnit:      DefaultTableUnit,
			BlankRunLimit:  DefaultBlankRunLimit,
			StartLookahead: DefaultStartLookahead,
		},
		Validation: ValidationSettings{MinConfidence: DefaultMinConfidence},
		Matching:   MatchingSettings{Limit: DefaultMatchLimit},
		Pipeline:   PipelineSettings{Stages: append([]string(nil), DefaultStages...)},
		LLM:        LLMSettings{RequestsPerSecond: DefaultRequestsPerSec},
	}
}
