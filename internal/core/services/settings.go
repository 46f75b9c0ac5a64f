package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/scoring"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyExtractionMode    = "extraction.mode"
	keyDefaultForm       = "extraction.default_form"
	keyDefaultUnit       = "extraction.default_unit"
	keyTableUnit         = "extraction.table_default_unit"
	keyBlankRunLimit     = "extraction.blank_run_limit"
	keyStartLookahead    = "extraction.start_lookahead"
	keyMinConfidence     = "validation.min_confidence"
	keyMatchingPresets   = "matching.presets"
	keyMatchingLimit     = "matching.limit"
	keyVendorsPath       = "catalog.vendors_path"
	keyMedicinesPath     = "catalog.medicines_path"
	keyPipelineStages    = "pipeline.stages"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMModel          = "llm.model"
	keyLLMRequestsPerSec = "llm.requests_per_second"
	keyStorageDataDir    = "storage.data_dir"
	keyStagePrefix       = "pipeline."
)

// settingKeys lists the user-settable keys in display order.
var settingKeys = []string{
	keyExtractionMode, keyDefaultForm, keyDefaultUnit, keyTableUnit,
	keyBlankRunLimit, keyStartLookahead,
	keyMinConfidence,
	keyMatchingPresets, keyMatchingLimit,
	keyVendorsPath, keyMedicinesPath,
	keyPipelineStages,
	keyLLMAPIKey, keyLLMBaseURL, keyLLMModel, keyLLMRequestsPerSec,
	keyStorageDataDir,
}

// stageOptions lists the per-stage option keys read from "pipeline.<stage>.<option>".
var stageOptions = map[string][]string{
	"classify":  {"overwrite"},
	"authorize": {"min_confidence", "drop_rejected"},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves current settings, applying defaults for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings, err := LoadSettings(s.configStore)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Keys returns the supported setting keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Set validates and persists a single setting by its dotted key.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyExtractionMode:
		mode, err := domain.ParseExtractionMode(value)
		if err != nil {
			return fmt.Errorf("%w: extraction mode %q (want auto, text or table)", domain.ErrInvalidInput, value)
		}
		stored = string(mode)
	case keyBlankRunLimit, keyStartLookahead, keyMatchingLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case keyMinConfidence:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1]", domain.ErrInvalidInput, key)
		}
		stored = f
	case keyLLMRequestsPerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, key)
		}
		stored = f
	case keyMatchingPresets:
		presets := splitList(value)
		for _, p := range presets {
			if _, ok := scoring.Presets[p]; !ok {
				return fmt.Errorf("%w: unknown preset %q (known: %s)",
					domain.ErrInvalidInput, p, strings.Join(scoring.PresetNames(), ", "))
			}
		}
		stored = presets
	case keyPipelineStages:
		stored = splitList(value)
	case keyDefaultForm, keyDefaultUnit, keyTableUnit, keyVendorsPath, keyMedicinesPath,
		keyLLMAPIKey, keyLLMBaseURL, keyLLMModel, keyStorageDataDir:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// LoadSettings resolves settings from a config store. Unset or invalid
// values fall back to defaults, except an unknown extraction mode which
// is reported.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if store == nil {
		return settings, nil
	}

	mode, err := domain.ParseExtractionMode(store.GetString(keyExtractionMode))
	if err != nil {
		return settings, fmt.Errorf("%s: %w", keyExtractionMode, err)
	}
	settings.Extraction.Mode = mode
	settings.Extraction.DefaultForm = stringOr(store, keyDefaultForm, settings.Extraction.DefaultForm)
	settings.Extraction.DefaultUnit = stringOr(store, keyDefaultUnit, settings.Extraction.DefaultUnit)
	settings.Extraction.TableUnit = stringOr(store, keyTableUnit, settings.Extraction.TableUnit)
	settings.Extraction.BlankRunLimit = positiveIntOr(store, keyBlankRunLimit, settings.Extraction.BlankRunLimit)
	settings.Extraction.StartLookahead = positiveIntOr(store, keyStartLookahead, settings.Extraction.StartLookahead)

	if f := store.GetFloat(keyMinConfidence); f > 0 && f <= 1 {
		settings.Validation.MinConfidence = f
	}

	settings.Matching.Presets = store.GetStringSlice(keyMatchingPresets)
	settings.Matching.Limit = positiveIntOr(store, keyMatchingLimit, settings.Matching.Limit)

	settings.Catalog.VendorsPath = store.GetString(keyVendorsPath)
	settings.Catalog.MedicinesPath = store.GetString(keyMedicinesPath)

	if _, ok := store.Get(keyPipelineStages); ok {
		settings.Pipeline.Stages = store.GetStringSlice(keyPipelineStages)
	}
	settings.Pipeline.StageConfig = stageConfig(store)

	settings.LLM.APIKey = store.GetString(keyLLMAPIKey)
	settings.LLM.BaseURL = store.GetString(keyLLMBaseURL)
	settings.LLM.Model = store.GetString(keyLLMModel)
	if f := store.GetFloat(keyLLMRequestsPerSec); f > 0 {
		settings.LLM.RequestsPerSecond = f
	}

	settings.Storage.DataDir = store.GetString(keyStorageDataDir)
	return settings, nil
}

func stageConfig(store driven.ConfigStore) map[string]map[string]any {
	configs := make(map[string]map[string]any)
	for stage, options := range stageOptions {
		for _, opt := range options {
			val, ok := store.Get(keyStagePrefix + stage + "." + opt)
			if !ok {
				continue
			}
			if configs[stage] == nil {
				configs[stage] = make(map[string]any)
			}
			configs[stage][opt] = val
		}
	}
	return configs
}

func stringOr(store driven.ConfigStore, key, fallback string) string {
	if v := store.GetString(key); v != "" {
		return v
	}
	return fallback
}

func positiveIntOr(store driven.ConfigStore, key string, fallback int) int {
	if n := store.GetInt(key); n > 0 {
		return n
	}
	return fallback
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
