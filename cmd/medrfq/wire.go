package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/medrfq/internal/acquirers"
	"github.com/custodia-labs/medrfq/internal/acquirers/docx"
	"github.com/custodia-labs/medrfq/internal/acquirers/pdf"
	"github.com/custodia-labs/medrfq/internal/acquirers/plaintext"
	"github.com/custodia-labs/medrfq/internal/adapters/driven/catalog"
	"github.com/custodia-labs/medrfq/internal/adapters/driven/config/file"
	"github.com/custodia-labs/medrfq/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/medrfq/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medrfq/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/medrfq/internal/adapters/driving/cli"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/core/services"
	"github.com/custodia-labs/medrfq/internal/lineitems"
	"github.com/custodia-labs/medrfq/internal/logger"
	"github.com/custodia-labs/medrfq/internal/medicines"
	"github.com/custodia-labs/medrfq/internal/pipeline"
	"github.com/custodia-labs/medrfq/internal/scoring"
)

// apiKeyEnv lists environment variables that override llm.api_key, highest priority first.
var apiKeyEnv = []string{"MEDRFQ_OPENAI_API_KEY", "OPENAI_API_KEY"}

// bootstrap builds the application services from the configuration directory.
func bootstrap(configDir string) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settings, err := services.LoadSettings(configStore)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}
	applyEnv(&settings, os.Getenv)
	if settings.Storage.DataDir == "" && configDir != "" {
		settings.Storage.DataDir = filepath.Join(configDir, "data")
	}

	snapshot, err := catalog.NewCached(
		catalog.NewLoader(settings.Catalog.VendorsPath, settings.Catalog.MedicinesPath),
	).Load(context.Background())
	if err != nil {
		logger.Warn("reference catalog: %v", err)
	}
	logger.Debug("catalog: %d vendors, %d authorized medicines", len(snapshot.Vendors), len(snapshot.Medicines))

	validator := medicines.New(snapshot.Medicines, settings.Validation.MinConfidence)
	stages := pipeline.NewRegistry()
	pipeline.RegisterDefaults(stages, validator)

	store, closeStore := openStore(settings.Storage.DataDir)

	extraction := services.NewExtractionService(
		acquirers.NewRegistry(pdf.New(), docx.New(), plaintext.New(), plaintext.NewCSV()),
		lineitems.New(lineitems.FromSettings(settings.Extraction)),
		stages,
		store,
		settings.Pipeline,
	)

	return &cli.Services{
		Extraction: extraction,
		Validation: services.NewValidationService(validator),
		Matching:   services.NewMatchingService(snapshot.Vendors, scoring.HashEnrichment{}, settings.Matching),
		Document:   services.NewDocumentService(store, newReviewer(settings.LLM, configDir)),
		Settings:   services.NewSettingsService(configStore),
	}, closeStore, nil
}

// applyEnv lets environment variables override the stored API key.
func applyEnv(settings *domain.Settings, getenv func(string) string) {
	for _, name := range apiKeyEnv {
		if key := getenv(name); key != "" {
			settings.LLM.APIKey = key
			return
		}
	}
}

// openStore opens the SQLite document store, falling back to memory.
func openStore(dataDir string) (driven.RFQStore, func() error) {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("document store unavailable, documents will not persist: %v", err)
		return memory.NewRFQStore(), func() error { return nil }
	}
	logger.Debug("document store: %s", store.Path())
	return store, store.Close
}

// newReviewer returns the LLM reviewer, or nil when no API key is configured.
func newReviewer(cfg domain.LLMSettings, configDir string) driven.Reviewer {
	reviewer, err := openai.NewReviewer(openai.Config{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Model:             cfg.Model,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		logger.Debug("reviewer disabled: %v", err)
		return nil
	}

	promptDir := ""
	if configDir != "" {
		promptDir = filepath.Join(configDir, "prompts")
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		logger.Warn("prompt store: %v", err)
		return reviewer
	}
	reviewer.SetPromptStore(prompts)
	return reviewer
}
