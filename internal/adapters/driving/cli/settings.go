package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change extraction, validation, matching, catalog, pipeline,
LLM and storage settings. Settings are stored in config.toml inside the
configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validate and store a single setting. Lists are comma-separated.

Examples:
  medrfq settings set extraction.mode table
  medrfq settings set matching.presets resource-saving,time
  medrfq settings set catalog.vendors_path ./master_index.json`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Extraction]")
	cmd.Printf("  Mode: %s\n", settings.Extraction.Mode)
	cmd.Printf("  Default form: %s\n", settings.Extraction.DefaultForm)
	cmd.Printf("  Default unit: %s\n", settings.Extraction.DefaultUnit)
	cmd.Printf("  Table default unit: %s\n", settings.Extraction.TableUnit)
	cmd.Printf("  Blank run limit: %d\n", settings.Extraction.BlankRunLimit)
	cmd.Printf("  Start lookahead: %d\n", settings.Extraction.StartLookahead)
	cmd.Println()

	cmd.Println("[Validation]")
	cmd.Printf("  Min confidence: %.2f\n", settings.Validation.MinConfidence)
	cmd.Println()

	cmd.Println("[Matching]")
	presets := "balanced"
	if len(settings.Matching.Presets) > 0 {
		presets = strings.Join(settings.Matching.Presets, ", ")
	}
	cmd.Printf("  Presets: %s\n", presets)
	cmd.Printf("  Limit: %d\n", settings.Matching.Limit)
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Vendors: %s\n", orUnset(settings.Catalog.VendorsPath))
	cmd.Printf("  Medicines: %s\n", orUnset(settings.Catalog.MedicinesPath))
	cmd.Println()

	cmd.Println("[Pipeline]")
	stages := "(none)"
	if len(settings.Pipeline.Stages) > 0 {
		stages = strings.Join(settings.Pipeline.Stages, " -> ")
	}
	cmd.Printf("  Stages: %s\n", stages)
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Model: %s\n", orUnset(settings.LLM.Model))
	cmd.Printf("  Base URL: %s\n", orUnset(settings.LLM.BaseURL))
	cmd.Printf("  Requests/sec: %.2f\n", settings.LLM.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data dir: %s\n", orUnset(settings.Storage.DataDir))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.HasSuffix(key, "api_key") {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
