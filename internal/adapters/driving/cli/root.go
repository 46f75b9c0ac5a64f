// Package cli provides the command-line interface for medrfq.
package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by commands. Set by SetServices or by the bootstrap hook.
var (
	extractionService driving.ExtractionService
	validationService driving.ValidationService
	matchingService   driving.MatchingService
	documentService   driving.DocumentService
	settingsService   driving.SettingsService
)

// Services bundles the driving ports the commands use.
type Services struct {
	Extraction driving.ExtractionService
	Validation driving.ValidationService
	Matching   driving.MatchingService
	Document   driving.DocumentService
	Settings   driving.SettingsService
}

// Bootstrap builds services once global flags are parsed. The returned
// close function releases resources such as the document database.
type Bootstrap func(configDir string) (*Services, func() error, error)

var (
	bootstrap     Bootstrap
	closeServices func() error
)

// Global flags.
var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "medrfq",
	Short: "Extract and evaluate medical RFQ documents",
	Long: `medrfq extracts line items from medical Requests for Quotation,
validates requested medicines against an authorized reference list,
and ranks candidate vendors for every item.

Extracted documents are stored locally and can be exported, confirmed
against expected lines, or reviewed by an LLM.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.medrfq)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs the services used by commands.
func SetServices(s Services) {
	extractionService = s.Extraction
	validationService = s.Validation
	matchingService = s.Matching
	documentService = s.Document
	settingsService = s.Settings
}

// SetBootstrap installs a hook that builds services before any command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("closing services: %v", cerr)
		}
		closeServices = nil
	}
	return err
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// A .env in the working directory may carry API keys.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}

	if bootstrap == nil {
		return nil
	}
	services, closer, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	SetServices(*services)
	closeServices = closer
	return nil
}
