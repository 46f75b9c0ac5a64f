package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/adapters/driving/watch"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
)

var (
	watchMode   string
	watchSettle time.Duration
	watchDryRun bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Extract RFQ files dropped into a directory",
	Long: `Watches an inbox directory and extracts every supported RFQ file that is
created or rewritten there. Hidden files are ignored. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "", "extraction mode: auto, text or table")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "quiet period before a changed file is extracted")
	watchCmd.Flags().BoolVar(&watchDryRun, "dry-run", false, "extract without storing documents")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	opts := driving.ExtractOptions{DryRun: watchDryRun}
	if watchMode != "" {
		mode, err := domain.ParseExtractionMode(watchMode)
		if err != nil {
			return fmt.Errorf("invalid mode %q: want auto, text or table", watchMode)
		}
		opts.Mode = mode
	}

	dir := args[0]
	w := watch.New(dir, extractionService,
		watch.WithSettle(watchSettle),
		watch.WithExtractOptions(opts),
		watch.WithHandler(func(path string, doc *domain.RFQDocument) {
			cmd.Printf("%s: %d line items (%s)\n", filepath.Base(path), len(doc.LineItems), doc.ID)
		}),
	)
	defer w.Close()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return w.Run(cmd.Context())
}
