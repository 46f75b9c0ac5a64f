package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
)

var (
	extractMode   string
	extractStages []string
	extractDryRun bool
	extractJSON   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract line items from an RFQ file",
	Long: `Reads an RFQ document (PDF, Word, plain text or CSV), extracts its line items
and header metadata, runs the configured pipeline stages and stores the result.

Modes:
  auto  - table extraction for structured rows, text otherwise (default)
  text  - line-oriented text heuristics
  table - column-aware row extraction

Examples:
  medrfq extract rfq.pdf
  medrfq extract rfq.pdf --mode text --stages dedupe,classify,authorize
  medrfq extract rfq.txt --dry-run --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractMode, "mode", "m", "", "extraction mode: auto, text or table")
	extractCmd.Flags().StringSliceVar(&extractStages, "stages", nil, "pipeline stages to run (overrides settings)")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "extract without storing the document")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	opts := driving.ExtractOptions{DryRun: extractDryRun}
	if extractMode != "" {
		mode, err := domain.ParseExtractionMode(extractMode)
		if err != nil {
			return fmt.Errorf("invalid mode %q: want auto, text or table", extractMode)
		}
		opts.Mode = mode
	}
	if cmd.Flags().Changed("stages") {
		opts.Stages = append([]string{}, extractStages...)
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := extractionService.Extract(cmd.Context(), &domain.RawDocument{
		Filename: filepath.Base(path),
		Content:  content,
	}, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractJSON {
		return printJSON(cmd, doc)
	}

	printDocument(cmd, doc)
	if extractDryRun {
		cmd.Println(muted(cmd, "Dry run: document not stored."))
	}
	return nil
}

// printDocument prints a document header and its line items.
func printDocument(cmd *cobra.Command, doc *domain.RFQDocument) {
	cmd.Println(title(cmd, "Document: "+doc.ID))
	cmd.Printf("  File:       %s\n", doc.Filename)
	cmd.Printf("  Mode:       %s\n", doc.Mode)
	cmd.Printf("  Pages:      %d\n", doc.Pages)
	if doc.Metadata.RFQID != "" {
		cmd.Printf("  RFQ ID:     %s\n", doc.Metadata.RFQID)
	}
	if doc.Metadata.IssuerOrg != "" {
		cmd.Printf("  Issuer:     %s\n", doc.Metadata.IssuerOrg)
	}
	if doc.Metadata.SubmissionDeadline != "" {
		cmd.Printf("  Deadline:   %s\n", doc.Metadata.SubmissionDeadline)
	}
	if !doc.ExtractedAt.IsZero() {
		cmd.Printf("  Extracted:  %s\n", doc.ExtractedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Println()

	if len(doc.LineItems) == 0 {
		cmd.Println("No line items found.")
		return
	}

	rows := make([][]string, len(doc.LineItems))
	for i, item := range doc.LineItems {
		rows[i] = []string{
			strconv.Itoa(item.ItemNumber),
			item.Name,
			orNA(item.Dosage),
			orNA(item.Form),
			orNA(item.UnitOfIssue),
			strconv.Itoa(item.Quantity),
			orNA(string(item.Category)),
			authorizedLabel(cmd, item.Validation),
		}
	}
	cmd.Println(renderTable(cmd,
		[]string{"#", "Name", "Dosage", "Form", "Unit", "Qty", "Category", "Authorized"}, rows))
	cmd.Printf("Total: %d line items\n", len(doc.LineItems))
}

func authorizedLabel(cmd *cobra.Command, v *domain.ItemValidation) string {
	if v == nil {
		return "-"
	}
	return status(cmd, v.Authorized, fmt.Sprintf("yes (%.2f)", v.Confidence), fmt.Sprintf("no (%.2f)", v.Confidence))
}
