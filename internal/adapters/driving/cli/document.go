package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage extracted documents",
	Long:  `List, view, export, confirm, review or delete stored RFQ documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document and its line items",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentExportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export a document as CSV or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentExport,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentConfirmCmd = &cobra.Command{
	Use:   "confirm [doc-id]",
	Short: "Compare extracted items with expected lines",
	Long: `Checks the extracted line items against an expected count and/or expected
normalized lines ("NAME DOSAGE FORM UNIT", one per --line, in order).

Example:
  medrfq document confirm 3f2b... --count 2 \
    --line "Paracetamol 500 mg Tablet Box" --line "Amoxicillin 250 mg Capsule Box"`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentConfirm,
}

var documentReviewCmd = &cobra.Command{
	Use:   "review [doc-id]",
	Short: "Review a document with the configured LLM",
	Long: `Sends the extracted line items and vendor requirements to the configured
chat model, which confirms the item count, checks every line and classifies
the vendor requirements. Requires llm.api_key.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentReview,
}

var (
	documentJSON   bool
	exportFormat   string
	exportOutput   string
	confirmCount   int
	confirmLines   []string
	confirmJSON    bool
	reviewJSON     bool
)

func init() {
	documentListCmd.Flags().BoolVar(&documentJSON, "json", false, "output as JSON")
	documentGetCmd.Flags().BoolVar(&documentJSON, "json", false, "output as JSON")

	documentExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: csv or json")
	documentExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")

	documentConfirmCmd.Flags().IntVar(&confirmCount, "count", -1, "expected number of line items")
	documentConfirmCmd.Flags().StringArrayVar(&confirmLines, "line", nil, "expected normalized line (repeatable)")
	documentConfirmCmd.Flags().BoolVar(&confirmJSON, "json", false, "output as JSON")

	documentReviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "output as JSON")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentExportCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentConfirmCmd)
	documentCmd.AddCommand(documentReviewCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{
			d.ID,
			d.Filename,
			orNA(d.RFQID),
			strconv.Itoa(d.TotalLineItems),
			d.ExtractedAt.Format("2006-01-02 15:04"),
		}
	}
	cmd.Println(renderTable(cmd, []string{"ID", "File", "RFQ ID", "Items", "Extracted"}, rows))
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentJSON {
		return printJSON(cmd, doc)
	}
	printDocument(cmd, doc)
	return nil
}

func runDocumentExport(cmd *cobra.Command, args []string) (err error) {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	format := strings.ToLower(exportFormat)
	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if err := documentService.Export(cmd.Context(), args[0], format, w); err != nil {
		if errors.Is(err, domain.ErrUnknownFormat) {
			return fmt.Errorf("unknown format %q: want csv or json", exportFormat)
		}
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOutput != "" {
		cmd.Printf("Exported %s to %s\n", args[0], exportOutput)
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document: %s\n", args[0])
	return nil
}

func runDocumentConfirm(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if confirmCount < 0 && len(confirmLines) == 0 {
		return errors.New("provide --count and/or --line")
	}

	result, err := documentService.Confirm(cmd.Context(), args[0], confirmCount, confirmLines)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	if confirmJSON {
		return printJSON(cmd, result)
	}

	cmd.Printf("Document: %s\n", result.DocumentID)
	cmd.Printf("  Found:     %d line items\n", result.FoundCount)
	if result.ExpectedCount >= 0 {
		cmd.Printf("  Expected:  %d line items\n", result.ExpectedCount)
	}
	cmd.Printf("  Confirmed: %s\n", status(cmd, result.Confirmed, "yes", "no"))

	if len(result.Mismatches) > 0 {
		cmd.Println()
		rows := make([][]string, len(result.Mismatches))
		for i, m := range result.Mismatches {
			line := "-"
			if m.Index >= 0 {
				line = strconv.Itoa(m.Index + 1)
			}
			rows[i] = []string{line, m.Reason, orNA(m.Expected), orNA(m.Found)}
		}
		cmd.Println(renderTable(cmd, []string{"Line", "Reason", "Expected", "Found"}, rows))
	}
	return nil
}

func runDocumentReview(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	review, err := documentService.Review(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return errors.New("no LLM configured: run 'medrfq settings set llm.api_key <key>'")
		}
		return fmt.Errorf("review failed: %w", err)
	}

	if reviewJSON {
		return printJSON(cmd, review)
	}

	cmd.Printf("Line items: %d\n", review.Total)
	cmd.Printf("Confirmed:  %s\n", status(cmd, review.Confirmed, "yes", "no"))

	if len(review.ValidatedLines) > 0 {
		cmd.Println()
		rows := make([][]string, len(review.ValidatedLines))
		for i, l := range review.ValidatedLines {
			rows[i] = []string{
				strconv.Itoa(l.ItemNumber),
				status(cmd, l.Match, "match", "mismatch"),
				l.NormalizedFound,
				orNA(l.Notes),
			}
		}
		cmd.Println(renderTable(cmd, []string{"#", "Result", "Normalized", "Notes"}, rows))
	}

	printClassification(cmd, "Legal", review.Classifications.Legal)
	printClassification(cmd, "Technical", review.Classifications.Technical)
	printClassification(cmd, "Financial", review.Classifications.Financial)
	printClassification(cmd, "Documents", review.Classifications.Documents)
	return nil
}

func printClassification(cmd *cobra.Command, label string, values []string) {
	if len(values) == 0 {
		return
	}
	cmd.Printf("\n[%s]\n", label)
	for _, v := range values {
		cmd.Printf("  - %s\n", v)
	}
}
