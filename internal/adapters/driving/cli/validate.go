package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/medicines"
)

var (
	validateDocument      string
	validateMinConfidence float64
	validateJSON          bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [medicine...]",
	Short: "Validate medicines against the authorized list",
	Long: `Checks medicine names against the authorized reference list using fuzzy
name matching. Names can be given as arguments or taken from a stored
document with --document.

Examples:
  medrfq validate Paracetamol "Amoxicillin trihydrate"
  medrfq validate --document 3f2b... --min-confidence 0.8`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateDocument, "document", "d", "", "validate the line items of a stored document")
	validateCmd.Flags().Float64Var(&validateMinConfidence, "min-confidence", 0, "authorization threshold in (0, 1] (default from settings)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	queries, err := medicineQueries(cmd, args)
	if err != nil {
		return err
	}

	report, err := validationService.Validate(cmd.Context(), queries, validateMinConfidence)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if validateJSON {
		return printJSON(cmd, report)
	}

	cmd.Println(title(cmd, "Validation Report"))
	cmd.Printf("  Authorized:     %d/%d (%.2f%%)\n", report.AuthorizedCount, report.Total, report.AuthorizationRate)
	cmd.Printf("  Reference list: %d medicines\n", report.DatabaseSize)
	cmd.Println()

	rows := make([][]string, 0, report.Total)
	for _, m := range report.Authorized {
		rows = append(rows, validationRow(cmd, m, true))
	}
	for _, m := range report.Rejected {
		rows = append(rows, validationRow(cmd, m, false))
	}
	if len(rows) > 0 {
		cmd.Println(renderTable(cmd, []string{"Medicine", "Confidence", "Matched", "Status"}, rows))
	}
	return nil
}

func medicineQueries(cmd *cobra.Command, args []string) ([]domain.MedicineQuery, error) {
	if validateDocument != "" {
		if documentService == nil {
			return nil, errors.New("document service not configured")
		}
		doc, err := documentService.Get(cmd.Context(), validateDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to get document: %w", err)
		}
		return medicines.QueriesFromItems(doc.LineItems), nil
	}

	if len(args) == 0 {
		return nil, errors.New("provide medicine names or --document")
	}
	queries := make([]domain.MedicineQuery, len(args))
	for i, name := range args {
		queries[i] = domain.MedicineQuery{Name: name}
	}
	return queries, nil
}

func validationRow(cmd *cobra.Command, m domain.ValidatedMedicine, authorized bool) []string {
	matched := "-"
	if m.MatchedReference != nil {
		matched = m.MatchedReference.INNName
	}
	verdict := status(cmd, authorized, "authorized", "rejected")
	if !authorized && m.RejectionReason != "" {
		verdict += " " + muted(cmd, "("+m.RejectionReason+")")
	}
	return []string{m.Name, fmt.Sprintf("%.2f", m.Confidence), matched, verdict}
}
