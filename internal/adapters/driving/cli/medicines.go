package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	medicinesLimit int
	medicinesJSON  bool
)

var medicinesCmd = &cobra.Command{
	Use:   "medicines",
	Short: "Query the authorized medicines list",
}

var medicinesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the authorized medicines list",
	Long: `Finds authorized reference entries whose name contains the query or is
similar to it, best match first.`,
	Args: cobra.ExactArgs(1),
	RunE: runMedicinesSearch,
}

func init() {
	medicinesSearchCmd.Flags().IntVarP(&medicinesLimit, "limit", "n", 10, "maximum number of results")
	medicinesSearchCmd.Flags().BoolVar(&medicinesJSON, "json", false, "output results as JSON")
	medicinesCmd.AddCommand(medicinesSearchCmd)
	rootCmd.AddCommand(medicinesCmd)
}

func runMedicinesSearch(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	results, err := validationService.Search(cmd.Context(), args[0], medicinesLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if medicinesJSON {
		return printJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Printf("No authorized medicines match %q (%d entries searched).\n", args[0], validationService.DatabaseSize())
		return nil
	}

	rows := make([][]string, len(results))
	for i, m := range results {
		rows[i] = []string{m.INNName, orNA(m.Brand), m.Dosage, m.Form}
	}
	cmd.Println(renderTable(cmd, []string{"INN", "Brand", "Dosage", "Form"}, rows))
	cmd.Printf("Total: %d of %d entries\n", len(results), validationService.DatabaseSize())
	return nil
}
