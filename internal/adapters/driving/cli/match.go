package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/scoring"
)

var (
	matchDocument string
	matchPresets  []string
	matchLimit    int
	matchQuantity int
	matchJSON     bool
)

var matchCmd = &cobra.Command{
	Use:   "match [medicine...]",
	Short: "Rank vendors for RFQ line items",
	Long: `Finds eligible vendors for each line item and ranks them by quantity,
landed cost, delivery time, quality and reliability. Presets shift the
weights; several presets are averaged.

Items come from a stored document (--document) or from medicine names
given as arguments, each requested in --quantity units.

Examples:
  medrfq match --document 3f2b... --preset resource-saving
  medrfq match "Paracetamol 500 mg" "Ibuprofen 200 mg" --quantity 500 --limit 3`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchDocument, "document", "d", "", "rank vendors for a stored document")
	matchCmd.Flags().StringSliceVarP(&matchPresets, "preset", "p", nil,
		"weight presets: "+strings.Join(scoring.PresetNames(), ", "))
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 0, "maximum vendors per item (default from settings)")
	matchCmd.Flags().IntVarP(&matchQuantity, "quantity", "q", 1, "requested quantity for named medicines")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matchingService == nil {
		return errors.New("matching service not configured")
	}

	items, err := matchItems(cmd, args)
	if err != nil {
		return err
	}

	results, err := matchingService.MatchItems(cmd.Context(), items, matchPresets, matchLimit)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if matchJSON {
		return printJSON(cmd, results)
	}

	for i := range results {
		printMatchResult(cmd, &results[i])
	}
	return nil
}

func matchItems(cmd *cobra.Command, args []string) ([]domain.LineItem, error) {
	if matchDocument != "" {
		if documentService == nil {
			return nil, errors.New("document service not configured")
		}
		doc, err := documentService.Get(cmd.Context(), matchDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to get document: %w", err)
		}
		return doc.LineItems, nil
	}

	if len(args) == 0 {
		return nil, errors.New("provide medicine names or --document")
	}
	items := make([]domain.LineItem, len(args))
	for i, name := range args {
		items[i] = domain.LineItem{ItemNumber: i + 1, Name: name, Quantity: matchQuantity}
	}
	return items, nil
}

func printMatchResult(cmd *cobra.Command, r *domain.MatchResult) {
	cmd.Println(title(cmd, fmt.Sprintf("%s (qty %d)", r.Medicine, r.Quantity)))
	cmd.Printf("  Presets: %s\n", strings.Join(r.Preferences, ", "))
	cmd.Printf("  Vendors found: %d\n", r.TotalVendorsFound)

	if r.TopVendor == nil {
		cmd.Println("  No eligible vendors.")
		cmd.Println()
		return
	}

	candidates := append([]domain.VendorCandidate{*r.TopVendor}, r.OtherVendors...)
	rows := make([][]string, len(candidates))
	for i, c := range candidates {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			c.DisplayName,
			c.Country,
			fmt.Sprintf("%.4f", c.Score),
			fmt.Sprintf("%.2f", c.LandedCost),
			strconv.Itoa(c.DeliveryDays),
			strconv.Itoa(c.AvailableQty),
		}
	}
	cmd.Println(renderTable(cmd, []string{"Rank", "Vendor", "Country", "Score", "Cost", "Days", "Available"}, rows))
	cmd.Println()
}
