package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

var (
	vendorsCategory string
	vendorsJSON     bool
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List eligible vendors",
	Long: `Lists vendors from the vendor catalog that are eligible for a category.
Without --category every vendor with an identifier is listed.`,
	Args: cobra.NoArgs,
	RunE: runVendors,
}

func init() {
	vendorsCmd.Flags().StringVarP(&vendorsCategory, "category", "c", "",
		`category: "Pharmaceuticals", "Medical Supplies" or "Medical Equipment"`)
	vendorsCmd.Flags().BoolVar(&vendorsJSON, "json", false, "output vendors as JSON")
	rootCmd.AddCommand(vendorsCmd)
}

func runVendors(cmd *cobra.Command, _ []string) error {
	if matchingService == nil {
		return errors.New("matching service not configured")
	}

	vendors, err := matchingService.Vendors(cmd.Context(), domain.Category(vendorsCategory))
	if err != nil {
		return fmt.Errorf("failed to list vendors: %w", err)
	}

	if vendorsJSON {
		return printJSON(cmd, vendors)
	}

	if len(vendors) == 0 {
		cmd.Println("No vendors found.")
		return nil
	}

	rows := make([][]string, len(vendors))
	for i, v := range vendors {
		rows[i] = []string{
			v.VendorID,
			v.DisplayName(),
			v.Country(),
			orNA(strings.Join(v.PrimaryCategories, ", ")),
		}
	}
	cmd.Println(renderTable(cmd, []string{"ID", "Name", "Country", "Categories"}, rows))
	cmd.Printf("Total: %d vendors\n", len(vendors))
	return nil
}
