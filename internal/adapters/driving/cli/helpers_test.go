package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/acquirers"
	"github.com/custodia-labs/medrfq/internal/acquirers/plaintext"
	"github.com/custodia-labs/medrfq/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/services"
	"github.com/custodia-labs/medrfq/internal/lineitems"
	"github.com/custodia-labs/medrfq/internal/medicines"
	"github.com/custodia-labs/medrfq/internal/pipeline"
)

const rfqText = `REQUEST FOR QUOTATION
RFQ No: MOH/2025/017
1 Paracetamol 500 mg Tab 100
2 Amoxicillin 250 mg Capsule 50
1 Paracetamol 500 mg Tab 100`

// testStore is the document store behind the services installed by setupTestServices.
var testStore *memory.RFQStore

func ptr[T any](v T) *T { return &v }

func testVendor(id string, category string, cost float64) domain.VendorRecord {
	return domain.VendorRecord{
		VendorID:          id,
		LegalName:         id + " Ltd",
		CountriesServed:   []string{"Kenya"},
		PrimaryCategories: []string{category},
		ConfidenceScore:   80,
		AvailableQty:      ptr(500),
		LandedCost:        ptr(cost),
		DeliveryDays:      ptr(7),
		ReliabilityScore:  ptr(8.0),
	}
}

func sampleDocument() *domain.RFQDocument {
	return &domain.RFQDocument{
		ID:       "doc-1",
		Filename: "rfq.pdf",
		Mode:     domain.ModeTable,
		Pages:    2,
		Metadata: domain.Metadata{RFQID: "RFQ-2025-001"},
		LineItems: []domain.LineItem{
			{ItemNumber: 1, Name: "Paracetamol", Dosage: "500 mg", Form: "Tablet", UnitOfIssue: "Box", Quantity: 100,
				Category: domain.CategoryPharmaceuticals},
			{ItemNumber: 2, Name: "Amoxicillin", Dosage: "250 mg", Form: "Capsule", UnitOfIssue: "Box", Quantity: 50,
				Category: domain.CategoryPharmaceuticals},
		},
		ExtractedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

// setupTestServices installs real services over in-memory stores and
// returns a cleanup func that removes them and resets command flags.
func setupTestServices() func() {
	testStore = memory.NewRFQStore()
	_ = testStore.Save(context.Background(), sampleDocument())

	validator := medicines.New([]domain.AuthorizedMedicine{
		{INNName: "Paracetamol"},
		{INNName: "Amoxicillin"},
		{INNName: "Ibuprofen"},
	}, 0)

	stages := pipeline.NewRegistry()
	pipeline.RegisterDefaults(stages, validator)

	SetServices(Services{
		Extraction: services.NewExtractionService(
			acquirers.NewRegistry(plaintext.New(), plaintext.NewCSV()),
			lineitems.New(lineitems.Options{Mode: domain.ModeText}),
			stages,
			testStore,
			domain.PipelineSettings{Stages: []string{"dedupe", "classify"}},
		),
		Validation: services.NewValidationService(validator),
		Matching: services.NewMatchingService([]domain.VendorRecord{
			testVendor("V-CHEAP", "Pharmaceuticals", 10),
			testVendor("V-DEAR", "Pharmaceuticals", 50),
			testVendor("V-SUP", "Medical Supplies", 20),
		}, nil, domain.MatchingSettings{}),
		Document: services.NewDocumentService(testStore, nil),
		Settings: services.NewSettingsService(memory.NewConfigStore(nil)),
	})

	return func() {
		SetServices(Services{})
		testStore = nil
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default so tests sharing rootCmd
// do not leak flag values into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs rootCmd with args and returns combined output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
