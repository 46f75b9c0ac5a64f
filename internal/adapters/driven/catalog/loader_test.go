package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

const vendorIndex = `{
  "vendors": [
    {
      "vendor_id": "V-001",
      "legal_name": "Alpha Pharma Ltd",
      "countries_served": ["Kenya"],
      "primary_categories": ["Pharmaceuticals"],
      "specialization_tags": ["generic medicines"],
      "confidence_score": 92,
      "gdp_compliance": true,
      "service_capabilities": {"cold_chain": true},
      "landedCost": 41.5
    },
    {"legal_name": "No Identifier Inc"},
    {"vendor_id": "V-002", "trade_name_dba": "MedSupply"}
  ]
}`

const emaListing = `European public assessment reports,,,
Data extracted on 2024-05-01,,,
Category,Name of medicine,International non-proprietary name (INN) / common name,Medicine status
Human,Panadol,Paracetamol,Authorised
Human,Oldmed,Oldcompound,Withdrawn
Human,Augmentin,Co-amoxiclav, authorised
Human,Nameless,,Authorised
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseVendors(t *testing.T) {
	vendors, err := ParseVendors([]byte(vendorIndex))
	require.NoError(t, err)
	require.Len(t, vendors, 2)

	first := vendors[0]
	assert.Equal(t, "V-001", first.VendorID)
	assert.Equal(t, "Alpha Pharma Ltd", first.DisplayName())
	assert.Equal(t, "Kenya", first.Country())
	assert.True(t, first.ServiceCapabilities.ColdChain)
	require.NotNil(t, first.LandedCost)
	assert.Equal(t, 41.5, *first.LandedCost)
	assert.Nil(t, first.AvailableQty)

	assert.Equal(t, "MedSupply", vendors[1].DisplayName())
	assert.Equal(t, "Unknown", vendors[1].Country())
}

func TestParseVendors_BareArray(t *testing.T) {
	vendors, err := ParseVendors([]byte(`[{"vendor_id": "V-9"}]`))
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "V-9", vendors[0].VendorID)
}

func TestParseVendors_Empty(t *testing.T) {
	vendors, err := ParseVendors([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestParseVendors_Malformed(t *testing.T) {
	_, err := ParseVendors([]byte(`{"vendors": [`))
	assert.Error(t, err)
}

func TestParseMedicines_EMAListing(t *testing.T) {
	medicines, err := ParseMedicines(strings.NewReader(emaListing))
	require.NoError(t, err)
	require.Len(t, medicines, 3)

	assert.Equal(t, domain.AuthorizedMedicine{
		INNName:  "Paracetamol",
		Dosage:   domain.DosageNotAvailable,
		Strength: domain.DosageNotAvailable,
		Form:     domain.DosageNotAvailable,
		Brand:    "Panadol",
	}, medicines[0])
	assert.Equal(t, "Co-amoxiclav", medicines[1].INNName)
	assert.Equal(t, "Nameless", medicines[2].INNName, "brand stands in for a missing INN")
	assert.Empty(t, medicines[2].Brand)
}

func TestParseMedicines_SimpleList(t *testing.T) {
	data := "\ufeffName,Dosage,Strength,Form\nAmoxicillin,250 mg,250 mg,Capsule\n,,,\nIbuprofen,,,Tablet\n"

	medicines, err := ParseMedicines(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, medicines, 2)

	assert.Equal(t, "Amoxicillin", medicines[0].INNName)
	assert.Equal(t, "250 mg", medicines[0].Dosage)
	assert.Equal(t, "Capsule", medicines[0].Form)
	assert.Equal(t, domain.DosageNotAvailable, medicines[1].Dosage)
}

func TestParseMedicines_NoNameColumn(t *testing.T) {
	_, err := ParseMedicines(strings.NewReader("code,price\nA1,10\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseMedicines_EmptyInput(t *testing.T) {
	medicines, err := ParseMedicines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, medicines)
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	vendors := writeFile(t, dir, "master_index.json", vendorIndex)
	medicines := writeFile(t, dir, "medicines.csv", emaListing)

	snap, err := NewLoader(vendors, medicines).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Vendors, 2)
	assert.Len(t, snap.Medicines, 3)
}

func TestLoader_MissingFilesYieldEmptySnapshot(t *testing.T) {
	dir := t.TempDir()

	snap, err := NewLoader(filepath.Join(dir, "nope.json"), "").Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Vendors)
	assert.Empty(t, snap.Medicines)
}

func TestLoader_MalformedFileKeepsOtherPart(t *testing.T) {
	dir := t.TempDir()
	vendors := writeFile(t, dir, "master_index.json", "{broken")
	medicines := writeFile(t, dir, "medicines.csv", emaListing)

	snap, err := NewLoader(vendors, medicines).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Vendors)
	assert.Len(t, snap.Medicines, 3)
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := NewLoader("", "").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, snap)
}

type countingLoader struct {
	calls int
}

func (c *countingLoader) Load(context.Context) (*domain.ReferenceSnapshot, error) {
	c.calls++
	return &domain.ReferenceSnapshot{Vendors: []domain.VendorRecord{{VendorID: "V-1"}}}, nil
}

func TestCached_LoadsOnce(t *testing.T) {
	inner := &countingLoader{}
	cached := NewCached(inner)

	first, err := cached.Load(context.Background())
	require.NoError(t, err)
	second, err := cached.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Same(t, first, second)
}
