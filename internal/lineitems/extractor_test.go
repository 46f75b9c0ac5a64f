package lineitems

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

func textDoc(lines ...string) *domain.AcquiredDocument {
	return &domain.AcquiredDocument{Text: strings.Join(lines, "\n")}
}

func names(items []domain.LineItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestExtract_SectionBoundingDropsAnnex(t *testing.T) {
	e := New(Options{Mode: domain.ModeText})

	res := e.Extract(textDoc(
		"1 Paracetamol 500 mg Tab 100",
		"ANNEX 2",
		"2 Click or tap here to enter text 5",
	))

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, 1, item.ItemNumber)
	assert.Equal(t, "Paracetamol", item.Name)
	assert.Equal(t, "500 mg", item.Dosage)
	assert.Equal(t, "Tablet", item.Form)
	assert.Equal(t, "Box", item.UnitOfIssue)
	assert.Equal(t, 100, item.Quantity)
	assert.Equal(t, domain.BrandGenericAllowed, item.BrandName)
	assert.False(t, item.GenericAllowed)
	assert.Equal(t, domain.ModeText, res.Mode)
}

func TestExtract_MultiLineContinuation(t *testing.T) {
	e := New(Options{Mode: domain.ModeText})

	res := e.Extract(textDoc("3 Amoxicillin", "250 mg Capsule", "Box 50"))

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, 3, item.ItemNumber)
	assert.Equal(t, "Amoxicillin", item.Name)
	assert.Equal(t, "250 mg", item.Dosage)
	assert.Equal(t, "Capsule", item.Form)
	assert.Equal(t, "Box", item.UnitOfIssue)
	assert.Equal(t, 50, item.Quantity)
}

func TestExtract_NoiseRowDropped(t *testing.T) {
	e := New(Options{Mode: domain.ModeText})

	res := e.Extract(textDoc(
		"1 Paracetamol 500 mg Tab 100",
		"Signature: ___ Date: ___",
		"2 Ibuprofen 400 mg Tablet 50",
	))

	require.Len(t, res.Items, 2)
	assert.Equal(t, 100, res.Items[0].Quantity)
	assert.Equal(t, "Ibuprofen", res.Items[1].Name)
	assert.Equal(t, 50, res.Items[1].Quantity)
}

func TestMachine_TalliesSkippedLines(t *testing.T) {
	m := newMachine(New(Options{Mode: domain.ModeText}).opts)

	items := m.run([]string{
		"1 Paracetamol 500 mg Tab 100",
		"Signature: ___ Date: ___",
		"2 Ibuprofen 400 mg Tablet 50",
	})

	require.Len(t, items, 2)
	assert.Equal(t, 1, m.skipped.Total())
	assert.Equal(t, "noise 1", m.skipped.String())
}

func TestExtract_YearNeverQuantity(t *testing.T) {
	e := New(Options{Mode: domain.ModeText})

	res := e.Extract(textDoc("1 Paracetamol 500 mg Tab", "2024"))
	require.Len(t, res.Items, 1)
	assert.Zero(t, res.Items[0].Quantity)

	res = e.Extract(textDoc("1 Paracetamol 500 mg Tab 100", "2024"))
	require.Len(t, res.Items, 1)
	assert.Equal(t, 100, res.Items[0].Quantity)

	table := New(Options{Mode: domain.ModeTable})
	res = table.Extract(&domain.AcquiredDocument{Rows: []domain.TableRow{
		{Cells: []string{"Revised", "2024"}},
		{Cells: []string{"2024"}},
	}})
	assert.Empty(t, res.Items)
}

func TestExtract_Idempotent(t *testing.T) {
	e := New(DefaultOptions())
	doc := textDoc(
		"Schedule of Requirements",
		"Item No | International nonproprietary name | Dosage form | Qty",
		"1 Paracetamol 500 mg Tab 100",
		"2 Amoxicillin",
		"250 mg/5 ml Suspension Bottle 40",
		"3 Atorvastatin 20 mg Tablet Lipitor or any other 60",
		"Page 2 of 9",
		"4. Salbutamol 100 mcg Inhaler 30",
		"ANNEX 2",
	)

	first := e.Extract(doc)
	second := e.Extract(doc)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Paracetamol", "Amoxicillin", "Atorvastatin", "Salbutamol"}, names(first.Items))
}

func TestExtract_UncorroboratedPrefixIsContinuation(t *testing.T) {
	e := New(Options{Mode: domain.ModeText})

	res := e.Extract(textDoc(
		"1 Paracetamol 500 mg Tab 100",
		"12 months warranty required",
		"3 Ibuprofen 400 mg Tablet 50",
	))

	require.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Items[0].ItemNumber)
	assert.Equal(t, 3, res.Items[1].ItemNumber)
	assert.Equal(t, 50, res.Items[1].Quantity)
	assert.Equal(t, "Tablet", res.Items[1].UnitOfIssue)
}

func TestExtract_UncorroboratedLinesNeverBecomeItems(t *testing.T) {
	e := New(Options{Mode: domain.ModeText})

	res := e.Extract(textDoc(
		"1 Paracetamol 500 mg Tab 100",
		"2 Bidders may quote for 5",
		"3 copies of the offer",
	))

	require.Len(t, res.Items, 1)
	assert.Equal(t, "Paracetamol", res.Items[0].Name)
}

func TestExtract_BlankRunStops(t *testing.T) {
	lines := []string{"1 Paracetamol 500 mg Tab 100"}
	for i := 0; i < 15; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, "2 Ibuprofen 400 mg Tablet 50")

	res := New(Options{Mode: domain.ModeText}).Extract(textDoc(lines...))
	assert.Equal(t, []string{"Paracetamol"}, names(res.Items))

	shorter := append(append([]string{}, lines[:14]...), "2 Ibuprofen 400 mg Tablet 50")
	res = New(Options{Mode: domain.ModeText}).Extract(textDoc(shorter...))
	assert.Equal(t, []string{"Paracetamol", "Ibuprofen"}, names(res.Items))

	res = New(Options{Mode: domain.ModeText, BlankRunLimit: 3}).Extract(textDoc(shorter...))
	assert.Equal(t, []string{"Paracetamol"}, names(res.Items))
}

func TestExtract_StopMarker(t *testing.T) {
	res := New(Options{Mode: domain.ModeText}).Extract(textDoc(
		"1 Paracetamol 500 mg Tab 100",
		"Payment terms: 30% within 30 days",
		"2 Ibuprofen 400 mg Tablet 50",
	))

	assert.Equal(t, []string{"Paracetamol"}, names(res.Items))
}

func TestExtract_DuplicateItemNumbersTolerated(t *testing.T) {
	res := New(Options{Mode: domain.ModeText}).Extract(textDoc(
		"1 Paracetamol 500 mg Tab 100",
		"1 Paracetamol 500 mg Tab 100",
	))

	require.Len(t, res.Items, 2)
	assert.Equal(t, res.Items[0], res.Items[1])
}

func TestExtract_EmptyInput(t *testing.T) {
	e := New(DefaultOptions())

	res := e.Extract(nil)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)

	res = e.Extract(&domain.AcquiredDocument{})
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestExtract_AutoUsesTableForStructuredRows(t *testing.T) {
	doc := &domain.AcquiredDocument{Rows: []domain.TableRow{
		{Page: 1, Cells: []string{"Schedule of Requirements"}},
		{Page: 1, Cells: []string{"Item No", "Description", "Dosage form", "Unit", "Qty"}},
		{Page: 1, Cells: []string{"1", "Paracetamol 500 mg", "Tablet", "Box", "100"}},
		{Page: 1, Cells: []string{"2.", "Amoxicillin 250 mg/5 ml", "Suspension", "Bottle", "1,200"}},
		{Page: 2, Cells: []string{"Signature:", "", "Date:"}},
		{Page: 2, Cells: []string{"ANNEX 2"}},
		{Page: 2, Cells: []string{"3", "Click or tap here", "5"}},
	}}

	res := New(DefaultOptions()).Extract(doc)

	assert.Equal(t, domain.ModeTable, res.Mode)
	require.Len(t, res.Items, 2)

	first := res.Items[0]
	assert.Equal(t, 1, first.ItemNumber)
	assert.Equal(t, "Paracetamol", first.Name)
	assert.Equal(t, "500 mg", first.Dosage)
	assert.Equal(t, "Tablet", first.Form)
	assert.Equal(t, "Box", first.UnitOfIssue)
	assert.Equal(t, 100, first.Quantity)

	second := res.Items[1]
	assert.Equal(t, 2, second.ItemNumber)
	assert.Equal(t, "Amoxicillin", second.Name)
	assert.Equal(t, "250 mg/5 ml", second.Dosage)
	assert.Equal(t, "Suspension", second.Form)
	assert.Equal(t, "Bottle", second.UnitOfIssue)
	assert.Equal(t, 1200, second.Quantity)
}

func TestExtract_AutoFallsBackToText(t *testing.T) {
	doc := &domain.AcquiredDocument{
		Rows: []domain.TableRow{
			{Cells: []string{"Notes", "see below"}},
			{Cells: []string{"Prepared", "procurement unit"}},
		},
		Text: "1 Paracetamol 500 mg Tab 100",
	}

	res := New(DefaultOptions()).Extract(doc)

	assert.Equal(t, domain.ModeText, res.Mode)
	assert.Equal(t, []string{"Paracetamol"}, names(res.Items))
}

func TestExtractMode_Override(t *testing.T) {
	doc := &domain.AcquiredDocument{Rows: []domain.TableRow{
		{Cells: []string{"1", "Paracetamol 500 mg Tab", "100"}},
	}}
	e := New(Options{Mode: domain.ModeTable})

	res := e.ExtractMode(doc, domain.ModeText)

	assert.Equal(t, domain.ModeText, res.Mode)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 100, res.Items[0].Quantity)
}

func TestNew_FillsDefaults(t *testing.T) {
	opts := New(Options{}).Options()

	assert.Equal(t, domain.ModeAuto, opts.Mode)
	assert.Equal(t, "Tablet", opts.DefaultForm)
	assert.Equal(t, "Box", opts.DefaultUnit)
	assert.Equal(t, "Unit", opts.TableUnit)
	assert.Equal(t, 15, opts.BlankRunLimit)
	assert.Equal(t, 6, opts.StartLookahead)
}
