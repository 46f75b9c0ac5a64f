package lineitems

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/logger"
	"github.com/custodia-labs/medrfq/internal/rows"
)

// maxUnitCellLen is the exclusive length bound for a unit cell.
const maxUnitCellLen = 25

var (
	itemNumberCellRe = regexp.MustCompile(`^\d+\.?$`)
	numericCellRe    = regexp.MustCompile(`^\d+$`)
)

// extractRows runs table mode over structured rows. Each data row inside the
// bounded section is anchored on its right-most quantity cell.
func (e *Extractor) extractRows(tableRows []domain.TableRow) []domain.LineItem {
	texts := make([]string, len(tableRows))
	for i, r := range tableRows {
		texts[i] = rows.Join(r.Cells)
	}
	sec := FindSection(texts, e.opts.StartLookahead)
	logger.Debug("table section: rows %d-%d (marker %d)", sec.Start, sec.End, sec.Marker)

	items := []domain.LineItem{}
	var skipped logger.Tally
	for i := sec.Start; i < sec.End; i++ {
		cells := rows.CleanCells(tableRows[i].Cells)
		if len(cells) == 0 {
			continue
		}
		if kind := rows.Classify(texts[i]); kind != rows.KindData {
			logger.Debug("row %d: skipped %s", i, kind)
			skipped.Skip(kind.String())
			continue
		}

		item, err := parseRow(cells, len(items)+1, e.opts)
		if err != nil {
			logger.Debug("row %d: skipped: %v", i, err)
			skipped.Skip("unparsable")
			continue
		}
		items = append(items, item)
	}
	skipped.Report("table mode")
	return items
}

// parseRow builds a line item from one row's cleaned cells.
// Panics are recovered and reported as errors.
func parseRow(cells []string, ordinal int, opts Options) (item domain.LineItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse row: %v", r)
		}
	}()

	rowText := strings.Join(cells, " ")

	descIndex := 0
	if itemNumberCellRe.MatchString(cells[0]) && len(cells) > 1 {
		descIndex = 1
	}
	description := cells[descIndex]
	if numericCellRe.MatchString(description) {
		return domain.LineItem{}, fmt.Errorf("%w: numeric description %q", domain.ErrInvalidInput, description)
	}

	// The quantity sits right of the description, never in the item-number
	// column. A numbered row is evidence enough for a year-like quantity.
	numbered := descIndex == 1
	qtyIndex, qty := -1, 0
	for i := len(cells) - 1; i > descIndex; i-- {
		n, ok := parseQuantity(cells[i])
		if !ok || n >= domain.DefaultQuantityCeiling {
			continue
		}
		if !numbered && !plausibleQuantity(n, rowText) {
			continue
		}
		qtyIndex, qty = i, n
		break
	}
	if qtyIndex < 0 {
		return domain.LineItem{}, fmt.Errorf("%w: no quantity cell", domain.ErrInvalidInput)
	}

	unit := opts.TableUnit
	if qtyIndex-1 > descIndex {
		if candidate := cells[qtyIndex-1]; len(candidate) < maxUnitCellLen && candidate != description {
			unit = candidate
		}
	}

	number := ordinal
	if descIndex == 1 {
		if n, convErr := strconv.Atoi(strings.TrimSuffix(cells[0], ".")); convErr == nil && n > 0 {
			number = n
		}
	}

	var rest []string
	for i, c := range cells {
		if i != qtyIndex && !(descIndex == 1 && i == 0) {
			rest = append(rest, c)
		}
	}
	text := strings.Join(rest, " ")
	description = strings.TrimSpace(strings.Trim(description, "."))

	item = domain.LineItem{
		ItemNumber:     number,
		Dosage:         domain.DosageNotAvailable,
		Form:           opts.DefaultForm,
		UnitOfIssue:    unit,
		Quantity:       qty,
		GenericAllowed: GenericAllowed(text),
	}

	var dosage *Match
	if m, ok := Apply(DosageRules, description); ok {
		item.Dosage = m.Value
		dosage = &m
	} else if m, ok := Apply(DosageRules, text); ok {
		item.Dosage = m.Value
	}
	if m, ok := Apply(FormRules, text); ok {
		item.Form = m.Value
	}

	item.Name = description
	if dosage != nil {
		item.Name = Name(description, dosage)
	}
	if err := checkName(item.Name); err != nil {
		return domain.LineItem{}, err
	}
	item.BrandName = Brand(text, item.Name)
	return item, nil
}
