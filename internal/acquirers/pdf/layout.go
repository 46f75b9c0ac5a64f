package pdf

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Layout holds the tolerances used to rebuild rows and cells.
type Layout struct {
	// RowTolerance is the largest baseline difference within one row.
	RowTolerance float64

	// CellGap is the horizontal gap, in multiples of the font size, that starts a new cell.
	CellGap float64

	// WordGap is the gap, in multiples of the font size, that inserts a space.
	WordGap float64
}

// DefaultLayout returns tolerances that suit typical tender tables.
func DefaultLayout() Layout {
	return Layout{RowTolerance: 2.0, CellGap: 1.5, WordGap: 0.15}
}

type line struct {
	y    float64
	runs []pdf.Text
}

// Rows groups the text runs of one page into table rows, top to bottom.
func (l Layout) Rows(texts []pdf.Text, page int) []domain.TableRow {
	var lines []line
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		placed := false
		for i := range lines {
			if abs(lines[i].y-t.Y) < l.RowTolerance {
				lines[i].runs = append(lines[i].runs, t)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: t.Y, runs: []pdf.Text{t}})
		}
	}

	// PDF coordinates grow upwards.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	rows := make([]domain.TableRow, 0, len(lines))
	for _, ln := range lines {
		if cells := l.cells(ln.runs); len(cells) > 0 {
			rows = append(rows, domain.TableRow{Page: page, Cells: cells})
		}
	}
	return rows
}

// cells splits one line's runs into cells at wide horizontal gaps.
func (l Layout) cells(runs []pdf.Text) []string {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var cells []string
	var cur strings.Builder
	flush := func() {
		if s := strings.Join(strings.Fields(cur.String()), " "); s != "" {
			cells = append(cells, s)
		}
		cur.Reset()
	}

	for i, r := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := r.X - (prev.X + prev.W)
			size := prev.FontSize
			if size <= 0 {
				size = 1
			}
			switch {
			case gap > l.CellGap*size:
				flush()
			case gap > l.WordGap*size:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(r.S)
	}
	flush()
	return cells
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
