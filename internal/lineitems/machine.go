package lineitems

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/logger"
	"github.com/custodia-labs/medrfq/internal/rows"
)

// state is the assembly state of the text-mode machine.
type state int

const (
	// seeking: no item has started yet.
	seeking state = iota
	// accumulating: lines are appended to the current item's buffer.
	accumulating
)

// corroborationLookahead is how many following lines may corroborate an
// item start whose own line carries no dosage or form.
const corroborationLookahead = 3

var (
	itemStartRe = regexp.MustCompile(`^(\d{1,3})[.)]?\s+(.+)$`)

	// boilerplateRes match lines discarded outright inside an item.
	boilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^page\s+\d+(?:\s*(?:of|/)\s*\d+)?$`),
		regexp.MustCompile(`(?i)^\d+\s*(?:of|/)\s*\d+$`),
		regexp.MustCompile(`(?i)\b(?:rev(?:ision)?|version)\b[\s.:#-]*\d`),
		regexp.MustCompile(`(?i)^(?:please|note|instructions?)\b`),
		regexp.MustCompile(`(?i)^(?:the\s+)?(?:bidders?|suppliers?|vendors?)\s+(?:shall|must|should|are|is)\b`),
		regexp.MustCompile(`(?i)\b(?:i|we)\s+(?:hereby|the\s+undersigned)\b`),
		regexp.MustCompile(`(?i)\bdeclar(?:e|ation)\b`),
		regexp.MustCompile(`^(?:19|20)\d{2}$`),
		regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}$`),
	}

	// stopRes end the table mid-stream once items have started.
	stopRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpayment\s+terms\b`),
		regexp.MustCompile(`(?i)\bevaluation\s+method\b`),
		regexp.MustCompile(`(?i)\bvendor\s+requirements\b`),
	}
)

// IsBoilerplate reports whether a cleaned line is a page or revision marker,
// an instruction, or a declaration.
func IsBoilerplate(line string) bool {
	return matchesAny(boilerplateRes, line)
}

// machine assembles line items from the lines of a bounded section.
type machine struct {
	opts  Options
	state state

	number int
	buf    []string
	idle   int

	items   []domain.LineItem
	skipped logger.Tally
}

func newMachine(opts Options) *machine {
	return &machine{opts: opts, state: seeking, items: []domain.LineItem{}}
}

// run walks lines in order and returns the assembled items.
func (m *machine) run(lines []string) []domain.LineItem {
	for i := 0; i < len(lines); i++ {
		line := rows.CleanCell(lines[i])

		if m.state == accumulating && (matchesAny(stopRes, line) || IsEndMarker(line)) {
			logger.Debug("line %d: stop marker %q", i, line)
			break
		}

		if kind := rows.Classify(line); kind != rows.KindData {
			if kind != rows.KindBlank {
				logger.Debug("line %d: skipped %s", i, kind)
				m.skipped.Skip(kind.String())
			}
			if m.tick() {
				logger.Debug("line %d: %d lines without a new item, stopping", i, m.idle)
				break
			}
			continue
		}

		if IsBoilerplate(line) {
			logger.Debug("line %d: skipped boilerplate %q", i, line)
			m.skipped.Skip("boilerplate")
			if m.tick() {
				break
			}
			continue
		}

		if number, rest, ok := startCandidate(line); ok {
			if corroborated(rest, lines, i) {
				m.begin(number, rest)
				continue
			}
			logger.Debug("line %d: numeric prefix without dosage or form, treated as text", i)
			m.skipped.Skip("uncorroborated")
		}

		if m.state == accumulating {
			m.buf = append(m.buf, line)
		}
		if m.tick() {
			logger.Debug("line %d: %d lines without a new item, stopping", i, m.idle)
			break
		}
	}
	m.finalize()
	m.skipped.Report("text mode")
	return m.items
}

// tick counts a line that did not start an item. Returns true when the
// run limit is reached after items have started.
func (m *machine) tick() bool {
	if m.state != accumulating {
		return false
	}
	m.idle++
	return m.idle >= m.opts.BlankRunLimit
}

// begin finalizes the current buffer and starts a new item.
func (m *machine) begin(number int, rest string) {
	m.finalize()
	m.state = accumulating
	m.number = number
	m.buf = []string{rest}
	m.idle = 0
}

// finalize parses the current buffer and emits the item when it is genuine.
func (m *machine) finalize() {
	if m.state != accumulating || len(m.buf) == 0 {
		return
	}
	buf := m.buf
	m.buf = nil

	item, err := parseBuffer(m.number, buf, m.opts)
	if err != nil {
		logger.Debug("item %d: skipped: %v", m.number, err)
		m.skipped.Skip("unparsable")
		return
	}
	m.items = append(m.items, item)
}

// startCandidate matches a numeric-prefixed line. A leading strength such as
// "250 mg" is continuation text, not an item number.
func startCandidate(line string) (int, string, bool) {
	if loc := dosageRe.FindStringIndex(line); loc != nil && loc[0] == 0 {
		return 0, "", false
	}
	sub := itemStartRe.FindStringSubmatch(line)
	if sub == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil || n == 0 {
		return 0, "", false
	}
	return n, sub[2], true
}

// corroborated reports whether rest, or one of the next few data lines
// before another start candidate, carries dosage or form evidence.
func corroborated(rest string, lines []string, at int) bool {
	if HasEvidence(rest) {
		return true
	}
	seen := 0
	for j := at + 1; j < len(lines) && seen < corroborationLookahead; j++ {
		next := rows.CleanCell(lines[j])
		if rows.Classify(next) != rows.KindData || IsBoilerplate(next) {
			continue
		}
		if _, _, ok := startCandidate(next); ok {
			return false
		}
		if HasEvidence(next) {
			return true
		}
		seen++
	}
	return false
}

// errNotMedicine marks a buffer with neither dosage nor form evidence.
var errNotMedicine = fmt.Errorf("%w: no dosage or form", domain.ErrInvalidInput)

// parseBuffer applies the field rules to an item's joined buffer.
// Panics inside rule application are recovered and reported as errors.
func parseBuffer(number int, buf []string, opts Options) (item domain.LineItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse item %d: %v", number, r)
		}
	}()

	text := joinBuffer(buf)
	if !HasEvidence(text) {
		return domain.LineItem{}, errNotMedicine
	}

	item = domain.LineItem{
		ItemNumber:     number,
		Dosage:         domain.DosageNotAvailable,
		Form:           opts.DefaultForm,
		UnitOfIssue:    opts.DefaultUnit,
		GenericAllowed: GenericAllowed(text),
	}

	if m, ok := Apply(QuantityRules, text); ok {
		item.Quantity, _ = strconv.Atoi(m.Value)
		text = removeSpan(text, m)
	}

	var dosage *Match
	if m, ok := Apply(DosageRules, text); ok {
		item.Dosage = m.Value
		dosage = &m
	}
	if m, ok := Apply(UnitRules, text); ok {
		item.UnitOfIssue = m.Value
	}
	if m, ok := Apply(FormRules, text); ok {
		item.Form = m.Value
	}

	item.Name = Name(text, dosage)
	if err := checkName(item.Name); err != nil {
		return domain.LineItem{}, err
	}
	item.BrandName = Brand(text, item.Name)
	return item, nil
}

// checkName enforces that a name is non-empty, not purely numeric and not noise.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}
	if _, ok := parseQuantity(name); ok {
		return fmt.Errorf("%w: numeric name %q", domain.ErrInvalidInput, name)
	}
	if rows.IsNoise(name) {
		return fmt.Errorf("%w: noise name %q", domain.ErrInvalidInput, name)
	}
	return nil
}

func joinBuffer(buf []string) string {
	return rows.Join(buf)
}
