// Package lineitems turns acquired RFQ content into procurement line items.
//
// Text mode is a two-phase pass. Phase A bounds the item table between a start
// marker and the first annex, form or declaration marker. Phase B walks the
// bounded lines with a two-state machine (seeking, accumulating) that groups
// wrapped descriptions into one buffer per item. Each buffer is then parsed by
// ordered, named field rules.
//
// Table mode anchors each structured row on its right-most quantity cell.
// Auto mode uses table mode for structured input and falls back to text mode
// when that yields nothing.
//
// Extraction is deterministic and never fails as a whole: rows that cannot be
// parsed are logged and skipped, and zero items is a valid result.
package lineitems

import (
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// Extractor extracts line items from acquired documents.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	opts Options
}

// New creates an extractor. Zero option values are replaced with defaults.
func New(opts Options) *Extractor {
	return &Extractor{opts: FromSettings(domain.ExtractionSettings{
		Mode:           opts.Mode,
		DefaultForm:    opts.DefaultForm,
		DefaultUnit:    opts.DefaultUnit,
		TableUnit:      opts.TableUnit,
		BlankRunLimit:  opts.BlankRunLimit,
		StartLookahead: opts.StartLookahead,
	})}
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Result is the outcome of one extraction.
type Result struct {
	// Items are the extracted line items in source order. Never nil.
	Items []domain.LineItem

	// Mode is the mode that produced Items.
	Mode domain.ExtractionMode
}

// Extract runs the configured mode over doc. A nil doc yields an empty result.
func (e *Extractor) Extract(doc *domain.AcquiredDocument) Result {
	return e.ExtractMode(doc, e.opts.Mode)
}

// ExtractMode runs the given mode over doc.
func (e *Extractor) ExtractMode(doc *domain.AcquiredDocument, mode domain.ExtractionMode) Result {
	if doc == nil {
		return Result{Items: []domain.LineItem{}, Mode: domain.ModeText}
	}

	var res Result
	switch mode {
	case domain.ModeTable:
		res = Result{Items: e.extractRows(doc.Rows), Mode: domain.ModeTable}
	case domain.ModeText:
		res = Result{Items: e.ExtractText(doc.Lines()), Mode: domain.ModeText}
	default:
		res = e.extractAuto(doc)
	}

	if len(res.Items) == 0 {
		logger.Warn("no line items found (%s mode)", res.Mode)
	} else {
		logger.Info("extracted %d line items (%s mode)", len(res.Items), res.Mode)
	}
	return res
}

func (e *Extractor) extractAuto(doc *domain.AcquiredDocument) Result {
	if doc.Structured() {
		logger.Section("Table mode")
		if items := e.extractRows(doc.Rows); len(items) > 0 {
			return Result{Items: items, Mode: domain.ModeTable}
		}
		logger.Debug("table mode found no items, falling back to text mode")
	}
	logger.Section("Text mode")
	return Result{Items: e.ExtractText(doc.Lines()), Mode: domain.ModeText}
}

// ExtractText runs text mode over lines.
func (e *Extractor) ExtractText(lines []string) []domain.LineItem {
	sec := FindSection(lines, e.opts.StartLookahead)
	logger.Debug("text section: lines %d-%d (marker %d, corroborated %t)",
		sec.Start, sec.End, sec.Marker, sec.Corroborated)
	return newMachine(e.opts).run(lines[sec.Start:sec.End])
}

// ExtractRows runs table mode over rows.
func (e *Extractor) ExtractRows(tableRows []domain.TableRow) []domain.LineItem {
	return e.extractRows(tableRows)
}
