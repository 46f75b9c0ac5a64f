package lineitems

import "github.com/custodia-labs/medrfq/internal/core/domain"

// Options configure extraction.
type Options struct {
	// Mode selects text, table, or auto extraction.
	Mode domain.ExtractionMode

	// DefaultForm is used when no form keyword is found.
	DefaultForm string

	// DefaultUnit is the text-mode unit of issue when none is found.
	DefaultUnit string

	// TableUnit is the table-mode unit of issue when no unit cell qualifies.
	TableUnit string

	// BlankRunLimit stops scanning after this many consecutive lines
	// without a new item once items have started.
	BlankRunLimit int

	// StartLookahead is how many lines after a start marker are searched
	// for column-header context.
	StartLookahead int
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	return FromSettings(domain.DefaultSettings().Extraction)
}

// FromSettings builds options from extraction settings, filling zero values
// with defaults.
func FromSettings(s domain.ExtractionSettings) Options {
	opts := Options{
		Mode:           s.Mode,
		DefaultForm:    s.DefaultForm,
		DefaultUnit:    s.DefaultUnit,
		TableUnit:      s.TableUnit,
		BlankRunLimit:  s.BlankRunLimit,
		StartLookahead: s.StartLookahead,
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeAuto
	}
	if opts.DefaultForm == "" {
		opts.DefaultForm = domain.DefaultForm
	}
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = domain.DefaultUnit
	}
	if opts.TableUnit == "" {
		opts.TableUnit = domain.DefaultTableUnit
	}
	if opts.BlankRunLimit <= 0 {
		opts.BlankRunLimit = domain.DefaultBlankRunLimit
	}
	if opts.StartLookahead <= 0 {
		opts.StartLookahead = domain.DefaultStartLookahead
	}
	return opts
}
