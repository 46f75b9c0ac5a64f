// Package catalog loads the reference snapshot: the vendor master index (JSON)
// and the authorized-medicines list (CSV).
//
// A missing file is not an error: the snapshot is simply empty for that part
// and a warning is logged. A file that exists but cannot be parsed returns an
// error wrapping domain.ErrCatalogUnavailable alongside whatever loaded.
package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// headerScanRows bounds how many leading records may precede the CSV header.
const headerScanRows = 20

// Column names tried in order. EMA listings use the long INN header and
// carry the brand in "name of medicine".
var (
	innColumns = []string{
		"international non-proprietary name (inn) / common name",
		"international non-proprietary name (inn)/ common name",
		"inn name",
		"inn_name",
		"inn",
		"common name",
	}
	brandColumns = []string{"name of medicine", "medicine name", "brand", "name", "drug name"}
	statusColumn = "medicine status"
)

// Loader reads the reference files from disk.
type Loader struct {
	vendorsPath   string
	medicinesPath string
}

var _ driven.CatalogLoader = (*Loader)(nil)

// NewLoader creates a loader. Empty paths are skipped.
func NewLoader(vendorsPath, medicinesPath string) *Loader {
	return &Loader{vendorsPath: vendorsPath, medicinesPath: medicinesPath}
}

// Load builds a new snapshot. The returned snapshot is never nil.
func (l *Loader) Load(ctx context.Context) (*domain.ReferenceSnapshot, error) {
	snap := domain.EmptySnapshot()
	var errs []error

	if err := ctx.Err(); err != nil {
		return snap, err
	}

	if data, ok := readOptional("vendor index", l.vendorsPath); ok {
		vendors, err := ParseVendors(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, l.vendorsPath, err))
		} else {
			snap.Vendors = vendors
			logger.Info("loaded %d vendors from %s", len(vendors), l.vendorsPath)
		}
	}

	if data, ok := readOptional("medicines list", l.medicinesPath); ok {
		medicines, err := ParseMedicines(bytes.NewReader(data))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, l.medicinesPath, err))
		} else {
			snap.Medicines = medicines
			logger.Info("loaded %d authorized medicines from %s", len(medicines), l.medicinesPath)
		}
	}

	return snap, errors.Join(errs...)
}

func readOptional(what, path string) ([]byte, bool) {
	if path == "" {
		logger.Debug("%s: no path configured", what)
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("%s unavailable (%v), continuing with an empty list", what, err)
		return nil, false
	}
	return data, true
}

// ParseVendors decodes a master index of the form {"vendors": [...]}.
// A bare JSON array of vendors is accepted too.
func ParseVendors(data []byte) ([]domain.VendorRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []domain.VendorRecord{}, nil
	}

	var vendors []domain.VendorRecord
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &vendors); err != nil {
			return nil, fmt.Errorf("decoding vendors: %w", err)
		}
	} else {
		var index struct {
			Vendors []domain.VendorRecord `json:"vendors"`
		}
		if err := json.Unmarshal(trimmed, &index); err != nil {
			return nil, fmt.Errorf("decoding vendor index: %w", err)
		}
		vendors = index.Vendors
	}

	out := make([]domain.VendorRecord, 0, len(vendors))
	for _, v := range vendors {
		if v.VendorID == "" {
			logger.Debug("skipping vendor without vendor_id: %q", v.DisplayName())
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseMedicines reads an authorized-medicines CSV. The header row is the
// first record naming an INN or brand column. When a "medicine status"
// column exists only rows with status "authorised" are kept.
func ParseMedicines(r io.Reader) ([]domain.AuthorizedMedicine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var cols columns
	found := false
	for i := 0; i < headerScanRows; i++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return []domain.AuthorizedMedicine{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		if cols, found = detectColumns(record); found {
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no medicine name column", domain.ErrInvalidInput)
	}

	medicines := []domain.AuthorizedMedicine{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if m, ok := cols.medicine(record); ok {
			medicines = append(medicines, m)
		}
	}
	return medicines, nil
}

// columns holds header indexes; -1 marks an absent column.
type columns struct {
	inn, brand, status     int
	dosage, strength, form int
}

func detectColumns(header []string) (columns, bool) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	first := func(names ...string) int {
		for _, n := range names {
			if i, ok := index[n]; ok {
				return i
			}
		}
		return -1
	}

	c := columns{
		inn:      first(innColumns...),
		brand:    first(brandColumns...),
		status:   first(statusColumn),
		dosage:   first("dosage"),
		strength: first("strength"),
		form:     first("form", "pharmaceutical form"),
	}
	if c.inn < 0 && c.brand >= 0 {
		c.inn, c.brand = c.brand, -1
	}
	return c, c.inn >= 0
}

func (c columns) medicine(record []string) (domain.AuthorizedMedicine, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	orNA := func(s string) string {
		if s == "" {
			return domain.DosageNotAvailable
		}
		return s
	}

	if c.status >= 0 && !strings.EqualFold(field(c.status), "authorised") {
		return domain.AuthorizedMedicine{}, false
	}

	name := field(c.inn)
	brand := field(c.brand)
	if name == "" {
		name, brand = brand, ""
	}
	if name == "" {
		return domain.AuthorizedMedicine{}, false
	}

	return domain.AuthorizedMedicine{
		INNName:  name,
		Dosage:   orNA(field(c.dosage)),
		Strength: orNA(field(c.strength)),
		Form:     orNA(field(c.form)),
		Brand:    brand,
	}, true
}

// Cached loads the snapshot once and serves the same snapshot afterwards.
type Cached struct {
	loader driven.CatalogLoader

	once sync.Once
	snap *domain.ReferenceSnapshot
	err  error
}

var _ driven.CatalogLoader = (*Cached)(nil)

// NewCached wraps loader so that it runs at most once.
func NewCached(loader driven.CatalogLoader) *Cached {
	return &Cached{loader: loader}
}

// Load returns the cached snapshot, loading it on first use.
func (c *Cached) Load(ctx context.Context) (*domain.ReferenceSnapshot, error) {
	c.once.Do(func() {
		c.snap, c.err = c.loader.Load(ctx)
		if c.snap == nil {
			c.snap = domain.EmptySnapshot()
		}
	})
	return c.snap, c.err
}
