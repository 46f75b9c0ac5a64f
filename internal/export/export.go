// Package export writes stored RFQ documents as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Format names.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Headers are the CSV column headers, in order.
var Headers = []string{
	"Item No", "INN Name", "Dosage", "Form", "Quantity",
	"Unit of Issue", "Brand Name", "Generic Allowed", "Category",
}

// Writer writes one document to w.
type Writer func(w io.Writer, doc *domain.RFQDocument) error

var writers = map[string]Writer{
	FormatCSV:  WriteCSV,
	FormatJSON: WriteJSON,
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write writes doc in the named format. Unknown formats return domain.ErrUnknownFormat.
func Write(w io.Writer, format string, doc *domain.RFQDocument) error {
	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("%w: %q (supported: %v)", domain.ErrUnknownFormat, format, Formats())
	}
	return write(w, doc)
}

// WriteCSV writes one row per line item under Headers.
func WriteCSV(w io.Writer, doc *domain.RFQDocument) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range doc.LineItems {
		record := []string{
			strconv.Itoa(item.ItemNumber),
			item.Name,
			item.Dosage,
			item.Form,
			strconv.Itoa(item.Quantity),
			item.UnitOfIssue,
			item.BrandName,
			strconv.FormatBool(item.GenericAllowed),
			string(item.Category),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", item.ItemNumber, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes the full document as indented JSON.
func WriteJSON(w io.Writer, doc *domain.RFQDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
