package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/medrfq/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "medrfq.db"

// Store is a SQLite-based RFQ document store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.RFQStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.medrfq/data/medrfq.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medrfq", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL lets the watcher write while the CLI reads.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Line items cascade with their document.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations and records their versions.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or replaces a document with its line items.
func (s *Store) Save(ctx context.Context, doc *domain.RFQDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document without id", domain.ErrInvalidInput)
	}

	sections, err := marshalSections(doc)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rfq_documents (id, filename, mode, pages, rfq_id, issuer_org, selection_method,
			mandatory_documents, metadata, vendor_requirements, delivery, evaluation, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			mode = excluded.mode,
			pages = excluded.pages,
			rfq_id = excluded.rfq_id,
			issuer_org = excluded.issuer_org,
			selection_method = excluded.selection_method,
			mandatory_documents = excluded.mandatory_documents,
			metadata = excluded.metadata,
			vendor_requirements = excluded.vendor_requirements,
			delivery = excluded.delivery,
			evaluation = excluded.evaluation,
			extracted_at = excluded.extracted_at
	`, doc.ID, doc.Filename, string(doc.Mode), doc.Pages,
		doc.Metadata.RFQID, doc.Metadata.IssuerOrg, doc.Metadata.EvaluationMethod,
		len(doc.VendorRequirements.MandatoryDocuments),
		sections[0], sections[1], sections[2], sections[3], doc.ExtractedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing line items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO line_items (document_id, position, item_number, name, dosage, form,
			unit_of_issue, quantity, brand_name, generic_allowed, category, validation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, item := range doc.LineItems {
		var validation sql.NullString
		if item.Validation != nil {
			b, err := json.Marshal(item.Validation)
			if err != nil {
				return fmt.Errorf("marshalling validation: %w", err)
			}
			validation = sql.NullString{String: string(b), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, doc.ID, i, item.ItemNumber, item.Name, item.Dosage,
			item.Form, item.UnitOfIssue, item.Quantity, item.BrandName, item.GenericAllowed,
			string(item.Category), validation); err != nil {
			return fmt.Errorf("saving line item %d: %w", item.ItemNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.RFQDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, mode, pages, metadata, vendor_requirements, delivery, evaluation, extracted_at
		FROM rfq_documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	items, err := s.lineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.LineItems = items
	return doc, nil
}

// List returns summaries of all stored documents, newest first.
func (s *Store) List(ctx context.Context) ([]domain.RFQSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.filename, COALESCE(d.rfq_id, ''), COALESCE(d.issuer_org, ''),
			COALESCE(d.selection_method, ''), d.mandatory_documents, d.extracted_at,
			(SELECT COUNT(*) FROM line_items li WHERE li.document_id = d.id)
		FROM rfq_documents d
		ORDER BY d.extracted_at DESC, d.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	summaries := []domain.RFQSummary{}
	for rows.Next() {
		var sum domain.RFQSummary
		if err := rows.Scan(&sum.ID, &sum.Filename, &sum.RFQID, &sum.IssuerOrg,
			&sum.SelectionMethod, &sum.TotalMandatoryDocuments, &sum.ExtractedAt,
			&sum.TotalLineItems); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return summaries, nil
}

// Delete removes a document and its line items.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rfq_documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) lineItems(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_number, name, dosage, form, unit_of_issue, quantity, brand_name,
			generic_allowed, COALESCE(category, ''), validation
		FROM line_items WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying line items: %w", err)
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return items, nil
}

// marshalSections encodes metadata, requirements, delivery and evaluation in column order.
func marshalSections(doc *domain.RFQDocument) ([4]string, error) {
	var out [4]string
	for i, v := range []any{doc.Metadata, doc.VendorRequirements, doc.Delivery, doc.Evaluation} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("marshalling document section: %w", err)
		}
		out[i] = string(b)
	}
	return out, nil
}

// scanDocument scans a document header from *sql.Row.
func scanDocument(row *sql.Row) (*domain.RFQDocument, error) {
	var doc domain.RFQDocument
	var mode string
	var metadataJSON, requirementsJSON, deliveryJSON, evaluationJSON string

	if err := row.Scan(&doc.ID, &doc.Filename, &mode, &doc.Pages, &metadataJSON,
		&requirementsJSON, &deliveryJSON, &evaluationJSON, &doc.ExtractedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.Mode = domain.ExtractionMode(mode)

	sections := []struct {
		raw string
		dst any
	}{
		{metadataJSON, &doc.Metadata},
		{requirementsJSON, &doc.VendorRequirements},
		{deliveryJSON, &doc.Delivery},
		{evaluationJSON, &doc.Evaluation},
	}
	for _, sec := range sections {
		if sec.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(sec.raw), sec.dst); err != nil {
			return nil, fmt.Errorf("unmarshaling document section: %w", err)
		}
	}

	return &doc, nil
}

// scanLineItem scans a line item from *sql.Rows.
func scanLineItem(rows *sql.Rows) (*domain.LineItem, error) {
	var item domain.LineItem
	var category string
	var validation sql.NullString

	if err := rows.Scan(&item.ItemNumber, &item.Name, &item.Dosage, &item.Form,
		&item.UnitOfIssue, &item.Quantity, &item.BrandName, &item.GenericAllowed,
		&category, &validation); err != nil {
		return nil, fmt.Errorf("scanning line item: %w", err)
	}
	item.Category = domain.Category(category)

	if validation.Valid && validation.String != "" {
		item.Validation = &domain.ItemValidation{}
		if err := json.Unmarshal([]byte(validation.String), item.Validation); err != nil {
			return nil, fmt.Errorf("unmarshaling validation: %w", err)
		}
	}

	return &item, nil
}
