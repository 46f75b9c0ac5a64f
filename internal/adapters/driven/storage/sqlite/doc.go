// Package sqlite stores extracted RFQ documents in a single SQLite file,
// ~/.medrfq/data/medrfq.db unless storage.data_dir says otherwise.
//
// rfq_documents holds one row per document with its RFQ-level sections as
// JSON; line_items holds the items in document order. The schema is applied
// from the embedded migrations on open. The driver is modernc.org/sqlite,
// so no CGO is needed.
package sqlite
