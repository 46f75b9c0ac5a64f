// Package acquirers turns raw RFQ files into table rows and text.
//
// Acquirers are registered with a Registry at startup. Each acquirer declares
// the MIME types it handles and a priority; for a given MIME type the
// highest-priority acquirer wins. The core extractor never opens files
// itself: it receives the AcquiredDocument produced here.
package acquirers
