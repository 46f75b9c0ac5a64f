// Package watch extracts RFQ files dropped into an inbox directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/medrfq/internal/acquirers"
	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driving"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is extracted.
// PDF writers often emit several write events for one file.
const DefaultSettle = 500 * time.Millisecond

// ErrClosed is returned when Run is called on a closed watcher.
var ErrClosed = errors.New("watch: watcher is closed")

// Handler receives each successfully extracted document.
type Handler func(path string, doc *domain.RFQDocument)

// Watcher runs extraction for new or changed RFQ files in one directory.
// Extraction errors are logged and never stop the watcher.
type Watcher struct {
	dir        string
	extraction driving.ExtractionService
	opts       driving.ExtractOptions
	settle     time.Duration
	handler    Handler
	extensions map[string]bool

	mu      sync.Mutex
	closed  bool
	pending map[string]*time.Timer
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a file is extracted.
// Zero extracts on the first event.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// WithExtractOptions sets the options passed to every extraction.
func WithExtractOptions(opts driving.ExtractOptions) Option {
	return func(w *Watcher) {
		w.opts = opts
	}
}

// WithHandler sets the callback for extracted documents.
func WithHandler(h Handler) Option {
	return func(w *Watcher) {
		w.handler = h
	}
}

// New creates a watcher for dir.
func New(dir string, extraction driving.ExtractionService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:        dir,
		extraction: extraction,
		settle:     DefaultSettle,
		extensions: make(map[string]bool),
		pending:    make(map[string]*time.Timer),
	}
	for _, ext := range acquirers.SupportedExtensions() {
		w.extensions[ext] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory until ctx is cancelled. Pending extractions
// finish before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.mu.Unlock()

	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch: inbox error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.dir, err)
	}
	logger.Info("watching %s", w.dir)

	defer w.drain()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.accepts(event) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// Close stops future runs and cancels extractions that have not started.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
}

// accepts reports whether an event names a visible RFQ file that was
// created or written.
func (w *Watcher) accepts(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if w.hidden(event.Name) {
		return false
	}
	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// schedule extracts path once it has been quiet for the settle period.
func (w *Watcher) schedule(ctx context.Context, path string) {
	if w.settle == 0 {
		w.process(ctx, path)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok && t.Stop() {
		t.Reset(w.settle)
		return
	}
	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.settle, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[path] == timer {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		w.process(ctx, path)
	})
	w.pending[path] = timer
}

// drain waits for scheduled extractions.
func (w *Watcher) drain() {
	w.wg.Wait()
}

// process reads and extracts one file. Failures are logged.
func (w *Watcher) process(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("watch: read %s: %v", path, err)
		return
	}

	doc, err := w.extraction.Extract(ctx, &domain.RawDocument{
		Filename: filepath.Base(path),
		Content:  content,
	}, w.opts)
	if err != nil {
		logger.Error("watch: extract %s: %v", filepath.Base(path), err)
		return
	}

	logger.Info("extracted %s: %d line items", filepath.Base(path), len(doc.LineItems))
	if w.handler != nil {
		w.handler(path, doc)
	}
}

// hidden reports whether path has a dot-prefixed element below the inbox.
// Dot directories above the inbox, such as ~/.medrfq/inbox, do not count.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return isHidden(rel)
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
