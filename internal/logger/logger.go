// Package logger provides verbose logging for medrfq.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show why rows were kept or skipped during extraction.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose || l == levelError {
		fmt.Fprintf(output, "[%s] %s\n", l, fmt.Sprintf(format, args...))
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { logf(levelDebug, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { logf(levelInfo, format, args...) }

// Warn prints a warning if verbose mode is enabled.
func Warn(format string, args ...any) { logf(levelWarn, format, args...) }

// Error prints an error regardless of verbose mode.
func Error(format string, args ...any) { logf(levelError, format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Tally counts skipped rows by reason over one extraction pass.
// The zero value is ready to use; it is not safe for concurrent use.
type Tally struct {
	counts map[string]int
	total  int
}

// Skip records one skipped row.
func (t *Tally) Skip(reason string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	t.counts[reason]++
	t.total++
}

// Total returns the number of skipped rows.
func (t *Tally) Total() int {
	return t.total
}

// String renders the counts as "noise 2, header 1", largest first.
func (t *Tally) String() string {
	reasons := make([]string, 0, len(t.counts))
	for r := range t.counts {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		a, b := reasons[i], reasons[j]
		if t.counts[a] != t.counts[b] {
			return t.counts[a] > t.counts[b]
		}
		return a < b
	})
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = fmt.Sprintf("%s %d", r, t.counts[r])
	}
	return strings.Join(parts, ", ")
}

// Report logs the tally at debug level under scope. Nothing is logged
// when no rows were skipped.
func (t *Tally) Report(scope string) {
	if t.total == 0 {
		return
	}
	logf(levelDebug, "%s: skipped %d (%s)", scope, t.total, t)
}
