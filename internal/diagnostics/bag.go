package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Chris-Enlow/PLC-Project/colors"
	str "github.com/Chris-Enlow/PLC-Project/internal/utils/strings"
)

// DiagnosticBag collects diagnostics from any number of files. It is safe for
// concurrent use.
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
	sourceCache *SourceCache
}

func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
		sourceCache: NewSourceCache(),
	}
}

// AddSourceContent registers in-memory content so snippets need not be read
// from disk.
func (db *DiagnosticBag) AddSourceContent(filepath, content string) {
	db.sourceCache.AddSource(filepath, content)
}

// AddError converts err with FromError and records it.
func (db *DiagnosticBag) AddError(filepath, content string, err error) *Diagnostic {
	db.AddSourceContent(filepath, content)
	diag := FromError(filepath, content, err)
	db.Add(diag)
	return diag
}

func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)
	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of everything collected so far.
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := make([]*Diagnostic, len(db.diagnostics))
	copy(result, db.diagnostics)
	return result
}

// EmitAll renders every diagnostic followed by a summary line.
func (db *DiagnosticBag) EmitAll(w io.Writer) {
	emitter := NewEmitterWithCache(w, db.sourceCache)
	for _, diag := range db.Diagnostics() {
		emitter.Emit(diag)
	}
	db.printSummary(w)
}

// EmitAllToString is EmitAll into a string, color escapes included.
func (db *DiagnosticBag) EmitAllToString() string {
	var buf strings.Builder
	db.EmitAll(&buf)
	return buf.String()
}

func (db *DiagnosticBag) printSummary(w io.Writer) {
	errs, warns := db.ErrorCount(), db.WarningCount()
	switch {
	case errs > 0:
		colors.RED.Fprintf(w, "\nFailed with %d %s", errs, str.Pluralize("error", "errors", errs))
		if warns > 0 {
			colors.RED.Fprintf(w, " and %d %s", warns, str.Pluralize("warning", "warnings", warns))
		}
		fmt.Fprintln(w)
	case warns > 0:
		colors.ORANGE.Fprintf(w, "\nSucceeded with %d %s\n", warns, str.Pluralize("warning", "warnings", warns))
	}
}

func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
