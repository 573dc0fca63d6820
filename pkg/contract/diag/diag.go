package diag

import (
	"fmt"
	"strings"

	"verity-hq/verity/pkg/contract/ast"
)

// Severity classifies a diagnostic entry.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityDebug   Severity = "debug"
)

// Diagnostic is a structured, located, severity-tagged report of a parsing
// or validation finding.
type Diagnostic struct {
	Severity Severity      // error, warning, or debug
	Message  string        // Human-readable message
	Location *ast.Location // Source position, nil when not attributable
	DocsRef  string        // Stable documentation anchor, optional
}

// String returns a single-line rendering of the diagnostic.
func (d *Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", d.Severity, d.Message))
	if d.Location != nil && d.Location.File != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", d.Location.String()))
	}
	if d.DocsRef != "" {
		sb.WriteString(fmt.Sprintf(" see %s", d.DocsRef))
	}
	return sb.String()
}

// Sink is an append-only ordered collection of diagnostics, shared by
// explicit handle across one parsing session. Entries are never removed or
// reordered. A Sink is not safe for concurrent use; callers sharing one
// across goroutines must serialize access externally.
type Sink struct {
	entries []*Diagnostic
}

// NewSink creates an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{entries: make([]*Diagnostic, 0)}
}

// Append adds a diagnostic to the sink.
func (s *Sink) Append(d *Diagnostic) {
	s.entries = append(s.entries, d)
}

// Error appends an error-severity diagnostic without a location.
func (s *Sink) Error(message string) {
	s.Append(&Diagnostic{Severity: SeverityError, Message: message})
}

// ErrorAt appends an error-severity diagnostic at the given location.
func (s *Sink) ErrorAt(message string, loc ast.Location) {
	s.Append(&Diagnostic{Severity: SeverityError, Message: message, Location: &loc})
}

// ErrorWithDocs appends an error-severity diagnostic carrying a
// documentation reference.
func (s *Sink) ErrorWithDocs(message, docsRef string, loc ast.Location) {
	s.Append(&Diagnostic{Severity: SeverityError, Message: message, Location: &loc, DocsRef: docsRef})
}

// Warning appends a warning-severity diagnostic at the given location.
func (s *Sink) Warning(message string, loc ast.Location) {
	s.Append(&Diagnostic{Severity: SeverityWarning, Message: message, Location: &loc})
}

// Debug appends a debug-severity diagnostic without a location.
func (s *Sink) Debug(message string) {
	s.Append(&Diagnostic{Severity: SeverityDebug, Message: message})
}

// Entries returns the diagnostics in emission order. The returned slice is
// a copy; mutating it does not affect the sink.
func (s *Sink) Entries() []*Diagnostic {
	out := make([]*Diagnostic, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of diagnostics in the sink.
func (s *Sink) Len() int { return len(s.entries) }

// HasErrors returns true if the sink holds at least one error-severity
// entry. Absence of errors is the session's success signal.
func (s *Sink) HasErrors() bool {
	return s.CountSeverity(SeverityError) > 0
}

// CountSeverity returns the number of entries with the given severity.
func (s *Sink) CountSeverity(sev Severity) int {
	n := 0
	for _, d := range s.entries {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// BySeverity returns all entries of the given severity, in emission order.
func (s *Sink) BySeverity(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range s.entries {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// String renders every entry, one per line, in emission order.
func (s *Sink) String() string {
	var sb strings.Builder
	for _, d := range s.entries {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
