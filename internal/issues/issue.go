// Package issues provides the issue type reported by document validation.
package issues

import (
	"fmt"

	"github.com/erraggy/orgtree/internal/severity"
)

// Issue represents a single problem found in a document.
type Issue struct {
	// Path locates the problem (e.g., "Tree/person[@id='1']/children")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific element or attribute name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Line is the 1-based line number in the source document (0 if unknown)
	Line int
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if path == "" {
		path = "(document)"
	}
	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d): %s", symbol, path, i.Line, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
}

// Location returns "line N" when the source line is known, or the path.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	return fmt.Sprintf("line %d", i.Line)
}

// HasLocation returns true if this issue has source line information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}
