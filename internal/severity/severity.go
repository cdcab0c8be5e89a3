// Package severity provides severity levels for issues reported while
// checking organization tree documents.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError makes a document invalid.
	SeverityError Severity = iota

	// SeverityWarning flags a suspicious but acceptable document, such as an
	// empty name.
	SeverityWarning

	// SeverityInfo is an informational notice.
	SeverityInfo

	// SeverityCritical means the document could not be examined at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsBlocking reports whether issues of this severity make a document invalid.
func (s Severity) IsBlocking() bool {
	return s == SeverityError || s == SeverityCritical
}
