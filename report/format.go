package report

import (
	"fmt"
	"strings"

	"github.com/erraggy/orgtree/orgerrors"
)

// Format identifies an output format.
type Format string

const (
	// FormatXML renders the document format.
	FormatXML Format = "xml"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
	// FormatText renders an indented outline.
	FormatText Format = "text"
)

// Formats lists the supported formats.
var Formats = []Format{FormatXML, FormatJSON, FormatYAML, FormatText}

// ParseFormat converts a format name, case-insensitively. An empty name
// selects FormatXML; "yml" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", unknownFormat(s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/xml; charset=utf-8"
	}
}

func (f Format) valid() bool {
	switch f {
	case FormatXML, FormatJSON, FormatYAML, FormatText:
		return true
	}
	return false
}

func unknownFormat(v any) error {
	return &orgerrors.ConfigError{
		Option:  "format",
		Value:   v,
		Message: fmt.Sprintf("unsupported report format (expected one of %v)", Formats),
	}
}
