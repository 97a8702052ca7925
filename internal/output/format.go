package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatYAML is the self-documenting YAML output
	FormatYAML Format = "yaml"

	// FormatJSON is the JSON output format
	FormatJSON Format = "json"

	// FormatMarkdown is the default document output rendered from the
	// report's template sections
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format string into a Format value.
// Accepts: "yaml", "json", "markdown", "md" (case-insensitive)
// Returns an error for invalid format values.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected yaml, json, or markdown)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// DefaultFormat is the default output format when none is specified.
const DefaultFormat = FormatMarkdown

// ValidateFormat checks if a format value is valid.
func ValidateFormat(f Format) bool {
	switch f {
	case FormatYAML, FormatJSON, FormatMarkdown:
		return true
	default:
		return false
	}
}
