package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/liftoff/internal/report"
)

// Formatter is the interface for rendering a report in one output format.
type Formatter interface {
	// Format renders the report as a string.
	Format(rep *report.Report, tmpl report.Template) (string, error)

	// FormatToWriter writes rendered output directly to a writer.
	FormatToWriter(w io.Writer, rep *report.Report, tmpl report.Template) error
}

// YAMLFormatter renders reports as YAML output.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format renders a report as YAML.
func (f *YAMLFormatter) Format(rep *report.Report, tmpl report.Template) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, rep, tmpl); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes YAML output to a writer. The full report record is
// emitted; the template does not affect YAML layout.
func (f *YAMLFormatter) FormatToWriter(w io.Writer, rep *report.Report, tmpl report.Template) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(rep)
}

// JSONFormatter renders reports as JSON output.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format renders a report as JSON.
func (f *JSONFormatter) Format(rep *report.Report, tmpl report.Template) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, rep, tmpl); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes JSON output to a writer. The full report record is
// emitted; the template does not affect JSON layout.
func (f *JSONFormatter) FormatToWriter(w io.Writer, rep *report.Report, tmpl report.Template) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(rep)
}

// GetFormatter returns a formatter for the specified format.
func GetFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FilterSections narrows a template to the requested section ids. Sections
// marked Required are always kept. Unknown ids are ignored. An empty filter
// returns the template unchanged.
func FilterSections(tmpl report.Template, ids []string) report.Template {
	if len(ids) == 0 {
		return tmpl
	}

	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	var kept []report.Section
	for _, section := range tmpl.Sections {
		if section.Required || requested[section.ID] {
			kept = append(kept, section)
		}
	}
	tmpl.Sections = kept
	return tmpl
}
