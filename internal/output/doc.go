// Package output renders generated reports for delivery.
//
// # Format Types
//
// Three output formats are supported:
//
//   - YAML: self-documenting, human-readable marshaling of the report
//   - JSON: machine-readable, same structure as YAML
//   - Markdown (default): a document laid out section by section from the
//     report's template
//
// YAML and JSON emit the full report record regardless of template; the
// template drives layout only for Markdown, which walks the template's
// ordered sections and renders each from the report content.
//
// # Section Filtering
//
// FilterSections narrows a template to a requested subset of section ids
// before rendering. Sections a template marks Required are always kept, so
// a filtered report can never lose its core content.
package output
