// Package report composes audience-specific launch reports. The Composer
// resolves a template from the registry, runs the metrics, scoring, and
// insight computations, and assembles an immutable report record. The
// package owns the report schema the rest of the system renders and
// archives.
package report

import (
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
)

// ChartType identifies how a chart's data should be visualized.
type ChartType string

const (
	// ChartBar renders one bar per data key
	ChartBar ChartType = "bar"

	// ChartPie renders data keys as slices of a whole
	ChartPie ChartType = "pie"

	// ChartLine renders data keys as points on a line
	ChartLine ChartType = "line"

	// ChartRadar renders data keys as axes of a radar plot
	ChartRadar ChartType = "radar"
)

// ValidateChartType checks if a chart type value is valid.
func ValidateChartType(t ChartType) bool {
	switch t {
	case ChartBar, ChartPie, ChartLine, ChartRadar:
		return true
	default:
		return false
	}
}

// AppendixType identifies the kind of supporting material in an appendix.
type AppendixType string

const (
	// AppendixData holds raw supporting numbers
	AppendixData AppendixType = "data"

	// AppendixMethodology explains how the report's figures are derived
	AppendixMethodology AppendixType = "methodology"

	// AppendixReferences lists the report's sources
	AppendixReferences AppendixType = "references"
)

// ValidateAppendixType checks if an appendix type value is valid.
func ValidateAppendixType(t AppendixType) bool {
	switch t {
	case AppendixData, AppendixMethodology, AppendixReferences:
		return true
	default:
		return false
	}
}

// Chart is one visualization attached to a report. The data is a plain
// label-to-value mapping; rendering to an actual image is the export
// layer's concern.
type Chart struct {
	// Type is the visualization kind (bar, pie, line, radar)
	Type ChartType `yaml:"type" json:"type"`

	// Title is the chart heading
	Title string `yaml:"title" json:"title"`

	// Data maps series labels to values
	Data map[string]float64 `yaml:"data" json:"data"`

	// Description explains what the chart shows
	Description string `yaml:"description" json:"description"`
}

// Appendix is supporting material attached to internal reports.
type Appendix struct {
	// Type is the appendix kind (data, methodology, references)
	Type AppendixType `yaml:"type" json:"type"`

	// Title is the appendix heading
	Title string `yaml:"title" json:"title"`

	// Content is the appendix body text
	Content string `yaml:"content" json:"content"`
}

// PhaseAnalysis summarizes one phase's progress for the report.
type PhaseAnalysis struct {
	// Phase names the analyzed phase
	Phase launch.Phase `yaml:"phase" json:"phase"`

	// Completion is the phase completion percentage, unrounded
	Completion float64 `yaml:"completion" json:"completion"`

	// KeyAchievements lists completed steps in readable form
	KeyAchievements []string `yaml:"key_achievements" json:"keyAchievements"`

	// Challenges lists concerns when the active phase is behind
	Challenges []string `yaml:"challenges,omitempty" json:"challenges,omitempty"`

	// NextSteps lists up to three upcoming step ids for the phase
	NextSteps []string `yaml:"next_steps,omitempty" json:"nextSteps,omitempty"`
}

// Insights carries the derived observations for a report.
type Insights struct {
	// KeyFindings are facts extracted from the project's captured data
	KeyFindings []string `yaml:"key_findings" json:"keyFindings"`

	// NextSteps are the per-phase upcoming steps, in framework order
	NextSteps []string `yaml:"next_steps" json:"nextSteps"`

	// RiskLevel is the overall risk assessment
	RiskLevel launch.RiskLevel `yaml:"risk_level" json:"riskLevel"`

	// ReadinessScore is the 0-100 launch readiness composite
	ReadinessScore int `yaml:"readiness_score" json:"readinessScore"`
}

// Content is the assembled body of a report.
type Content struct {
	// ExecutiveSummary is the templated opening paragraph
	ExecutiveSummary string `yaml:"executive_summary" json:"executiveSummary"`

	// Overview bundles the derived progress metrics
	Overview metrics.ProgressOverview `yaml:"progress_overview" json:"progressOverview"`

	// PhaseAnalysis holds one entry per phase present in the progress
	// record, in framework order
	PhaseAnalysis []PhaseAnalysis `yaml:"phase_analysis" json:"phaseAnalysis"`

	// Insights carries findings, next steps, risk, and readiness
	Insights Insights `yaml:"insights" json:"insights"`

	// Recommendations are audience-tailored action items
	Recommendations []string `yaml:"recommendations" json:"recommendations"`

	// Charts are attached visualizations; absent when disabled
	Charts []Chart `yaml:"charts,omitempty" json:"charts,omitempty"`

	// Appendices hold supporting material for internal audiences
	Appendices []Appendix `yaml:"appendices,omitempty" json:"appendices,omitempty"`
}

// HasCharts reports whether any charts are attached.
func (c *Content) HasCharts() bool {
	return len(c.Charts) > 0
}

// HasAppendices reports whether any appendices are attached.
func (c *Content) HasAppendices() bool {
	return len(c.Appendices) > 0
}

// PhaseCount returns the number of phase analyses in the report.
func (c *Content) PhaseCount() int {
	return len(c.PhaseAnalysis)
}

// Report is one generated launch report.
type Report struct {
	// ID uniquely identifies the report (report-<millis>-<suffix>)
	ID string `yaml:"id" json:"id"`

	// ProjectID identifies the reported project
	ProjectID string `yaml:"project_id" json:"projectId"`

	// TemplateID identifies the template the report was built from
	TemplateID string `yaml:"template_id" json:"templateId"`

	// Title combines the project and template names
	Title string `yaml:"title" json:"title"`

	// GeneratedAt is when the report was composed (UTC)
	GeneratedAt time.Time `yaml:"generated_at" json:"generatedAt"`

	// Content is the assembled report body
	Content Content `yaml:"content" json:"content"`
}
