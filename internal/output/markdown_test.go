package output

import (
	"strings"
	"testing"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
	"github.com/hargabyte/liftoff/internal/report"
)

// markdownReport builds a fully populated report for rendering tests.
func markdownReport() *report.Report {
	return &report.Report{
		ID:          "report-1742040000000-a1b2c3d4",
		ProjectID:   "proj-phoenix",
		TemplateID:  "executive-summary",
		Title:       "Phoenix - Executive Summary",
		GeneratedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Content: report.Content{
			ExecutiveSummary: "Phoenix is a fintech venture targeting SMB finance teams.",
			Overview: metrics.ProgressOverview{
				TotalPhases:            8,
				PhasesCompleted:        2,
				OverallCompletion:      40.625,
				StepsCompleted:         3,
				StepsTotal:             4,
				TimeSpentDays:          16,
				EstimatedDaysRemaining: 23,
			},
			PhaseAnalysis: []report.PhaseAnalysis{
				{
					Phase:           launch.PhaseValidation,
					Completion:      100,
					KeyAchievements: []string{"Problem Interviews", "Market Sizing"},
				},
				{
					Phase:      launch.PhaseDefinition,
					Completion: 50,
					Challenges: []string{"Current phase is 50% complete with 1 steps still open"},
					NextSteps:  []string{"value-proposition"},
				},
			},
			Insights: report.Insights{
				KeyFindings: []string{
					"Market opportunity: $2B TAM",
					"Revenue projection: $250K ARR",
				},
				NextSteps:      []string{"definition: value-proposition"},
				RiskLevel:      launch.RiskMedium,
				ReadinessScore: 49,
			},
			Recommendations: []string{
				"Assign owners and mitigation plans to the open risks.",
				"Maintain the current execution pace across the remaining phases.",
			},
			Charts: []report.Chart{
				{
					Type:        report.ChartBar,
					Title:       "Phase Completion",
					Data:        map[string]float64{"validation": 100, "definition": 50},
					Description: "Completion percentage for each launch phase",
				},
			},
			Appendices: []report.Appendix{
				{Type: report.AppendixData, Title: "Progress Data", Content: "Phases tracked: 8."},
				{Type: report.AppendixMethodology, Title: "Methodology", Content: "Mean of phase completion."},
			},
		},
	}
}

func mustTemplate(t *testing.T, id string) report.Template {
	t.Helper()
	tmpl, ok := report.NewRegistry().Get(id)
	if !ok {
		t.Fatalf("template %s not in registry", id)
	}
	return tmpl
}

func TestMarkdownExecutiveSummary(t *testing.T) {
	rep := markdownReport()
	rep.Content.Appendices = nil // stakeholder reports carry none

	out, err := NewMarkdownFormatter().Format(rep, mustTemplate(t, "executive-summary"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	wantFragments := []string{
		"# Phoenix - Executive Summary",
		"_Generated 2026-03-15 for the stakeholder audience._",
		"## Project Overview",
		"Phoenix is a fintech venture targeting SMB finance teams.",
		"| Overall completion | 40.6% |",
		"| Phases completed | 2 of 8 |",
		"## Progress Summary",
		"- Validation: 100%",
		"- Definition: 50% (next: value-proposition)",
		"## Key Insights",
		"- Market opportunity: $2B TAM",
		"Risk level: medium",
		"Launch readiness: 49/100",
		"## Recommendations",
		"1. Assign owners and mitigation plans to the open risks.",
		"2. Maintain the current execution pace across the remaining phases.",
		"## Charts",
		"### Phase Completion",
		"| definition | 50.0 |",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownDetailedAnalysis(t *testing.T) {
	rep := markdownReport()
	rep.TemplateID = "detailed-analysis"
	rep.Title = "Phoenix - Detailed Analysis"

	out, err := NewMarkdownFormatter().Format(rep, mustTemplate(t, "detailed-analysis"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	wantFragments := []string{
		"## Phase Analysis",
		"### Validation",
		"Completion: 100%",
		"Key achievements: Problem Interviews, Market Sizing",
		"### Definition",
		"Challenges:",
		"- Current phase is 50% complete with 1 steps still open",
		"Next steps: value-proposition",
		"## Risk Assessment",
		"Overall risk level: medium",
		"Open concerns:",
		"## Appendices",
		"### Progress Data",
		"### Methodology",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}

	// Charts render before the appendices for internal reports
	chartsIdx := strings.Index(out, "## Charts")
	appendicesIdx := strings.Index(out, "## Appendices")
	if chartsIdx == -1 || appendicesIdx == -1 || chartsIdx > appendicesIdx {
		t.Errorf("charts at %d, appendices at %d; want charts first", chartsIdx, appendicesIdx)
	}
}

func TestMarkdownInvestorPitch(t *testing.T) {
	rep := markdownReport()
	rep.TemplateID = "investor-pitch"
	rep.Title = "Phoenix - Investor Pitch"
	rep.Content.Appendices = nil

	out, err := NewMarkdownFormatter().Format(rep, mustTemplate(t, "investor-pitch"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	wantFragments := []string{
		"_Generated 2026-03-15 for the investor audience._",
		"## Market Opportunity",
		"- Market opportunity: $2B TAM",
		"## Traction",
		"- Validation: 100%",
		"## Financial Projections",
		"- Revenue projection: $250K ARR",
		"Launch readiness: 49/100",
		"## The Ask",
		"1. Assign owners and mitigation plans to the open risks.",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownEmptyReport(t *testing.T) {
	rep := &report.Report{
		Title:       "Untitled Project - Executive Summary",
		GeneratedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Content: report.Content{
			ExecutiveSummary: "This project is a new venture.",
			Overview:         metrics.ProgressOverview{TotalPhases: 8},
		},
	}

	out, err := NewMarkdownFormatter().Format(rep, mustTemplate(t, "executive-summary"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	if !strings.Contains(out, "No phase progress recorded yet.") {
		t.Error("missing empty-progress placeholder")
	}
	if !strings.Contains(out, "No notable findings captured yet.") {
		t.Error("missing empty-findings placeholder")
	}
	if strings.Contains(out, "## Charts") {
		t.Error("chartless report rendered a charts section")
	}
}

func TestMarkdownDeterministic(t *testing.T) {
	tmpl := mustTemplate(t, "detailed-analysis")
	formatter := NewMarkdownFormatter()

	first, err := formatter.Format(markdownReport(), tmpl)
	if err != nil {
		t.Fatalf("first format: %v", err)
	}
	second, err := formatter.Format(markdownReport(), tmpl)
	if err != nil {
		t.Fatalf("second format: %v", err)
	}

	if first != second {
		t.Error("identical reports rendered different markdown")
	}
}

func TestYAMLFormatterOutput(t *testing.T) {
	out, err := NewYAMLFormatter().Format(markdownReport(), mustTemplate(t, "executive-summary"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	for _, want := range []string{"id: report-1742040000000-a1b2c3d4", "overall_completion: 40.625", "risk_level: medium"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q", want)
		}
	}
}

func TestJSONFormatterOutput(t *testing.T) {
	out, err := NewJSONFormatter().Format(markdownReport(), mustTemplate(t, "executive-summary"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	for _, want := range []string{`"templateId": "executive-summary"`, `"readinessScore": 49`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %q", want)
		}
	}
}

func TestFilterSections(t *testing.T) {
	tmpl := mustTemplate(t, "detailed-analysis")

	// Empty filter returns the template unchanged
	unchanged := FilterSections(tmpl, nil)
	if len(unchanged.Sections) != len(tmpl.Sections) {
		t.Errorf("empty filter dropped sections: %d -> %d", len(tmpl.Sections), len(unchanged.Sections))
	}

	// Optional sections survive only when requested; required always stay
	filtered := FilterSections(tmpl, []string{"recommendations"})
	ids := make(map[string]bool)
	for _, section := range filtered.Sections {
		ids[section.ID] = true
	}
	if !ids["recommendations"] {
		t.Error("requested optional section was dropped")
	}
	if ids["appendices"] {
		t.Error("unrequested optional section was kept")
	}
	for _, required := range []string{"overview", "progress", "phases", "insights", "risks"} {
		if !ids[required] {
			t.Errorf("required section %s was dropped", required)
		}
	}

	// Unknown ids are ignored
	unknown := FilterSections(tmpl, []string{"bogus"})
	for _, section := range unknown.Sections {
		if !section.Required {
			t.Errorf("optional section %s kept for unknown filter", section.ID)
		}
	}
}
