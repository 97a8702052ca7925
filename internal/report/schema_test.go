package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
)

func sampleReport() *Report {
	return &Report{
		ID:          "report-1742040000000-a1b2c3d4",
		ProjectID:   "proj-1",
		TemplateID:  "executive-summary",
		Title:       "Phoenix - Executive Summary",
		GeneratedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Content: Content{
			ExecutiveSummary: "Phoenix is a fintech venture targeting SMB finance teams.",
			Overview: metrics.ProgressOverview{
				TotalPhases:       8,
				PhasesCompleted:   2,
				OverallCompletion: 40.625,
			},
			PhaseAnalysis: []PhaseAnalysis{
				{
					Phase:           launch.PhaseValidation,
					Completion:      100,
					KeyAchievements: []string{"Problem Interviews", "Market Sizing"},
				},
			},
			Insights: Insights{
				KeyFindings:    []string{"Market opportunity: $2B TAM"},
				NextSteps:      []string{"definition: value-proposition"},
				RiskLevel:      launch.RiskMedium,
				ReadinessScore: 49,
			},
			Recommendations: []string{"Assign owners and mitigation plans to the open risks."},
			Charts: []Chart{
				{
					Type:        ChartBar,
					Title:       "Phase Completion",
					Data:        map[string]float64{"validation": 100},
					Description: "Completion percentage for each launch phase",
				},
			},
		},
	}
}

func TestReportYAMLMarshal(t *testing.T) {
	data, err := yaml.Marshal(sampleReport())
	if err != nil {
		t.Fatalf("yaml.Marshal() error: %v", err)
	}

	out := string(data)
	wantFragments := []string{
		"id: report-1742040000000-a1b2c3d4",
		"template_id: executive-summary",
		"overall_completion: 40.625",
		"risk_level: medium",
		"readiness_score: 49",
		"type: bar",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}

	// Appendices were not set; omitempty keeps them out of the document.
	if strings.Contains(out, "appendices") {
		t.Error("YAML output contains empty appendices key")
	}
}

func TestReportJSONRoundTrip(t *testing.T) {
	original := sampleReport()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}

	out := string(data)
	for _, want := range []string{`"templateId":"executive-summary"`, `"readinessScore":49`, `"riskLevel":"medium"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q", want)
		}
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if decoded.ID != original.ID {
		t.Errorf("round-trip ID = %q, want %q", decoded.ID, original.ID)
	}
	if decoded.Content.Overview.OverallCompletion != 40.625 {
		t.Errorf("round-trip OverallCompletion = %v, want 40.625",
			decoded.Content.Overview.OverallCompletion)
	}
	if len(decoded.Content.Charts) != 1 || decoded.Content.Charts[0].Type != ChartBar {
		t.Errorf("round-trip charts = %+v", decoded.Content.Charts)
	}
}

func TestValidateChartType(t *testing.T) {
	valid := []ChartType{ChartBar, ChartPie, ChartLine, ChartRadar}
	for _, ct := range valid {
		if !ValidateChartType(ct) {
			t.Errorf("ValidateChartType(%q) = false, want true", ct)
		}
	}
	for _, ct := range []ChartType{"scatter", "", "BAR"} {
		if ValidateChartType(ct) {
			t.Errorf("ValidateChartType(%q) = true, want false", ct)
		}
	}
}

func TestValidateAppendixType(t *testing.T) {
	valid := []AppendixType{AppendixData, AppendixMethodology, AppendixReferences}
	for _, at := range valid {
		if !ValidateAppendixType(at) {
			t.Errorf("ValidateAppendixType(%q) = false, want true", at)
		}
	}
	for _, at := range []AppendixType{"glossary", ""} {
		if ValidateAppendixType(at) {
			t.Errorf("ValidateAppendixType(%q) = true, want false", at)
		}
	}
}

func TestContentHelpers(t *testing.T) {
	content := &Content{}
	if content.HasCharts() || content.HasAppendices() {
		t.Error("empty content reports charts or appendices present")
	}
	if content.PhaseCount() != 0 {
		t.Errorf("PhaseCount() = %d, want 0", content.PhaseCount())
	}

	content.Charts = []Chart{{Type: ChartPie}}
	content.Appendices = []Appendix{{Type: AppendixData}}
	content.PhaseAnalysis = []PhaseAnalysis{{Phase: launch.PhaseValidation}}

	if !content.HasCharts() || !content.HasAppendices() {
		t.Error("populated content reports charts or appendices absent")
	}
	if content.PhaseCount() != 1 {
		t.Errorf("PhaseCount() = %d, want 1", content.PhaseCount())
	}
}
