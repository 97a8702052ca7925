package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/report"
)

// MarkdownFormatter renders reports as Markdown documents. Layout follows
// the template's ordered sections; each section is rendered from the report
// content it maps to.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new Markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders a report as Markdown.
func (f *MarkdownFormatter) Format(rep *report.Report, tmpl report.Template) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, rep, tmpl); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes Markdown output to a writer. Charts render as data
// tables before the appendices, or at the end of the document when the
// template has no appendix section.
func (f *MarkdownFormatter) FormatToWriter(w io.Writer, rep *report.Report, tmpl report.Template) error {
	fmt.Fprintf(w, "# %s\n\n", rep.Title)
	fmt.Fprintf(w, "_Generated %s for the %s audience._\n\n",
		rep.GeneratedAt.Format("2006-01-02"), tmpl.Audience)

	chartsWritten := false
	for _, section := range tmpl.Sections {
		if section.ID == "appendices" && !chartsWritten && rep.Content.HasCharts() {
			f.writeCharts(w, rep)
			chartsWritten = true
		}
		f.writeSection(w, section, rep)
	}

	if !chartsWritten && rep.Content.HasCharts() {
		f.writeCharts(w, rep)
	}

	return nil
}

// writeSection renders one template section. Unknown section ids render
// nothing so template evolution cannot break older reports.
func (f *MarkdownFormatter) writeSection(w io.Writer, section report.Section, rep *report.Report) {
	content := &rep.Content

	switch section.ID {
	case "overview":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		fmt.Fprintf(w, "%s\n\n", content.ExecutiveSummary)
		f.writeOverviewTable(w, content)

	case "progress", "traction":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeProgress(w, content)

	case "phases":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writePhases(w, content)

	case "insights":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeInsights(w, content)

	case "opportunity":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeFindings(w, content, "No market findings captured yet.")

	case "risks":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeRisks(w, content)

	case "financials":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeFinancials(w, content)

	case "recommendations", "ask":
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeRecommendations(w, content)

	case "appendices":
		if !content.HasAppendices() {
			return
		}
		fmt.Fprintf(w, "## %s\n\n", section.Title)
		f.writeAppendices(w, content)
	}
}

func (f *MarkdownFormatter) writeOverviewTable(w io.Writer, content *report.Content) {
	o := content.Overview
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "| --- | --- |")
	fmt.Fprintf(w, "| Overall completion | %.1f%% |\n", o.OverallCompletion)
	fmt.Fprintf(w, "| Phases completed | %d of %d |\n", o.PhasesCompleted, o.TotalPhases)
	fmt.Fprintf(w, "| Steps completed | %d of %d |\n", o.StepsCompleted, o.StepsTotal)
	fmt.Fprintf(w, "| Time spent | %d days |\n", o.TimeSpentDays)
	fmt.Fprintf(w, "| Estimated time remaining | %d days |\n", o.EstimatedDaysRemaining)
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeProgress(w io.Writer, content *report.Content) {
	if len(content.PhaseAnalysis) == 0 {
		fmt.Fprintln(w, "No phase progress recorded yet.")
		fmt.Fprintln(w)
		return
	}

	for _, pa := range content.PhaseAnalysis {
		line := fmt.Sprintf("- %s: %.0f%%", phaseTitle(pa.Phase), pa.Completion)
		if len(pa.NextSteps) > 0 {
			line += fmt.Sprintf(" (next: %s)", pa.NextSteps[0])
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writePhases(w io.Writer, content *report.Content) {
	for _, pa := range content.PhaseAnalysis {
		fmt.Fprintf(w, "### %s\n\n", phaseTitle(pa.Phase))
		fmt.Fprintf(w, "Completion: %.0f%%\n\n", pa.Completion)

		if len(pa.KeyAchievements) > 0 {
			fmt.Fprintf(w, "Key achievements: %s\n\n", strings.Join(pa.KeyAchievements, ", "))
		}
		if len(pa.Challenges) > 0 {
			fmt.Fprintln(w, "Challenges:")
			for _, challenge := range pa.Challenges {
				fmt.Fprintf(w, "- %s\n", challenge)
			}
			fmt.Fprintln(w)
		}
		if len(pa.NextSteps) > 0 {
			fmt.Fprintf(w, "Next steps: %s\n\n", strings.Join(pa.NextSteps, ", "))
		}
	}
}

func (f *MarkdownFormatter) writeInsights(w io.Writer, content *report.Content) {
	f.writeFindings(w, content, "No notable findings captured yet.")

	fmt.Fprintf(w, "Risk level: %s\n\n", content.Insights.RiskLevel)
	fmt.Fprintf(w, "Launch readiness: %d/100\n\n", content.Insights.ReadinessScore)

	if len(content.Insights.NextSteps) > 0 {
		fmt.Fprintln(w, "Upcoming steps:")
		for _, step := range content.Insights.NextSteps {
			fmt.Fprintf(w, "- %s\n", step)
		}
		fmt.Fprintln(w)
	}
}

func (f *MarkdownFormatter) writeFindings(w io.Writer, content *report.Content, empty string) {
	if len(content.Insights.KeyFindings) == 0 {
		fmt.Fprintln(w, empty)
		fmt.Fprintln(w)
		return
	}
	for _, finding := range content.Insights.KeyFindings {
		fmt.Fprintf(w, "- %s\n", finding)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeRisks(w io.Writer, content *report.Content) {
	fmt.Fprintf(w, "Overall risk level: %s\n\n", content.Insights.RiskLevel)

	var concerns []string
	for _, pa := range content.PhaseAnalysis {
		concerns = append(concerns, pa.Challenges...)
	}
	if len(concerns) > 0 {
		fmt.Fprintln(w, "Open concerns:")
		for _, concern := range concerns {
			fmt.Fprintf(w, "- %s\n", concern)
		}
		fmt.Fprintln(w)
	}
}

func (f *MarkdownFormatter) writeFinancials(w io.Writer, content *report.Content) {
	// Financial findings carry fixed prefixes set by the insight extractor.
	var lines []string
	for _, finding := range content.Insights.KeyFindings {
		if strings.HasPrefix(finding, "Revenue projection:") ||
			strings.HasPrefix(finding, "Funding requirement:") {
			lines = append(lines, finding)
		}
	}

	if len(lines) == 0 {
		fmt.Fprintln(w, "No financial projections captured yet.")
		fmt.Fprintln(w)
	} else {
		for _, line := range lines {
			fmt.Fprintf(w, "- %s\n", line)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Launch readiness: %d/100\n\n", content.Insights.ReadinessScore)
}

func (f *MarkdownFormatter) writeRecommendations(w io.Writer, content *report.Content) {
	if len(content.Recommendations) == 0 {
		fmt.Fprintln(w, "No recommendations.")
		fmt.Fprintln(w)
		return
	}
	for i, rec := range content.Recommendations {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeAppendices(w io.Writer, content *report.Content) {
	for _, appendix := range content.Appendices {
		fmt.Fprintf(w, "### %s\n\n", appendix.Title)
		fmt.Fprintf(w, "%s\n\n", appendix.Content)
	}
}

// writeCharts renders each chart as a data table. Series rows sort by label
// so the same report always renders the same bytes.
func (f *MarkdownFormatter) writeCharts(w io.Writer, rep *report.Report) {
	fmt.Fprintln(w, "## Charts")
	fmt.Fprintln(w)

	for _, chart := range rep.Content.Charts {
		fmt.Fprintf(w, "### %s\n\n", chart.Title)
		fmt.Fprintf(w, "%s\n\n", chart.Description)

		labels := make([]string, 0, len(chart.Data))
		for label := range chart.Data {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		fmt.Fprintln(w, "| Series | Value |")
		fmt.Fprintln(w, "| --- | --- |")
		for _, label := range labels {
			fmt.Fprintf(w, "| %s | %.1f |\n", label, chart.Data[label])
		}
		fmt.Fprintln(w)
	}
}

// phaseTitle renders a phase id as a heading ("validation" -> "Validation").
// A fresh caser per call keeps rendering safe under concurrent use.
func phaseTitle(p launch.Phase) string {
	return cases.Title(language.English).String(p.String())
}
