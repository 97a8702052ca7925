package report

import (
	"fmt"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
	"github.com/hargabyte/liftoff/internal/scoring"
)

// buildCharts attaches the standard visualization set: phase completion,
// risk distribution, and a readiness profile. Chart data stays a plain
// label-to-value mapping so any export target can render it.
func buildCharts(project *launch.ProjectData, progress *launch.UserProgress, overview metrics.ProgressOverview, riskLevel launch.RiskLevel, readiness int) []Chart {
	completion := make(map[string]float64, launch.TotalPhases)
	for _, phase := range launch.CanonicalPhases() {
		completion[phase.String()] = progress.PhaseFor(phase).Completion
	}

	risks := make(map[string]float64, 3)
	for level, count := range scoring.RiskDistribution(project) {
		risks[level.String()] = float64(count)
	}

	profile := map[string]float64{
		"completion":  overview.OverallCompletion,
		"risk_credit": scoring.RiskCredit(riskLevel),
		"readiness":   float64(readiness),
	}

	return []Chart{
		{
			Type:        ChartBar,
			Title:       "Phase Completion",
			Data:        completion,
			Description: "Completion percentage for each launch phase",
		},
		{
			Type:        ChartPie,
			Title:       "Risk Distribution",
			Data:        risks,
			Description: "Identified risks grouped by assessed severity",
		},
		{
			Type:        ChartRadar,
			Title:       "Readiness Profile",
			Data:        profile,
			Description: "Completion, risk credit, and overall readiness on one scale",
		},
	}
}

// buildAppendices attaches the supporting material internal audiences
// get: a raw data summary, the methodology notes, and the data sources.
func buildAppendices(project *launch.ProjectData, progress *launch.UserProgress, template Template, overview metrics.ProgressOverview, generatedAt time.Time) []Appendix {
	userID := "unknown"
	if progress != nil && progress.UserID != "" {
		userID = progress.UserID
	}
	projectID := project.ID
	if projectID == "" {
		projectID = "unknown"
	}

	return []Appendix{
		{
			Type:  AppendixData,
			Title: "Progress Data",
			Content: fmt.Sprintf(
				"Phases tracked: %d. Phases complete: %d. Steps complete: %d of %d. Overall completion: %.3f%%.",
				overview.TotalPhases, overview.PhasesCompleted,
				overview.StepsCompleted, overview.StepsTotal,
				overview.OverallCompletion),
		},
		{
			Type:  AppendixMethodology,
			Title: "Methodology",
			Content: "Overall completion is the arithmetic mean of phase completion across the eight launch phases. " +
				"Risk level is classified from the highest impact-times-probability weight in the risk register. " +
				"Launch readiness blends overall completion, risk credit, and critical artifact presence into a 0-100 score.",
		},
		{
			Type:  AppendixReferences,
			Title: "References",
			Content: fmt.Sprintf(
				"Template: %s (%s). Source data: project %s, progress record for user %s. Generated %s.",
				template.Name, template.ID, projectID, userID,
				generatedAt.Format("2006-01-02")),
		},
	}
}
