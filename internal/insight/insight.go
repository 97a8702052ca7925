// Package insight derives qualitative observations from project and
// progress data: key findings pulled from captured facts, per-phase next
// steps, and audience-tailored recommendations.
package insight

import (
	"fmt"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
)

// ExtractKeyFindings scans the project's captured facts in a fixed
// priority order and emits one formatted finding per present fact.
// Absent facts are skipped, never placeholdered, so the output length
// varies with how much planning data exists. The scan order is stable
// across calls.
func ExtractKeyFindings(project *launch.ProjectData) []string {
	var findings []string
	if project == nil {
		return findings
	}

	facts := project.Facts
	if v := facts.Validation; v != nil && v.MarketSize != "" {
		findings = append(findings, fmt.Sprintf("Market opportunity: %s", v.MarketSize))
	}
	if f := facts.Financial; f != nil && f.ProjectedRevenue != "" {
		findings = append(findings, fmt.Sprintf("Revenue projection: %s", f.ProjectedRevenue))
	}
	if v := facts.Validation; v != nil && v.CompetitorAnalysis != "" {
		findings = append(findings, fmt.Sprintf("Competitive landscape: %s", v.CompetitorAnalysis))
	}
	if v := facts.Validation; v != nil && v.UserInterviews != "" {
		findings = append(findings, fmt.Sprintf("User research: %s", v.UserInterviews))
	}
	if d := facts.Definition; d != nil && d.ValueProposition != "" {
		findings = append(findings, fmt.Sprintf("Value proposition: %s", d.ValueProposition))
	}
	if t := facts.Technical; t != nil && len(t.TechStack) > 0 {
		findings = append(findings, fmt.Sprintf("Technical foundation: %d technologies selected", len(t.TechStack)))
	}
	if m := facts.Marketing; m != nil && m.LaunchStrategy != "" {
		findings = append(findings, fmt.Sprintf("Launch strategy: %s", m.LaunchStrategy))
	}
	if f := facts.Financial; f != nil && f.FundingRequirement != "" {
		findings = append(findings, fmt.Sprintf("Funding requirement: %s", f.FundingRequirement))
	}

	return findings
}

// IdentifyNextSteps returns "{phase}: {stepID}" for the first step that is
// not_started or in_progress in each phase, iterating phases in framework
// order. Fully complete phases and phases without steps contribute
// nothing, so the result holds at most one entry per phase.
func IdentifyNextSteps(progress *launch.UserProgress) []string {
	var steps []string
	if progress == nil {
		return steps
	}

	for _, phase := range launch.CanonicalPhases() {
		pp := progress.PhaseFor(phase)
		if id, ok := pp.FirstIncompleteStep(); ok {
			steps = append(steps, fmt.Sprintf("%s: %s", phase, id))
		}
	}
	return steps
}

// GenerateRecommendations produces audience-tailored action items from the
// computed risk level, readiness score, and progress overview. Investor
// recommendations always reference the investment case. The result is
// never empty.
func GenerateRecommendations(audience launch.Audience, riskLevel launch.RiskLevel, readiness int, overview metrics.ProgressOverview) []string {
	if audience == launch.AudienceInvestor {
		return investorRecommendations(riskLevel, readiness)
	}
	return teamRecommendations(riskLevel, readiness, overview)
}

// investorRecommendations frames advice around the investment case.
func investorRecommendations(riskLevel launch.RiskLevel, readiness int) []string {
	recs := []string{
		"Highlight validated traction and market signals to strengthen the investment case.",
	}
	if readiness >= 70 {
		recs = append(recs, "Readiness supports opening the investment round on the current timeline.")
	} else {
		recs = append(recs, "Close the remaining execution gaps before courting investment partners.")
	}
	if riskLevel == launch.RiskHigh {
		recs = append(recs, "Present a concrete mitigation plan for the highest-rated risks alongside the investment ask.")
	}
	return recs
}

// teamRecommendations serves stakeholder and internal audiences with
// execution-focused advice.
func teamRecommendations(riskLevel launch.RiskLevel, readiness int, overview metrics.ProgressOverview) []string {
	var recs []string

	if readiness < 50 {
		recs = append(recs, "Prioritize validation work before committing further launch resources.")
	}

	switch riskLevel {
	case launch.RiskHigh:
		recs = append(recs, "Address identified risks before proceeding to launch.")
	case launch.RiskMedium:
		recs = append(recs, "Assign owners and mitigation plans to the open risks.")
	}

	if overview.OverallCompletion >= 80 {
		recs = append(recs, "Begin launch preparation: confirm the announcement plan and support readiness.")
	} else if overview.PhasesCompleted == 0 && overview.OverallCompletion > 0 {
		recs = append(recs, "Drive the most advanced phase to completion to build planning momentum.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Maintain the current execution pace across the remaining phases.")
	}
	return recs
}
