// Package scoring assesses launch risk and readiness. Risk classification
// works off the project's risk register; readiness blends completion, risk,
// and the presence of key planning artifacts into a 0-100 score.
package scoring

import (
	"math"

	"github.com/hargabyte/liftoff/internal/launch"
	"github.com/hargabyte/liftoff/internal/metrics"
)

// Risk weight thresholds. A risk's weight is the product of its impact and
// probability ordinals (low=1, medium=2, high=3), so weights range 1-9.
// Only a risk rated high on both axes (weight 9) clears the high bar;
// a single high paired with medium (weight 6) stays medium.
const (
	// riskHighWeight is the minimum weight classified as high risk
	riskHighWeight = 7

	// riskMediumWeight is the minimum weight classified as medium risk
	riskMediumWeight = 3
)

// RiskWeight returns the numeric weight of one risk entry: the product of
// its impact and probability ordinals. Unknown ratings weigh 0.
func RiskWeight(r launch.RiskEntry) int {
	return r.Impact.Ordinal() * r.Probability.Ordinal()
}

// ClassifyRiskWeight maps a numeric risk weight to a risk level.
// Thresholds:
//   - high: weight >= 7
//   - medium: weight >= 3
//   - low: weight < 3
func ClassifyRiskWeight(weight int) launch.RiskLevel {
	switch {
	case weight >= riskHighWeight:
		return launch.RiskHigh
	case weight >= riskMediumWeight:
		return launch.RiskMedium
	default:
		return launch.RiskLow
	}
}

// AssessOverallRisk classifies a project's overall risk exposure from its
// risk register: the maximum entry weight decides the level, and an empty
// register is low risk.
func AssessOverallRisk(project *launch.ProjectData) launch.RiskLevel {
	if project == nil {
		return launch.RiskLow
	}

	maxWeight := 0
	for _, r := range project.Facts.IdentifiedRisks() {
		if w := RiskWeight(r); w > maxWeight {
			maxWeight = w
		}
	}
	return ClassifyRiskWeight(maxWeight)
}

// RiskDistribution counts the project's risk register entries by level.
// Every level appears in the result, zero-valued when no entry maps to it.
func RiskDistribution(project *launch.ProjectData) map[launch.RiskLevel]int {
	dist := map[launch.RiskLevel]int{
		launch.RiskLow:    0,
		launch.RiskMedium: 0,
		launch.RiskHigh:   0,
	}
	if project == nil {
		return dist
	}
	for _, r := range project.Facts.IdentifiedRisks() {
		dist[ClassifyRiskWeight(RiskWeight(r))]++
	}
	return dist
}

// ReadinessWeights contains the blend weights for the readiness score.
// The three weights should sum to 1.0.
type ReadinessWeights struct {
	Completion float64 // Default: 0.6
	Risk       float64 // Default: 0.3
	Artifacts  float64 // Default: 0.1
}

// DefaultReadinessWeights returns the default readiness blend.
func DefaultReadinessWeights() ReadinessWeights {
	return ReadinessWeights{
		Completion: 0.6,
		Risk:       0.3,
		Artifacts:  0.1,
	}
}

// RiskCredit converts a risk level into score credit: low risk earns full
// credit, high risk close to none.
func RiskCredit(level launch.RiskLevel) float64 {
	switch level {
	case launch.RiskLow:
		return 100
	case launch.RiskMedium:
		return 50
	default:
		return 10
	}
}

// artifactScore awards 50 points per populated critical planning artifact:
// the validated market size and the revenue projection.
func artifactScore(project *launch.ProjectData) float64 {
	if project == nil {
		return 0
	}
	var score float64
	if v := project.Facts.Validation; v != nil && v.MarketSize != "" {
		score += 50
	}
	if f := project.Facts.Financial; f != nil && f.ProjectedRevenue != "" {
		score += 50
	}
	return score
}

// CalculateLaunchReadiness scores how ready a project is to launch, in
// [0,100], using the default weights.
func CalculateLaunchReadiness(project *launch.ProjectData, progress *launch.UserProgress) int {
	return CalculateLaunchReadinessWithWeights(project, progress, DefaultReadinessWeights())
}

// CalculateLaunchReadinessWithWeights scores launch readiness using custom
// blend weights. The score combines overall completion, credit for low
// risk, and presence of critical artifacts, rounded to the nearest integer
// and clamped to [0,100].
func CalculateLaunchReadinessWithWeights(project *launch.ProjectData, progress *launch.UserProgress, w ReadinessWeights) int {
	completion := metrics.CalculateOverallCompletion(progress)
	credit := RiskCredit(AssessOverallRisk(project))
	artifacts := artifactScore(project)

	raw := w.Completion*completion + w.Risk*credit + w.Artifacts*artifacts
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
