package scoring

import (
	"testing"

	"github.com/hargabyte/liftoff/internal/launch"
)

func projectWithRisks(risks ...launch.RiskEntry) *launch.ProjectData {
	return &launch.ProjectData{
		ID:   "proj-1",
		Name: "Test Launch",
		Facts: launch.ProjectFacts{
			Risks: &launch.RiskFacts{IdentifiedRisks: risks},
		},
	}
}

func fullProgress(completions [launch.TotalPhases]float64) *launch.UserProgress {
	progress := &launch.UserProgress{
		UserID:    "user-1",
		ProjectID: "proj-1",
		Phases:    make(map[launch.Phase]launch.PhaseProgress),
	}
	for i, phase := range launch.CanonicalPhases() {
		progress.Phases[phase] = launch.PhaseProgress{
			Phase:      phase,
			Completion: completions[i],
		}
	}
	return progress
}

func TestRiskWeight(t *testing.T) {
	tests := []struct {
		impact      launch.RiskImpact
		probability launch.RiskProbability
		want        int
	}{
		{launch.ImpactLow, launch.ProbabilityLow, 1},
		{launch.ImpactMedium, launch.ProbabilityMedium, 4},
		{launch.ImpactMedium, launch.ProbabilityHigh, 6},
		{launch.ImpactHigh, launch.ProbabilityMedium, 6},
		{launch.ImpactHigh, launch.ProbabilityHigh, 9},
		{launch.RiskImpact("bogus"), launch.ProbabilityHigh, 0},
	}

	for _, tt := range tests {
		r := launch.RiskEntry{Impact: tt.impact, Probability: tt.probability}
		if got := RiskWeight(r); got != tt.want {
			t.Errorf("RiskWeight(%s x %s) = %d, want %d",
				tt.impact, tt.probability, got, tt.want)
		}
	}
}

func TestClassifyRiskWeight(t *testing.T) {
	tests := []struct {
		weight int
		want   launch.RiskLevel
	}{
		{0, launch.RiskLow},
		{1, launch.RiskLow},
		{2, launch.RiskLow},
		{3, launch.RiskMedium},
		{4, launch.RiskMedium},
		{6, launch.RiskMedium},
		{7, launch.RiskHigh},
		{9, launch.RiskHigh},
	}

	for _, tt := range tests {
		if got := ClassifyRiskWeight(tt.weight); got != tt.want {
			t.Errorf("ClassifyRiskWeight(%d) = %v, want %v", tt.weight, got, tt.want)
		}
	}
}

func TestAssessOverallRisk(t *testing.T) {
	tests := []struct {
		name    string
		project *launch.ProjectData
		want    launch.RiskLevel
	}{
		{
			name:    "nil project",
			project: nil,
			want:    launch.RiskLow,
		},
		{
			name:    "empty register",
			project: projectWithRisks(),
			want:    launch.RiskLow,
		},
		{
			name:    "no facts at all",
			project: &launch.ProjectData{ID: "p", Name: "bare"},
			want:    launch.RiskLow,
		},
		{
			name: "single minor risk",
			project: projectWithRisks(
				launch.RiskEntry{ID: "r1", Impact: launch.ImpactLow, Probability: launch.ProbabilityLow},
			),
			want: launch.RiskLow,
		},
		{
			name: "moderate risk",
			project: projectWithRisks(
				launch.RiskEntry{ID: "r1", Impact: launch.ImpactLow, Probability: launch.ProbabilityHigh},
			),
			want: launch.RiskMedium,
		},
		{
			name: "two weight-six risks stay medium",
			project: projectWithRisks(
				launch.RiskEntry{ID: "r1", Impact: launch.ImpactMedium, Probability: launch.ProbabilityHigh},
				launch.RiskEntry{ID: "r2", Impact: launch.ImpactHigh, Probability: launch.ProbabilityMedium},
			),
			want: launch.RiskMedium,
		},
		{
			name: "high on both axes",
			project: projectWithRisks(
				launch.RiskEntry{ID: "r1", Impact: launch.ImpactLow, Probability: launch.ProbabilityLow},
				launch.RiskEntry{ID: "r2", Impact: launch.ImpactHigh, Probability: launch.ProbabilityHigh},
			),
			want: launch.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessOverallRisk(tt.project)
			if got != tt.want {
				t.Errorf("AssessOverallRisk() = %v, want %v", got, tt.want)
			}
			if !launch.ValidateRiskLevel(got) {
				t.Errorf("AssessOverallRisk() returned invalid level %q", got)
			}
		})
	}
}

func TestRiskDistribution(t *testing.T) {
	project := projectWithRisks(
		launch.RiskEntry{ID: "r1", Impact: launch.ImpactLow, Probability: launch.ProbabilityLow},
		launch.RiskEntry{ID: "r2", Impact: launch.ImpactMedium, Probability: launch.ProbabilityHigh},
		launch.RiskEntry{ID: "r3", Impact: launch.ImpactHigh, Probability: launch.ProbabilityHigh},
		launch.RiskEntry{ID: "r4", Impact: launch.ImpactMedium, Probability: launch.ProbabilityMedium},
	)

	dist := RiskDistribution(project)

	if dist[launch.RiskLow] != 1 {
		t.Errorf("low count = %d, want 1", dist[launch.RiskLow])
	}
	if dist[launch.RiskMedium] != 2 {
		t.Errorf("medium count = %d, want 2", dist[launch.RiskMedium])
	}
	if dist[launch.RiskHigh] != 1 {
		t.Errorf("high count = %d, want 1", dist[launch.RiskHigh])
	}
}

func TestRiskDistributionEmpty(t *testing.T) {
	dist := RiskDistribution(nil)

	for _, level := range []launch.RiskLevel{launch.RiskLow, launch.RiskMedium, launch.RiskHigh} {
		if count, ok := dist[level]; !ok || count != 0 {
			t.Errorf("dist[%v] = %d, %v; want 0, true", level, count, ok)
		}
	}
}

func TestCalculateLaunchReadiness(t *testing.T) {
	// Half complete, low risk, both artifacts present:
	// 0.6*50 + 0.3*100 + 0.1*100 = 70.
	project := &launch.ProjectData{
		ID:   "proj-1",
		Name: "Ready Launch",
		Facts: launch.ProjectFacts{
			Validation: &launch.ValidationFacts{MarketSize: "$2B TAM"},
			Financial:  &launch.FinancialFacts{ProjectedRevenue: "$250K ARR"},
		},
	}
	progress := fullProgress([launch.TotalPhases]float64{50, 50, 50, 50, 50, 50, 50, 50})

	if got := CalculateLaunchReadiness(project, progress); got != 70 {
		t.Errorf("CalculateLaunchReadiness() = %d, want 70", got)
	}
}

func TestCalculateLaunchReadinessHighRisk(t *testing.T) {
	// Half complete, high risk, no artifacts:
	// 0.6*50 + 0.3*10 + 0.1*0 = 33.
	project := projectWithRisks(
		launch.RiskEntry{ID: "r1", Impact: launch.ImpactHigh, Probability: launch.ProbabilityHigh},
	)
	progress := fullProgress([launch.TotalPhases]float64{50, 50, 50, 50, 50, 50, 50, 50})

	if got := CalculateLaunchReadiness(project, progress); got != 33 {
		t.Errorf("CalculateLaunchReadiness() = %d, want 33", got)
	}
}

func TestCalculateLaunchReadinessBounds(t *testing.T) {
	empty := &launch.ProjectData{ID: "p", Name: "empty"}

	tests := []struct {
		name     string
		project  *launch.ProjectData
		progress *launch.UserProgress
	}{
		{"nil everything", nil, nil},
		{"empty project no progress", empty, &launch.UserProgress{}},
		{"complete low risk", empty, fullProgress([launch.TotalPhases]float64{100, 100, 100, 100, 100, 100, 100, 100})},
		{
			"high risk nothing done",
			projectWithRisks(launch.RiskEntry{Impact: launch.ImpactHigh, Probability: launch.ProbabilityHigh}),
			&launch.UserProgress{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLaunchReadiness(tt.project, tt.progress)
			if got < 0 || got > 100 {
				t.Errorf("CalculateLaunchReadiness() = %d, outside [0,100]", got)
			}
		})
	}
}

func TestCalculateLaunchReadinessCustomWeights(t *testing.T) {
	// Completion-only weighting reduces the score to the raw mean.
	progress := fullProgress([launch.TotalPhases]float64{100, 50, 50, 0, 0, 100, 25, 0})
	weights := ReadinessWeights{Completion: 1.0}

	got := CalculateLaunchReadinessWithWeights(nil, progress, weights)
	if got != 41 {
		t.Errorf("CalculateLaunchReadinessWithWeights() = %d, want 41 (rounded 40.625)", got)
	}
}

func TestDefaultReadinessWeightsSumToOne(t *testing.T) {
	w := DefaultReadinessWeights()
	sum := w.Completion + w.Risk + w.Artifacts
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("default weights sum = %v, want 1.0", sum)
	}
}
