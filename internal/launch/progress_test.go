package launch

import (
	"testing"
	"time"
)

func TestNormalizeFillsAllPhases(t *testing.T) {
	progress := &UserProgress{
		UserID:    "user-1",
		ProjectID: "proj-1",
		Phases: map[Phase]PhaseProgress{
			PhaseValidation: {Phase: PhaseValidation, Completion: 100},
		},
	}

	progress.Normalize()

	if len(progress.Phases) != TotalPhases {
		t.Fatalf("Phases length = %d, want %d", len(progress.Phases), TotalPhases)
	}

	for _, phase := range CanonicalPhases() {
		pp, ok := progress.Phases[phase]
		if !ok {
			t.Errorf("missing phase %v after Normalize", phase)
			continue
		}
		if pp.Phase != phase {
			t.Errorf("phase entry %v has Phase = %v", phase, pp.Phase)
		}
	}

	// Existing entries survive.
	if progress.Phases[PhaseValidation].Completion != 100 {
		t.Errorf("validation completion = %v, want 100",
			progress.Phases[PhaseValidation].Completion)
	}

	// Filled entries are empty, not nil-stepped.
	def := progress.Phases[PhaseDefinition]
	if def.Steps == nil {
		t.Error("filled phase has nil Steps, want empty slice")
	}
	if def.Completion != 0 {
		t.Errorf("filled phase completion = %v, want 0", def.Completion)
	}
}

func TestNormalizeNilMap(t *testing.T) {
	progress := &UserProgress{UserID: "user-1", ProjectID: "proj-1"}
	progress.Normalize()

	if len(progress.Phases) != TotalPhases {
		t.Errorf("Phases length = %d, want %d", len(progress.Phases), TotalPhases)
	}
}

func TestNormalizeRepairsPhaseField(t *testing.T) {
	progress := &UserProgress{
		Phases: map[Phase]PhaseProgress{
			PhaseMarketing: {Phase: PhaseValidation, Completion: 25},
		},
	}
	progress.Normalize()

	if got := progress.Phases[PhaseMarketing].Phase; got != PhaseMarketing {
		t.Errorf("marketing entry Phase = %v, want %v", got, PhaseMarketing)
	}
}

func TestPhaseFor(t *testing.T) {
	progress := &UserProgress{
		Phases: map[Phase]PhaseProgress{
			PhaseTechnical: {Phase: PhaseTechnical, Completion: 50},
		},
	}

	if got := progress.PhaseFor(PhaseTechnical).Completion; got != 50 {
		t.Errorf("PhaseFor(technical).Completion = %v, want 50", got)
	}

	// Sparse map degrades to an empty entry.
	empty := progress.PhaseFor(PhaseFinancial)
	if empty.Completion != 0 || len(empty.Steps) != 0 {
		t.Errorf("PhaseFor(financial) = %+v, want empty entry", empty)
	}

	// Nil receiver degrades the same way.
	var nilProgress *UserProgress
	if got := nilProgress.PhaseFor(PhaseValidation).Completion; got != 0 {
		t.Errorf("nil PhaseFor completion = %v, want 0", got)
	}
}

func TestPresentPhasesOrder(t *testing.T) {
	progress := &UserProgress{
		Phases: map[Phase]PhaseProgress{
			PhaseFinancial:  {Phase: PhaseFinancial},
			PhaseValidation: {Phase: PhaseValidation},
			PhaseTechnical:  {Phase: PhaseTechnical},
		},
	}

	got := progress.PresentPhases()
	want := []Phase{PhaseValidation, PhaseTechnical, PhaseFinancial}

	if len(got) != len(want) {
		t.Fatalf("PresentPhases() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PresentPhases()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStepHelpers(t *testing.T) {
	now := time.Now()
	pp := PhaseProgress{
		Phase: PhaseDefinition,
		Steps: []Step{
			{ID: "value-proposition", Status: StatusCompleted, CompletedAt: &now},
			{ID: "mission-statement", Status: StatusInProgress},
			{ID: "success-criteria", Status: StatusNotStarted},
			{ID: "feature-scope", Status: StatusNotStarted},
		},
	}

	completed := pp.CompletedSteps()
	if len(completed) != 1 || completed[0] != "value-proposition" {
		t.Errorf("CompletedSteps() = %v, want [value-proposition]", completed)
	}

	first, ok := pp.FirstIncompleteStep()
	if !ok || first != "mission-statement" {
		t.Errorf("FirstIncompleteStep() = %q, %v; want mission-statement, true", first, ok)
	}

	upcoming := pp.UpcomingSteps(2)
	if len(upcoming) != 2 || upcoming[0] != "mission-statement" || upcoming[1] != "success-criteria" {
		t.Errorf("UpcomingSteps(2) = %v, want [mission-statement success-criteria]", upcoming)
	}
}

func TestCompletedWithoutTimestampStillCounts(t *testing.T) {
	// A completed step may be missing its timestamp in malformed data.
	// It still counts as completed for every derived computation.
	step := Step{ID: "pricing", Status: StatusCompleted}
	if !step.IsCompleted() {
		t.Error("completed step without timestamp should count as completed")
	}
}

func TestFirstIncompleteStepAllComplete(t *testing.T) {
	pp := PhaseProgress{
		Phase: PhaseValidation,
		Steps: []Step{
			{ID: "problem-interviews", Status: StatusCompleted},
			{ID: "market-sizing", Status: StatusCompleted},
		},
	}

	if id, ok := pp.FirstIncompleteStep(); ok {
		t.Errorf("FirstIncompleteStep() = %q, want none", id)
	}

	if got := pp.UpcomingSteps(3); len(got) != 0 {
		t.Errorf("UpcomingSteps() = %v, want empty", got)
	}
}

func TestRiskOrdinals(t *testing.T) {
	tests := []struct {
		impact      RiskImpact
		probability RiskProbability
		wantImpact  int
		wantProb    int
	}{
		{ImpactLow, ProbabilityLow, 1, 1},
		{ImpactMedium, ProbabilityMedium, 2, 2},
		{ImpactHigh, ProbabilityHigh, 3, 3},
		{RiskImpact("bogus"), RiskProbability("bogus"), 0, 0},
	}

	for _, tt := range tests {
		if got := tt.impact.Ordinal(); got != tt.wantImpact {
			t.Errorf("RiskImpact(%q).Ordinal() = %d, want %d", tt.impact, got, tt.wantImpact)
		}
		if got := tt.probability.Ordinal(); got != tt.wantProb {
			t.Errorf("RiskProbability(%q).Ordinal() = %d, want %d", tt.probability, got, tt.wantProb)
		}
	}
}

func TestIdentifiedRisksNilSafety(t *testing.T) {
	var facts *ProjectFacts
	if got := facts.IdentifiedRisks(); got != nil {
		t.Errorf("nil facts IdentifiedRisks() = %v, want nil", got)
	}

	empty := &ProjectFacts{}
	if got := empty.IdentifiedRisks(); got != nil {
		t.Errorf("empty facts IdentifiedRisks() = %v, want nil", got)
	}

	withRisks := &ProjectFacts{
		Risks: &RiskFacts{
			IdentifiedRisks: []RiskEntry{{ID: "r1", Impact: ImpactHigh, Probability: ProbabilityLow}},
		},
	}
	if got := withRisks.IdentifiedRisks(); len(got) != 1 {
		t.Errorf("IdentifiedRisks() length = %d, want 1", len(got))
	}
}
