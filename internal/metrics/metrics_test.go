package metrics

import (
	"testing"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
)

// progressWithCompletions builds a progress record assigning the given
// completion percentages to the canonical phases in order.
func progressWithCompletions(completions [launch.TotalPhases]float64) *launch.UserProgress {
	progress := &launch.UserProgress{
		UserID:    "user-1",
		ProjectID: "proj-1",
		Phases:    make(map[launch.Phase]launch.PhaseProgress),
	}
	for i, phase := range launch.CanonicalPhases() {
		progress.Phases[phase] = launch.PhaseProgress{
			Phase:      phase,
			Steps:      []launch.Step{},
			Completion: completions[i],
		}
	}
	return progress
}

func TestCalculateOverallCompletion(t *testing.T) {
	// validation, definition, technical, marketing, operations,
	// financial, risks, optimization
	progress := progressWithCompletions([launch.TotalPhases]float64{100, 50, 50, 0, 0, 100, 25, 0})

	got := CalculateOverallCompletion(progress)
	if got != 40.625 {
		t.Errorf("CalculateOverallCompletion() = %v, want 40.625 exactly", got)
	}
}

func TestCalculateOverallCompletionSparse(t *testing.T) {
	// Missing phases count as 0 in the mean; only validation is present.
	progress := &launch.UserProgress{
		Phases: map[launch.Phase]launch.PhaseProgress{
			launch.PhaseValidation: {Phase: launch.PhaseValidation, Completion: 80},
		},
	}

	got := CalculateOverallCompletion(progress)
	if got != 10 {
		t.Errorf("CalculateOverallCompletion() = %v, want 10", got)
	}
}

func TestCalculateOverallCompletionNil(t *testing.T) {
	if got := CalculateOverallCompletion(nil); got != 0 {
		t.Errorf("CalculateOverallCompletion(nil) = %v, want 0", got)
	}
}

func TestCalculateOverallCompletionClampsMalformed(t *testing.T) {
	progress := progressWithCompletions([launch.TotalPhases]float64{150, -50, 0, 0, 0, 0, 0, 0})

	// 150 clamps to 100, -50 clamps to 0.
	got := CalculateOverallCompletion(progress)
	if got != 12.5 {
		t.Errorf("CalculateOverallCompletion() = %v, want 12.5", got)
	}
}

func TestTimeSpentDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	started := now.AddDate(0, 0, -10)

	progress := progressWithCompletions([launch.TotalPhases]float64{50, 0, 0, 0, 0, 0, 0, 0})
	pp := progress.Phases[launch.PhaseValidation]
	pp.StartedAt = &started
	progress.Phases[launch.PhaseValidation] = pp

	if got := TimeSpentDays(progress, now); got != 10 {
		t.Errorf("TimeSpentDays() = %d, want 10", got)
	}
}

func TestTimeSpentDaysUsesEarliestStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	early := now.AddDate(0, 0, -30)
	later := now.AddDate(0, 0, -5)

	progress := progressWithCompletions([launch.TotalPhases]float64{100, 20, 0, 0, 0, 0, 0, 0})
	validation := progress.Phases[launch.PhaseValidation]
	validation.StartedAt = &later
	progress.Phases[launch.PhaseValidation] = validation
	definition := progress.Phases[launch.PhaseDefinition]
	definition.StartedAt = &early
	progress.Phases[launch.PhaseDefinition] = definition

	if got := TimeSpentDays(progress, now); got != 30 {
		t.Errorf("TimeSpentDays() = %d, want 30", got)
	}
}

func TestTimeSpentDaysCompleteProjectStopsClock(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	finished := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	progress := progressWithCompletions([launch.TotalPhases]float64{100, 100, 100, 100, 100, 100, 100, 100})
	for _, phase := range launch.CanonicalPhases() {
		pp := progress.Phases[phase]
		pp.StartedAt = &started
		pp.CompletedAt = &finished
		progress.Phases[phase] = pp
	}

	// 31 days between start and the last completion, not the 151 to now.
	if got := TimeSpentDays(progress, now); got != 31 {
		t.Errorf("TimeSpentDays() = %d, want 31", got)
	}
}

func TestTimeSpentDaysClampsNegative(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)

	progress := progressWithCompletions([launch.TotalPhases]float64{10, 0, 0, 0, 0, 0, 0, 0})
	pp := progress.Phases[launch.PhaseValidation]
	pp.StartedAt = &future
	progress.Phases[launch.PhaseValidation] = pp

	if got := TimeSpentDays(progress, now); got != 0 {
		t.Errorf("TimeSpentDays() = %d, want 0 for future start", got)
	}
}

func TestTimeSpentDaysNoStarts(t *testing.T) {
	progress := progressWithCompletions([launch.TotalPhases]float64{})
	if got := TimeSpentDays(progress, time.Now()); got != 0 {
		t.Errorf("TimeSpentDays() = %d, want 0 when nothing started", got)
	}
}

func TestEstimateDaysRemaining(t *testing.T) {
	tests := []struct {
		name      string
		timeSpent int
		overall   float64
		want      int
	}{
		{
			name:      "halfway takes as long again",
			timeSpent: 20,
			overall:   50,
			want:      20,
		},
		{
			name:      "quarter done projects triple",
			timeSpent: 10,
			overall:   25,
			want:      30,
		},
		{
			name:      "nothing spent estimates zero",
			timeSpent: 0,
			overall:   0,
			want:      0,
		},
		{
			name:      "complete project estimates zero",
			timeSpent: 90,
			overall:   100,
			want:      0,
		},
		{
			name:      "tiny completion avoids division blowup",
			timeSpent: 5,
			overall:   0.5,
			want:      498,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDaysRemaining(tt.timeSpent, tt.overall)
			if got != tt.want {
				t.Errorf("EstimateDaysRemaining(%d, %v) = %d, want %d",
					tt.timeSpent, tt.overall, got, tt.want)
			}
		})
	}
}

func TestBuildOverview(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	started := now.AddDate(0, 0, -16)

	progress := progressWithCompletions([launch.TotalPhases]float64{100, 50, 50, 0, 0, 100, 25, 0})
	validation := progress.Phases[launch.PhaseValidation]
	validation.StartedAt = &started
	validation.Steps = []launch.Step{
		{ID: "problem-interviews", Status: launch.StatusCompleted},
		{ID: "market-sizing", Status: launch.StatusCompleted},
	}
	progress.Phases[launch.PhaseValidation] = validation

	definition := progress.Phases[launch.PhaseDefinition]
	definition.Steps = []launch.Step{
		{ID: "value-proposition", Status: launch.StatusCompleted},
		{ID: "mission-statement", Status: launch.StatusInProgress},
	}
	progress.Phases[launch.PhaseDefinition] = definition

	overview := BuildOverview(progress, now)

	if overview.TotalPhases != 8 {
		t.Errorf("TotalPhases = %d, want 8", overview.TotalPhases)
	}
	if overview.PhasesCompleted != 2 {
		t.Errorf("PhasesCompleted = %d, want 2", overview.PhasesCompleted)
	}
	if overview.OverallCompletion != 40.625 {
		t.Errorf("OverallCompletion = %v, want 40.625", overview.OverallCompletion)
	}
	if overview.StepsTotal != 4 {
		t.Errorf("StepsTotal = %d, want 4", overview.StepsTotal)
	}
	if overview.StepsCompleted != 3 {
		t.Errorf("StepsCompleted = %d, want 3", overview.StepsCompleted)
	}
	if overview.TimeSpentDays != 16 {
		t.Errorf("TimeSpentDays = %d, want 16", overview.TimeSpentDays)
	}
	// 16 / 40.625 * 59.375 rounds to 23.
	if overview.EstimatedDaysRemaining != 23 {
		t.Errorf("EstimatedDaysRemaining = %d, want 23", overview.EstimatedDaysRemaining)
	}
}

func TestBuildOverviewNil(t *testing.T) {
	overview := BuildOverview(nil, time.Now())

	if overview.TotalPhases != 8 {
		t.Errorf("TotalPhases = %d, want 8", overview.TotalPhases)
	}
	if overview.OverallCompletion != 0 || overview.PhasesCompleted != 0 {
		t.Errorf("nil progress overview = %+v, want zeros", overview)
	}
}
