// Package metrics derives completion and schedule metrics from launch
// progress data. All functions are pure and tolerate sparse or malformed
// input by degrading to zero values.
package metrics

import (
	"math"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
)

// ProgressOverview bundles the derived progress metrics for a project.
type ProgressOverview struct {
	// TotalPhases is the number of phases in the launch framework
	TotalPhases int `yaml:"total_phases" json:"totalPhases"`

	// PhasesCompleted counts phases at exactly 100% completion
	PhasesCompleted int `yaml:"phases_completed" json:"phasesCompleted"`

	// OverallCompletion is the raw mean completion across all phases.
	// Never rounded here; display layers round for presentation.
	OverallCompletion float64 `yaml:"overall_completion" json:"overallCompletion"`

	// StepsCompleted counts completed steps across all phases
	StepsCompleted int `yaml:"steps_completed" json:"stepsCompleted"`

	// StepsTotal counts all steps across all phases
	StepsTotal int `yaml:"steps_total" json:"stepsTotal"`

	// TimeSpentDays is whole days from the earliest phase start to now,
	// or to the latest phase completion once every phase is done
	TimeSpentDays int `yaml:"time_spent_days" json:"timeSpent"`

	// EstimatedDaysRemaining projects remaining days from elapsed time
	// and overall completion
	EstimatedDaysRemaining int `yaml:"estimated_days_remaining" json:"estimatedTimeRemaining"`
}

// CalculateOverallCompletion returns the arithmetic mean of phase
// completion across all 8 canonical phases. Phases missing from the
// progress map count as 0. The result may be fractional and is never
// rounded. A nil progress record yields 0.
func CalculateOverallCompletion(progress *launch.UserProgress) float64 {
	if progress == nil {
		return 0
	}
	var sum float64
	for _, phase := range launch.CanonicalPhases() {
		sum += clampPercent(progress.PhaseFor(phase).Completion)
	}
	return sum / launch.TotalPhases
}

// TimeSpentDays returns whole days elapsed between the earliest phase
// start and now. Once every phase is at 100%, the latest phase completion
// timestamp replaces now so finished projects stop accruing time.
// Returns 0 when no phase has started or the window is negative.
func TimeSpentDays(progress *launch.UserProgress, now time.Time) int {
	if progress == nil {
		return 0
	}

	var earliest, latestDone time.Time
	allComplete := true
	for _, phase := range launch.CanonicalPhases() {
		pp := progress.PhaseFor(phase)
		if pp.StartedAt != nil && (earliest.IsZero() || pp.StartedAt.Before(earliest)) {
			earliest = *pp.StartedAt
		}
		if clampPercent(pp.Completion) < 100 {
			allComplete = false
		}
		if pp.CompletedAt != nil && pp.CompletedAt.After(latestDone) {
			latestDone = *pp.CompletedAt
		}
	}

	if earliest.IsZero() {
		return 0
	}

	end := now
	if allComplete && !latestDone.IsZero() {
		end = latestDone
	}

	days := int(end.Sub(earliest).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// EstimateDaysRemaining projects how many days of work remain, weighting
// elapsed time by the remaining completion percentage:
//
//	timeSpent / max(overall, 1) * (100 - overall)
//
// The result is rounded to whole days and clamped to >= 0, so a finished
// project always estimates 0.
func EstimateDaysRemaining(timeSpentDays int, overallCompletion float64) int {
	base := overallCompletion
	if base < 1 {
		base = 1
	}
	est := float64(timeSpentDays) / base * (100 - overallCompletion)
	days := int(math.Round(est))
	if days < 0 {
		return 0
	}
	return days
}

// BuildOverview computes the full ProgressOverview for a progress record.
// A nil record produces an overview of zeros (TotalPhases stays 8).
func BuildOverview(progress *launch.UserProgress, now time.Time) ProgressOverview {
	overview := ProgressOverview{TotalPhases: launch.TotalPhases}
	if progress == nil {
		return overview
	}

	overview.OverallCompletion = CalculateOverallCompletion(progress)

	for _, phase := range launch.CanonicalPhases() {
		pp := progress.PhaseFor(phase)
		if clampPercent(pp.Completion) == 100 {
			overview.PhasesCompleted++
		}
		overview.StepsTotal += len(pp.Steps)
		for _, step := range pp.Steps {
			if step.IsCompleted() {
				overview.StepsCompleted++
			}
		}
	}

	overview.TimeSpentDays = TimeSpentDays(progress, now)
	overview.EstimatedDaysRemaining = EstimateDaysRemaining(
		overview.TimeSpentDays, overview.OverallCompletion)

	return overview
}

// clampPercent bounds a completion percentage to [0, 100] so malformed
// records cannot push derived metrics out of range.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
