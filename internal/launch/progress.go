package launch

import "time"

// Step is an atomic unit of work within a phase.
type Step struct {
	// ID is the stable step identifier (e.g. "value-proposition")
	ID string `yaml:"id" json:"id"`

	// Status is the tri-state completion status
	Status StepStatus `yaml:"status" json:"status"`

	// Data holds arbitrary step-specific values captured by the user
	Data map[string]string `yaml:"data,omitempty" json:"data,omitempty"`

	// CompletedAt is set when the step reaches completed status.
	// Well-formed data always sets it for completed steps, but a
	// completed step with no timestamp still counts as completed.
	CompletedAt *time.Time `yaml:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// IsCompleted reports whether the step counts as done.
func (s Step) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// PhaseProgress tracks a user's progress through one phase.
type PhaseProgress struct {
	// Phase names the phase this progress belongs to
	Phase Phase `yaml:"phase" json:"phase"`

	// Steps is the ordered sequence of steps worked in this phase
	Steps []Step `yaml:"steps" json:"steps"`

	// Completion is the phase completion percentage (0-100, may be fractional)
	Completion float64 `yaml:"completion" json:"completionPercentage"`

	// StartedAt is when work on the phase began
	StartedAt *time.Time `yaml:"started_at,omitempty" json:"startedAt,omitempty"`

	// CompletedAt is when the phase was finished
	CompletedAt *time.Time `yaml:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// CompletedSteps returns the ids of completed steps in order.
func (p PhaseProgress) CompletedSteps() []string {
	var ids []string
	for _, s := range p.Steps {
		if s.IsCompleted() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// FirstIncompleteStep returns the id of the first step whose status is
// not_started or in_progress, and true if one exists.
func (p PhaseProgress) FirstIncompleteStep() (string, bool) {
	for _, s := range p.Steps {
		if !s.IsCompleted() {
			return s.ID, true
		}
	}
	return "", false
}

// UpcomingSteps returns up to limit ids of steps not yet completed, in order.
func (p PhaseProgress) UpcomingSteps(limit int) []string {
	var ids []string
	for _, s := range p.Steps {
		if s.IsCompleted() {
			continue
		}
		ids = append(ids, s.ID)
		if len(ids) == limit {
			break
		}
	}
	return ids
}

// UserProgress is one user's progress record for one project.
type UserProgress struct {
	// UserID identifies the user
	UserID string `yaml:"user_id" json:"userId"`

	// ProjectID identifies the project
	ProjectID string `yaml:"project_id" json:"projectId"`

	// CurrentPhase points at the phase the user is actively working
	CurrentPhase Phase `yaml:"current_phase" json:"currentPhase"`

	// Phases maps each phase to its progress record. After Normalize,
	// every canonical phase has an entry.
	Phases map[Phase]PhaseProgress `yaml:"phases" json:"phases"`

	// UpdatedAt is when the record was last modified
	UpdatedAt time.Time `yaml:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Normalize fills in an empty progress entry for every canonical phase
// that is missing one, so downstream computations can iterate the full
// framework without nil checks. Existing entries are left untouched.
func (u *UserProgress) Normalize() {
	if u.Phases == nil {
		u.Phases = make(map[Phase]PhaseProgress, TotalPhases)
	}
	for _, phase := range canonicalPhases {
		if _, ok := u.Phases[phase]; !ok {
			u.Phases[phase] = PhaseProgress{Phase: phase, Steps: []Step{}}
		}
	}
	// Keep each entry's Phase field consistent with its map key.
	for phase, pp := range u.Phases {
		if pp.Phase != phase {
			pp.Phase = phase
			u.Phases[phase] = pp
		}
	}
}

// PhaseFor returns the progress entry for a phase, or an empty entry when
// the phase map is sparse. Never returns data for non-canonical phases.
func (u *UserProgress) PhaseFor(phase Phase) PhaseProgress {
	if u == nil || u.Phases == nil {
		return PhaseProgress{Phase: phase, Steps: []Step{}}
	}
	if pp, ok := u.Phases[phase]; ok {
		return pp
	}
	return PhaseProgress{Phase: phase, Steps: []Step{}}
}

// PresentPhases returns the canonical phases that have an entry in the
// progress map, in framework order.
func (u *UserProgress) PresentPhases() []Phase {
	if u == nil || u.Phases == nil {
		return nil
	}
	var phases []Phase
	for _, phase := range canonicalPhases {
		if _, ok := u.Phases[phase]; ok {
			phases = append(phases, phase)
		}
	}
	return phases
}
