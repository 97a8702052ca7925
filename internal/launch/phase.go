// Package launch defines the domain model for launch projects: the fixed
// phase framework, step progress tracking, and typed project facts.
package launch

import (
	"fmt"
	"strings"
)

// Phase represents one of the fixed top-level launch stages.
type Phase string

const (
	// PhaseValidation covers problem and market validation work
	PhaseValidation Phase = "validation"

	// PhaseDefinition covers product definition and positioning
	PhaseDefinition Phase = "definition"

	// PhaseTechnical covers architecture and build work
	PhaseTechnical Phase = "technical"

	// PhaseMarketing covers launch marketing preparation
	PhaseMarketing Phase = "marketing"

	// PhaseOperations covers team and delivery operations
	PhaseOperations Phase = "operations"

	// PhaseFinancial covers revenue, pricing, and funding work
	PhaseFinancial Phase = "financial"

	// PhaseRisks covers risk identification and mitigation
	PhaseRisks Phase = "risks"

	// PhaseOptimization covers post-launch growth and tuning
	PhaseOptimization Phase = "optimization"
)

// TotalPhases is the number of phases in the launch framework.
const TotalPhases = 8

// canonicalPhases lists every phase in framework order.
// Completion math and report sections iterate this order, never map order.
var canonicalPhases = [TotalPhases]Phase{
	PhaseValidation,
	PhaseDefinition,
	PhaseTechnical,
	PhaseMarketing,
	PhaseOperations,
	PhaseFinancial,
	PhaseRisks,
	PhaseOptimization,
}

// CanonicalPhases returns all phases in framework order.
// The returned slice is a fresh copy; callers may modify it freely.
func CanonicalPhases() []Phase {
	phases := make([]Phase, TotalPhases)
	copy(phases[:], canonicalPhases[:])
	return phases
}

// ParsePhase parses a phase string into a Phase value.
// Accepts the eight canonical phase names (case-insensitive).
// Returns an error for invalid phase values.
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !ValidatePhase(p) {
		return "", fmt.Errorf("invalid phase: %q (expected one of validation, definition, technical, marketing, operations, financial, risks, optimization)", s)
	}
	return p, nil
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// ValidatePhase checks if a phase value is one of the canonical phases.
func ValidatePhase(p Phase) bool {
	for _, c := range canonicalPhases {
		if p == c {
			return true
		}
	}
	return false
}

// Index returns the position of the phase in framework order, or -1 if
// the phase is not canonical.
func (p Phase) Index() int {
	for i, c := range canonicalPhases {
		if p == c {
			return i
		}
	}
	return -1
}

// StepStatus represents the tri-state completion status of a step.
type StepStatus string

const (
	// StatusNotStarted marks a step that has not been begun
	StatusNotStarted StepStatus = "not_started"

	// StatusInProgress marks a step that is underway
	StatusInProgress StepStatus = "in_progress"

	// StatusCompleted marks a finished step
	StatusCompleted StepStatus = "completed"
)

// ParseStepStatus parses a status string into a StepStatus value.
// Accepts: "not_started", "in_progress", "completed" (case-insensitive).
// Returns an error for invalid status values.
func ParseStepStatus(s string) (StepStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not_started":
		return StatusNotStarted, nil
	case "in_progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid step status: %q (expected not_started, in_progress, or completed)", s)
	}
}

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}

// ValidateStepStatus checks if a status value is valid.
func ValidateStepStatus(s StepStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// phaseSteps is the guided framework's step catalog: the canonical step ids
// for each phase, in the order the framework presents them.
var phaseSteps = map[Phase][]string{
	PhaseValidation: {
		"problem-interviews",
		"market-sizing",
		"competitor-scan",
		"early-adopter-profile",
	},
	PhaseDefinition: {
		"value-proposition",
		"mission-statement",
		"success-criteria",
		"feature-scope",
	},
	PhaseTechnical: {
		"architecture",
		"tech-stack",
		"prototype",
		"qa-plan",
	},
	PhaseMarketing: {
		"positioning",
		"channel-plan",
		"content-calendar",
		"launch-announcement",
	},
	PhaseOperations: {
		"team-roles",
		"support-workflow",
		"delivery-pipeline",
	},
	PhaseFinancial: {
		"revenue-model",
		"pricing",
		"budget-forecast",
		"break-even",
	},
	PhaseRisks: {
		"risk-register",
		"mitigation-plan",
		"contingency-plan",
	},
	PhaseOptimization: {
		"metrics-dashboard",
		"growth-experiments",
		"retention-review",
	},
}

// PhaseSteps returns the canonical step ids for a phase in framework order.
// Returns nil for a non-canonical phase. The returned slice is a fresh copy.
func PhaseSteps(p Phase) []string {
	ids, ok := phaseSteps[p]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// KnownStepID reports whether a step id belongs to the phase's catalog.
// Imported progress may carry custom step ids; those are allowed but can be
// flagged to the user during import.
func KnownStepID(p Phase, stepID string) bool {
	for _, id := range phaseSteps[p] {
		if id == stepID {
			return true
		}
	}
	return false
}
