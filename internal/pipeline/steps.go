// Package pipeline computes step reachability and presentation state for
// the four-stage workflow. Everything here is a pure function over a
// Snapshot; the package holds no state.
package pipeline

import "github.com/positionfit/positionfit/internal/domain"

// StepStatus is the presentation state of one pipeline step.
type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusLoading   StepStatus = "loading"
	StatusActive    StepStatus = "active"
	StatusPending   StepStatus = "pending"
)

// Snapshot captures what data a session currently has. Accessibility
// depends only on the Has* flags, never on Current, so a step that became
// reachable stays reachable.
type Snapshot struct {
	Current      domain.Step
	HasJob       bool
	HasResume    bool
	HasAnalysis  bool
	HasOptimized bool

	// ViewingSaved marks a session reconstructed from a stored analysis;
	// every step then reports completed.
	ViewingSaved bool

	// Loading holds the steps with an in-flight collaborator call.
	Loading map[domain.Step]bool
}

// Accessible reports whether the step may be selected. The rule set is a
// prefix of the step order: each step requires the data of all steps
// before it, so accessibility of step k implies accessibility of every
// earlier step.
func Accessible(step domain.Step, s Snapshot) bool {
	switch step {
	case domain.StepJob:
		return true
	case domain.StepResume:
		return s.HasJob
	case domain.StepAnalysis:
		return s.HasJob && s.HasResume
	case domain.StepOptimization:
		return s.HasJob && s.HasResume && s.HasAnalysis
	default:
		return false
	}
}

// Status computes the presentation state of the step.
func Status(step domain.Step, s Snapshot) StepStatus {
	if s.ViewingSaved || step.Before(s.Current) {
		return StatusCompleted
	}
	if s.Loading[step] {
		return StatusLoading
	}
	if step == s.Current {
		return StatusActive
	}
	return StatusPending
}

// HasData reports whether the step's own payload is already present. A
// selectable step without its own data co-triggers the producing operation
// instead of a plain view switch.
func HasData(step domain.Step, s Snapshot) bool {
	switch step {
	case domain.StepJob:
		return s.HasJob
	case domain.StepResume:
		return s.HasResume
	case domain.StepAnalysis:
		return s.HasAnalysis
	case domain.StepOptimization:
		return s.HasOptimized
	default:
		return false
	}
}
