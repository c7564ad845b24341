package domain

// Step is one of the four pipeline stages of the position-fit workflow.
// The stages form a total order: job -> resume -> analysis -> optimization.
type Step string

const (
	StepJob          Step = "job"
	StepResume       Step = "resume"
	StepAnalysis     Step = "analysis"
	StepOptimization Step = "optimization"
)

var stepOrder = []Step{StepJob, StepResume, StepAnalysis, StepOptimization}

// Steps returns the pipeline stages in order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Index returns the position of the step in the pipeline, or -1 for an
// unknown value.
func (s Step) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known pipeline step.
func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Before reports whether s precedes other in the pipeline order.
func (s Step) Before(other Step) bool {
	return s.Index() < other.Index()
}
