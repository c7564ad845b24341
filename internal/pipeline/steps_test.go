package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/positionfit/positionfit/internal/domain"
)

// allSnapshots enumerates every combination of data-presence flags.
func allSnapshots() []Snapshot {
	var out []Snapshot
	for i := 0; i < 16; i++ {
		out = append(out, Snapshot{
			Current:      domain.StepJob,
			HasJob:       i&1 != 0,
			HasResume:    i&2 != 0,
			HasAnalysis:  i&4 != 0,
			HasOptimized: i&8 != 0,
		})
	}
	return out
}

func TestAccessibleRules(t *testing.T) {
	empty := Snapshot{Current: domain.StepJob}
	assert.True(t, Accessible(domain.StepJob, empty))
	assert.False(t, Accessible(domain.StepResume, empty))
	assert.False(t, Accessible(domain.StepAnalysis, empty))
	assert.False(t, Accessible(domain.StepOptimization, empty))

	withJob := empty
	withJob.HasJob = true
	assert.True(t, Accessible(domain.StepResume, withJob))
	assert.False(t, Accessible(domain.StepAnalysis, withJob))

	withResume := withJob
	withResume.HasResume = true
	assert.True(t, Accessible(domain.StepAnalysis, withResume))
	assert.False(t, Accessible(domain.StepOptimization, withResume))

	withAnalysis := withResume
	withAnalysis.HasAnalysis = true
	assert.True(t, Accessible(domain.StepOptimization, withAnalysis))
}

func TestAccessiblePrefixMonotonic(t *testing.T) {
	steps := domain.Steps()
	for _, snap := range allSnapshots() {
		for i := 1; i < len(steps); i++ {
			if Accessible(steps[i], snap) {
				assert.True(t, Accessible(steps[i-1], snap),
					"accessibility of %s must imply accessibility of %s (snapshot %+v)",
					steps[i], steps[i-1], snap)
			}
		}
	}
}

func TestAccessibleIndependentOfCurrent(t *testing.T) {
	snap := Snapshot{Current: domain.StepOptimization, HasJob: true, HasResume: true, HasAnalysis: true}
	for _, current := range domain.Steps() {
		snap.Current = current
		assert.True(t, Accessible(domain.StepOptimization, snap))
	}
}

func TestStatusActiveAndCompleted(t *testing.T) {
	snap := Snapshot{Current: domain.StepAnalysis, HasJob: true, HasResume: true}

	assert.Equal(t, StatusCompleted, Status(domain.StepJob, snap))
	assert.Equal(t, StatusCompleted, Status(domain.StepResume, snap))
	assert.Equal(t, StatusActive, Status(domain.StepAnalysis, snap))
	assert.Equal(t, StatusPending, Status(domain.StepOptimization, snap))
}

func TestStatusLoading(t *testing.T) {
	snap := Snapshot{
		Current:   domain.StepResume,
		HasJob:    true,
		HasResume: true,
		Loading:   map[domain.Step]bool{domain.StepAnalysis: true},
	}

	assert.Equal(t, StatusLoading, Status(domain.StepAnalysis, snap))
}

func TestStatusViewingSavedForcesCompleted(t *testing.T) {
	snap := Snapshot{Current: domain.StepResume, ViewingSaved: true}
	for _, step := range domain.Steps() {
		assert.Equal(t, StatusCompleted, Status(step, snap))
	}
}

func TestHasData(t *testing.T) {
	snap := Snapshot{HasJob: true, HasAnalysis: true}
	assert.True(t, HasData(domain.StepJob, snap))
	assert.False(t, HasData(domain.StepResume, snap))
	assert.True(t, HasData(domain.StepAnalysis, snap))
	assert.False(t, HasData(domain.StepOptimization, snap))
}
