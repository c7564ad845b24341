package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/positionfit/positionfit/internal/ai"
	"github.com/positionfit/positionfit/internal/analysis"
	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/pipeline"
	"github.com/positionfit/positionfit/internal/store"
	"github.com/positionfit/positionfit/pkg/logging"
)

type stubCollaborator struct {
	mu            sync.Mutex
	analyzeCalls  int
	optimizeCalls int

	result    *ai.MatchResult
	optimized json.RawMessage
	err       error

	// When set, AnalyzeCompatibility signals started and then waits for
	// release, so tests can observe the in-flight window.
	started chan struct{}
	release chan struct{}
}

func (s *stubCollaborator) AnalyzeCompatibility(_ context.Context, _, _ json.RawMessage) (*ai.MatchResult, error) {
	s.mu.Lock()
	s.analyzeCalls++
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubCollaborator) OptimizeResume(_ context.Context, _, _, _ json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	s.optimizeCalls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.optimized, nil
}

func (s *stubCollaborator) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzeCalls, s.optimizeCalls
}

func newTestController(t *testing.T, collab ai.Collaborator) (*Controller, *domain.UserData, *store.Users) {
	t.Helper()

	users := store.NewUsers(store.NewMemory(), "test")
	user := domain.NewUserData("u1", "Test User", "test@example.com", time.Now().UTC())
	svc := analysis.NewService(users, logging.NewNop())

	return New(user, svc, collab, logging.NewNop()), user, users
}

func acmePosting() domain.JobPosting {
	return domain.JobPosting{
		Title:     "Backend Engineer",
		Company:   "Acme",
		SourceURL: "https://x/1",
	}
}

func stubMatch() *ai.MatchResult {
	return &ai.MatchResult{
		Summary: ai.MatchSummaryFields{
			Score:     82,
			Strengths: []string{"Go"},
			Gaps:      []string{"Kubernetes"},
		},
		Raw: json.RawMessage(`{"overallScore":82}`),
	}
}

func TestSetJobPostingCreatesRecord(t *testing.T) {
	ctrl, user, users := newTestController(t, nil)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), json.RawMessage(`{"title":"Backend Engineer"}`)))

	state := ctrl.State()
	assert.NotEmpty(t, state.AnalysisID)
	assert.Equal(t, domain.StepJob, state.CurrentStep)
	assert.Equal(t, pipeline.StatusActive, state.Steps[domain.StepJob])
	assert.Equal(t, pipeline.StatusPending, state.Steps[domain.StepAnalysis])

	require.Len(t, user.Analyses, 1)

	persisted, err := users.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, persisted.Analyses, 1)
	assert.Equal(t, domain.StepJob, persisted.Analyses[0].CurrentStep)
}

func TestSetJobPostingRejectsIncomplete(t *testing.T) {
	ctrl, _, _ := newTestController(t, nil)

	err := ctrl.SetJobPosting(context.Background(), domain.JobPosting{Title: "No Company"}, nil)
	require.Error(t, err)
}

func TestAttachResumeRequiresJob(t *testing.T) {
	ctrl, _, _ := newTestController(t, nil)

	err := ctrl.AttachResume(context.Background(), json.RawMessage(`{"name":"Jo"}`))
	require.ErrorIs(t, err, ErrStepLocked)
}

func TestWorkflowAdvancesThroughSteps(t *testing.T) {
	collab := &stubCollaborator{
		result:    stubMatch(),
		optimized: json.RawMessage(`{"name":"Jo","tailored":true}`),
	}
	ctrl, user, _ := newTestController(t, collab)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), json.RawMessage(`{"title":"Backend Engineer"}`)))
	require.NoError(t, ctrl.AttachResume(ctx, json.RawMessage(`{"name":"Jo"}`)))
	require.NoError(t, ctrl.RunAnalysis(ctx))

	require.Len(t, user.Analyses, 1, "one logical job, one record across all steps")
	rec := user.Analyses[0]
	assert.Equal(t, domain.StepAnalysis, rec.CurrentStep)
	assert.Equal(t, 82, rec.MatchScore)
	assert.Equal(t, []string{"Go"}, rec.Strengths)
	assert.JSONEq(t, `{"overallScore":82}`, string(rec.Analysis))

	require.NoError(t, ctrl.OptimizeResume(ctx))

	rec = user.Analyses[0]
	assert.Equal(t, domain.StepOptimization, rec.CurrentStep)
	assert.True(t, rec.ResumeOptimized)
	assert.JSONEq(t, `{"name":"Jo","tailored":true}`, string(rec.OptimizedResume))

	state := ctrl.State()
	assert.Equal(t, pipeline.StatusActive, state.Steps[domain.StepOptimization])
	assert.Equal(t, pipeline.StatusCompleted, state.Steps[domain.StepAnalysis])
}

func TestRunAnalysisRequiresResume(t *testing.T) {
	ctrl, _, _ := newTestController(t, &stubCollaborator{result: stubMatch()})
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), nil))
	require.ErrorIs(t, ctrl.RunAnalysis(ctx), ErrStepLocked)
}

func TestRunAnalysisWithoutCollaborator(t *testing.T) {
	ctrl, _, _ := newTestController(t, nil)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), nil))
	require.NoError(t, ctrl.AttachResume(ctx, json.RawMessage(`{"name":"Jo"}`)))
	require.ErrorIs(t, ctrl.RunAnalysis(ctx), ErrNoCollaborator)
}

func TestRunAnalysisFailureLeavesStateUntouched(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	collab := &stubCollaborator{err: wantErr}
	ctrl, user, users := newTestController(t, collab)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), nil))
	require.NoError(t, ctrl.AttachResume(ctx, json.RawMessage(`{"name":"Jo"}`)))

	err := ctrl.RunAnalysis(ctx)
	require.ErrorIs(t, err, wantErr)

	state := ctrl.State()
	assert.Equal(t, domain.StepResume, state.CurrentStep)
	assert.Empty(t, state.Analysis)

	assert.Equal(t, domain.StepResume, user.Analyses[0].CurrentStep)
	persisted, loadErr := users.Load(ctx, "u1")
	require.NoError(t, loadErr)
	assert.Equal(t, domain.StepResume, persisted.Analyses[0].CurrentStep)
	assert.Empty(t, persisted.Analyses[0].Analysis)

	// A later retry works; failure must not wedge the in-flight guard.
	collab.err = nil
	collab.result = stubMatch()
	require.NoError(t, ctrl.RunAnalysis(ctx))
	assert.Equal(t, domain.StepAnalysis, user.Analyses[0].CurrentStep)
}

func TestRunAnalysisDuplicateTriggerIgnored(t *testing.T) {
	collab := &stubCollaborator{
		result:  stubMatch(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	ctrl, _, _ := newTestController(t, collab)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), nil))
	require.NoError(t, ctrl.AttachResume(ctx, json.RawMessage(`{"name":"Jo"}`)))

	done := make(chan error, 1)
	go func() { done <- ctrl.RunAnalysis(ctx) }()
	<-collab.started

	assert.Equal(t, pipeline.StatusLoading, ctrl.State().Steps[domain.StepAnalysis])

	// Duplicate triggers while the call is pending are silently dropped.
	require.NoError(t, ctrl.RunAnalysis(ctx))
	require.NoError(t, ctrl.SelectStep(ctx, domain.StepAnalysis))

	close(collab.release)
	require.NoError(t, <-done)

	analyzeCalls, _ := collab.calls()
	assert.Equal(t, 1, analyzeCalls)
	assert.Equal(t, domain.StepAnalysis, ctrl.State().CurrentStep)
}

func TestSelectStepCoTriggersAnalysis(t *testing.T) {
	collab := &stubCollaborator{result: stubMatch()}
	ctrl, user, _ := newTestController(t, collab)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), nil))
	require.NoError(t, ctrl.AttachResume(ctx, json.RawMessage(`{"name":"Jo"}`)))

	require.NoError(t, ctrl.SelectStep(ctx, domain.StepAnalysis))

	analyzeCalls, _ := collab.calls()
	assert.Equal(t, 1, analyzeCalls)
	assert.Equal(t, domain.StepAnalysis, ctrl.State().CurrentStep)
	assert.Equal(t, 82, user.Analyses[0].MatchScore)
}

func TestSelectStepLockedAndInvalid(t *testing.T) {
	ctrl, _, _ := newTestController(t, nil)
	ctx := context.Background()

	require.ErrorIs(t, ctrl.SelectStep(ctx, "review"), domain.ErrInvalidStep)
	require.ErrorIs(t, ctrl.SelectStep(ctx, domain.StepOptimization), ErrStepLocked)
}

func TestSelectStepSwitchesToExistingData(t *testing.T) {
	collab := &stubCollaborator{result: stubMatch()}
	ctrl, _, _ := newTestController(t, collab)
	ctx := context.Background()

	require.NoError(t, ctrl.SetJobPosting(ctx, acmePosting(), nil))
	require.NoError(t, ctrl.AttachResume(ctx, json.RawMessage(`{"name":"Jo"}`)))
	require.NoError(t, ctrl.RunAnalysis(ctx))

	require.NoError(t, ctrl.SelectStep(ctx, domain.StepJob))
	assert.Equal(t, domain.StepJob, ctrl.State().CurrentStep)

	// The analysis payload already exists, so no second collaborator call.
	require.NoError(t, ctrl.SelectStep(ctx, domain.StepAnalysis))
	analyzeCalls, _ := collab.calls()
	assert.Equal(t, 1, analyzeCalls)
	assert.Equal(t, domain.StepAnalysis, ctrl.State().CurrentStep)
}

func TestResumeReconstructsFromRecord(t *testing.T) {
	ctrl, user, _ := newTestController(t, nil)

	user.Analyses = append(user.Analyses, domain.JobAnalysis{
		ID:              "an-1",
		JobTitle:        "Backend Engineer",
		Company:         "Acme",
		JobURL:          "https://x/1",
		MatchScore:      82,
		Strengths:       []string{"Go"},
		CurrentStep:     domain.StepOptimization,
		JobPosting:      json.RawMessage(`{"title":"Backend Engineer"}`),
		Resume:          json.RawMessage(`{"name":"Jo"}`),
		Analysis:        json.RawMessage(`{"overallScore":82}`),
		OptimizedResume: json.RawMessage(`{"name":"Jo","tailored":true}`),
		ResumeOptimized: true,
	})

	require.NoError(t, ctrl.Resume("an-1", ""))

	state := ctrl.State()
	assert.Equal(t, "an-1", state.AnalysisID)
	assert.Equal(t, domain.StepOptimization, state.CurrentStep)
	assert.True(t, state.ViewingSaved)
	assert.JSONEq(t, `{"name":"Jo"}`, string(state.Resume))
	require.NotNil(t, state.Match)
	assert.Equal(t, 82, state.Match.Score)

	// Viewing a saved record presents every step as completed.
	for _, step := range domain.Steps() {
		assert.Equal(t, pipeline.StatusCompleted, state.Steps[step])
	}
}

func TestResumeAtTargetStep(t *testing.T) {
	ctrl, user, _ := newTestController(t, nil)

	user.Analyses = append(user.Analyses, domain.JobAnalysis{
		ID:          "an-1",
		JobTitle:    "Backend Engineer",
		Company:     "Acme",
		CurrentStep: domain.StepAnalysis,
		JobPosting:  json.RawMessage(`{"title":"Backend Engineer"}`),
		Resume:      json.RawMessage(`{"name":"Jo"}`),
		Analysis:    json.RawMessage(`{"overallScore":40}`),
	})

	require.NoError(t, ctrl.Resume("an-1", domain.StepResume))
	assert.Equal(t, domain.StepResume, ctrl.State().CurrentStep)
}

func TestResumeUnknownAnalysis(t *testing.T) {
	ctrl, _, _ := newTestController(t, nil)
	require.ErrorIs(t, ctrl.Resume("ghost", ""), domain.ErrAnalysisNotFound)
}
