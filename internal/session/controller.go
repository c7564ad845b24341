// Package session orchestrates one interactive workflow run: it holds the
// in-flight payloads, drives the step gating, calls the AI collaborator
// and auto-saves through the analysis record manager at step boundaries.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/positionfit/positionfit/internal/ai"
	"github.com/positionfit/positionfit/internal/analysis"
	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/pipeline"
	"github.com/positionfit/positionfit/pkg/logging"
)

var (
	// ErrStepLocked is returned when a step's prerequisite data is missing.
	ErrStepLocked = errors.New("session: step is not accessible yet")
	// ErrNoCollaborator is returned when an AI-backed step runs without a
	// configured collaborator.
	ErrNoCollaborator = errors.New("session: no AI collaborator configured")
)

// Controller drives the four-stage workflow for a single user session.
// The mutex only guards against duplicate triggers for the same session;
// cross-session consistency is out of scope, matching the single-writer
// store contract.
type Controller struct {
	mu       sync.Mutex
	user     *domain.UserData
	analyses *analysis.Service
	collab   ai.Collaborator
	logger   *logging.Logger

	step         domain.Step
	viewingSaved bool
	inflight     map[domain.Step]bool

	analysisID  string
	posting     *domain.JobPosting
	postingRaw  json.RawMessage
	resume      json.RawMessage
	analysisRaw json.RawMessage
	match       *domain.MatchSummary
	optimized   json.RawMessage
}

// State is the read-only view of a session used for resumption handoff.
type State struct {
	AnalysisID      string                              `json:"analysisId,omitempty"`
	CurrentStep     domain.Step                         `json:"currentStep"`
	JobPosting      json.RawMessage                     `json:"jobPosting,omitempty"`
	Resume          json.RawMessage                     `json:"resume,omitempty"`
	Analysis        json.RawMessage                     `json:"analysis,omitempty"`
	OptimizedResume json.RawMessage                     `json:"optimizedResume,omitempty"`
	Match           *domain.MatchSummary                `json:"match,omitempty"`
	ViewingSaved    bool                                `json:"viewingSaved"`
	Steps           map[domain.Step]pipeline.StepStatus `json:"steps"`
}

// New starts a fresh session for the user. The collaborator may be nil;
// analysis and optimization steps then fail with ErrNoCollaborator.
func New(user *domain.UserData, analyses *analysis.Service, collab ai.Collaborator, logger *logging.Logger) *Controller {
	return &Controller{
		user:     user,
		analyses: analyses,
		collab:   collab,
		logger:   logger,
		step:     domain.StepJob,
		inflight: make(map[domain.Step]bool),
	}
}

// Snapshot returns the gating view of the session.
func (c *Controller) Snapshot() pipeline.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the full session view including payloads and per-step
// presentation statuses.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshotLocked()
	steps := make(map[domain.Step]pipeline.StepStatus, 4)
	for _, step := range domain.Steps() {
		steps[step] = pipeline.Status(step, snap)
	}

	return State{
		AnalysisID:      c.analysisID,
		CurrentStep:     c.step,
		JobPosting:      c.postingRaw,
		Resume:          c.resume,
		Analysis:        c.analysisRaw,
		OptimizedResume: c.optimized,
		Match:           c.match,
		ViewingSaved:    c.viewingSaved,
		Steps:           steps,
	}
}

// SetJobPosting records the parsed job posting and auto-saves, creating or
// updating the analysis record at the job step.
func (c *Controller) SetJobPosting(ctx context.Context, posting domain.JobPosting, raw json.RawMessage) error {
	if posting.Title == "" || posting.Company == "" {
		return fmt.Errorf("job posting needs a title and a company")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.posting = &posting
	c.postingRaw = raw
	c.step = domain.StepJob
	c.viewingSaved = false

	return c.saveLocked(ctx, domain.StepJob)
}

// AttachResume records the uploaded resume payload, advances to the resume
// step and auto-saves.
func (c *Controller) AttachResume(ctx context.Context, resume json.RawMessage) error {
	if len(resume) == 0 {
		return fmt.Errorf("resume payload is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !pipeline.Accessible(domain.StepResume, c.snapshotLocked()) {
		return fmt.Errorf("attach resume: %w", ErrStepLocked)
	}

	c.resume = resume
	c.step = domain.StepResume
	c.viewingSaved = false

	return c.saveLocked(ctx, domain.StepResume)
}

// RunAnalysis calls the collaborator's compatibility analysis. A failure
// leaves the current step and the stored record untouched. While a call is
// pending, further triggers are ignored.
func (c *Controller) RunAnalysis(ctx context.Context) error {
	c.mu.Lock()
	if !pipeline.Accessible(domain.StepAnalysis, c.snapshotLocked()) {
		c.mu.Unlock()
		return fmt.Errorf("run analysis: %w", ErrStepLocked)
	}
	if c.collab == nil {
		c.mu.Unlock()
		return ErrNoCollaborator
	}
	if c.inflight[domain.StepAnalysis] {
		c.mu.Unlock()
		c.logger.Debug("analysis already in flight, ignoring trigger", "user_id", c.user.UserID)
		return nil
	}
	c.inflight[domain.StepAnalysis] = true
	posting, resume := c.postingRaw, c.resume
	c.mu.Unlock()

	result, err := c.collab.AnalyzeCompatibility(ctx, posting, resume)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, domain.StepAnalysis)

	if err != nil {
		return fmt.Errorf("analyze compatibility: %w", err)
	}

	c.analysisRaw = result.Raw
	c.match = &domain.MatchSummary{
		Score:           result.Summary.Score,
		Strengths:       result.Summary.Strengths,
		Gaps:            result.Summary.Gaps,
		Recommendations: result.Summary.Recommendations,
	}
	c.step = domain.StepAnalysis

	return c.saveLocked(ctx, domain.StepAnalysis)
}

// OptimizeResume calls the collaborator's resume optimization and saves as
// soon as the optimized resume becomes available. Duplicate triggers while
// pending are ignored.
func (c *Controller) OptimizeResume(ctx context.Context) error {
	c.mu.Lock()
	if !pipeline.Accessible(domain.StepOptimization, c.snapshotLocked()) {
		c.mu.Unlock()
		return fmt.Errorf("optimize resume: %w", ErrStepLocked)
	}
	if c.collab == nil {
		c.mu.Unlock()
		return ErrNoCollaborator
	}
	if c.inflight[domain.StepOptimization] {
		c.mu.Unlock()
		c.logger.Debug("optimization already in flight, ignoring trigger", "user_id", c.user.UserID)
		return nil
	}
	c.inflight[domain.StepOptimization] = true
	posting, resume, analysisRaw := c.postingRaw, c.resume, c.analysisRaw
	c.mu.Unlock()

	optimized, err := c.collab.OptimizeResume(ctx, resume, analysisRaw, posting)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, domain.StepOptimization)

	if err != nil {
		return fmt.Errorf("optimize resume: %w", err)
	}

	c.optimized = optimized
	c.step = domain.StepOptimization

	return c.saveLocked(ctx, domain.StepOptimization)
}

// SelectStep handles a user selecting a pipeline step. An inaccessible step
// is rejected; a loading step ignores the event; an accessible step whose
// own payload is missing co-triggers the producing operation instead of a
// plain view switch.
func (c *Controller) SelectStep(ctx context.Context, step domain.Step) error {
	if !step.Valid() {
		return fmt.Errorf("select step %q: %w", step, domain.ErrInvalidStep)
	}

	c.mu.Lock()
	snap := c.snapshotLocked()
	if !pipeline.Accessible(step, snap) {
		c.mu.Unlock()
		return fmt.Errorf("select step %q: %w", step, ErrStepLocked)
	}
	if c.inflight[step] {
		c.mu.Unlock()
		c.logger.Debug("step busy, selection ignored", "step", step)
		return nil
	}

	if !pipeline.HasData(step, snap) {
		c.mu.Unlock()
		switch step {
		case domain.StepAnalysis:
			return c.RunAnalysis(ctx)
		case domain.StepOptimization:
			return c.OptimizeResume(ctx)
		default:
			// Job parsing and resume upload are fed by external extraction;
			// there is nothing for the session to trigger on its own.
			return nil
		}
	}

	c.step = step
	c.mu.Unlock()
	return nil
}

// Resume reconstructs the session purely from a stored analysis record:
// payloads, match summary and step come from the snapshot, with no
// external re-fetching. The session enters viewing-saved mode.
func (c *Controller) Resume(analysisID string, target domain.Step) error {
	rec := c.user.AnalysisByID(analysisID)
	if rec == nil {
		return fmt.Errorf("resume session %q: %w", analysisID, domain.ErrAnalysisNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.analysisID = rec.ID
	c.posting = &domain.JobPosting{
		Title:            rec.JobTitle,
		Company:          rec.Company,
		Location:         rec.Location,
		Salary:           rec.Salary,
		SourceURL:        rec.JobURL,
		Description:      rec.JobDescription,
		Requirements:     rec.Requirements,
		Responsibilities: rec.Responsibilities,
		Benefits:         rec.Benefits,
	}
	c.postingRaw = rec.JobPosting
	c.resume = rec.Resume
	c.analysisRaw = rec.Analysis
	c.optimized = rec.OptimizedResume
	if rec.MatchScore > 0 || len(rec.Strengths) > 0 || len(rec.Gaps) > 0 {
		c.match = &domain.MatchSummary{
			Score:           rec.MatchScore,
			Strengths:       rec.Strengths,
			Gaps:            rec.Gaps,
			Recommendations: rec.Recommendations,
		}
	} else {
		c.match = nil
	}
	c.viewingSaved = true

	c.step = rec.CurrentStep
	if target != "" && target.Valid() && pipeline.Accessible(target, c.snapshotLocked()) {
		c.step = target
	}

	c.logger.Debug("session resumed",
		"user_id", c.user.UserID,
		"analysis_id", analysisID,
		"step", c.step,
	)

	return nil
}

func (c *Controller) snapshotLocked() pipeline.Snapshot {
	loading := make(map[domain.Step]bool, len(c.inflight))
	for step, busy := range c.inflight {
		if busy {
			loading[step] = true
		}
	}

	return pipeline.Snapshot{
		Current:      c.step,
		HasJob:       c.posting != nil,
		HasResume:    len(c.resume) > 0,
		HasAnalysis:  len(c.analysisRaw) > 0,
		HasOptimized: len(c.optimized) > 0,
		ViewingSaved: c.viewingSaved,
		Loading:      loading,
	}
}

// saveLocked persists the session through the record manager. Called once
// per step boundary; the save contract is a pure overwrite, so repeating it
// for the same payload is harmless.
func (c *Controller) saveLocked(ctx context.Context, step domain.Step) error {
	if c.posting == nil {
		return fmt.Errorf("save session: no job posting yet")
	}

	rec, err := c.analyses.Save(ctx, c.user, analysis.SaveRequest{
		Posting:    *c.posting,
		PostingRaw: c.postingRaw,
		Resume:     c.resume,
		Analysis:   c.analysisRaw,
		Optimized:  c.optimized,
		Match:      c.match,
		Step:       step,
	})
	if err != nil {
		return err
	}

	c.analysisID = rec.ID
	return nil
}
