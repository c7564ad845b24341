// Package analysis owns the single write path for JobAnalysis records:
// deduplicated saves keyed by (title, company, source URL) and cascading
// deletes. Mutating UserData.Analyses anywhere else violates the contract.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/store"
	"github.com/positionfit/positionfit/pkg/logging"
)

// SaveRequest carries everything a save may update. Posting is required;
// the raw payloads are optional and retained from the prior record when
// absent, so repeated saves for the same logical event are pure overwrites.
type SaveRequest struct {
	Posting    domain.JobPosting
	PostingRaw json.RawMessage
	Resume     json.RawMessage
	Analysis   json.RawMessage
	Optimized  json.RawMessage
	Match      *domain.MatchSummary
	Step       domain.Step // empty keeps the prior step (or "job" on create)
}

// Service builds, deduplicates and merges JobAnalysis records and persists
// the whole aggregate after every mutation.
type Service struct {
	users  *store.Users
	logger *logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewService creates the record manager.
func NewService(users *store.Users, logger *logging.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Save updates the record matching the posting's (title, company, sourceUrl)
// triple in place, or creates a fresh one when no record matches. Both paths
// refresh lastActive and persist the aggregate. Calling Save repeatedly with
// identical input is idempotent apart from the analyzedAt refresh.
func (s *Service) Save(ctx context.Context, u *domain.UserData, req SaveRequest) (*domain.JobAnalysis, error) {
	if err := validateSave(req); err != nil {
		return nil, err
	}

	now := s.now()

	rec := s.findByKey(u, req.Posting)
	if rec != nil {
		s.merge(rec, req, now)
		s.logger.Debug("analysis updated",
			"user_id", u.UserID,
			"analysis_id", rec.ID,
			"step", rec.CurrentStep,
		)
	} else {
		u.Analyses = append(u.Analyses, s.build(req, now))
		rec = &u.Analyses[len(u.Analyses)-1]
		s.logger.Debug("analysis created",
			"user_id", u.UserID,
			"analysis_id", rec.ID,
			"title", rec.JobTitle,
			"company", rec.Company,
		)
	}

	u.Touch(now)

	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("persist analyses for %q: %w", u.UserID, err)
	}

	return rec, nil
}

// Delete removes the analysis and cascades to any application referencing
// it. Irreversible; there is no soft delete.
func (s *Service) Delete(ctx context.Context, u *domain.UserData, analysisID string) error {
	idx := -1
	for i := range u.Analyses {
		if u.Analyses[i].ID == analysisID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete analysis %q: %w", analysisID, domain.ErrAnalysisNotFound)
	}

	u.Analyses = append(u.Analyses[:idx], u.Analyses[idx+1:]...)

	kept := u.Applications[:0]
	removed := 0
	for _, app := range u.Applications {
		if app.AnalysisID == analysisID {
			removed++
			continue
		}
		kept = append(kept, app)
	}
	u.Applications = kept

	u.Touch(s.now())

	if err := s.users.Save(ctx, u); err != nil {
		return fmt.Errorf("persist analyses for %q: %w", u.UserID, err)
	}

	s.logger.Info("analysis deleted",
		"user_id", u.UserID,
		"analysis_id", analysisID,
		"applications_removed", removed,
	)

	return nil
}

// findByKey matches on the dedup triple (jobTitle, company, jobUrl).
func (s *Service) findByKey(u *domain.UserData, posting domain.JobPosting) *domain.JobAnalysis {
	for i := range u.Analyses {
		rec := &u.Analyses[i]
		if rec.JobTitle == posting.Title &&
			rec.Company == posting.Company &&
			rec.JobURL == posting.SourceURL {
			return rec
		}
	}
	return nil
}

func (s *Service) build(req SaveRequest, now time.Time) domain.JobAnalysis {
	rec := domain.JobAnalysis{
		ID:               s.newID(),
		JobTitle:         req.Posting.Title,
		Company:          req.Posting.Company,
		Location:         req.Posting.Location,
		Salary:           req.Posting.Salary,
		JobURL:           req.Posting.SourceURL,
		JobDescription:   req.Posting.Description,
		Requirements:     req.Posting.Requirements,
		Responsibilities: req.Posting.Responsibilities,
		Benefits:         req.Posting.Benefits,
		AnalyzedAt:       now,
		CurrentStep:      domain.StepJob,
		JobPosting:       req.PostingRaw,
		Resume:           req.Resume,
		Analysis:         req.Analysis,
		OptimizedResume:  req.Optimized,
	}

	if req.Step != "" {
		rec.CurrentStep = req.Step
	}
	if req.Match != nil {
		applyMatch(&rec, req.Match)
	}
	rec.ResumeOptimized = len(rec.OptimizedResume) > 0

	return rec
}

func (s *Service) merge(rec *domain.JobAnalysis, req SaveRequest, now time.Time) {
	if req.Step != "" {
		rec.CurrentStep = req.Step
	}

	// Non-key display fields follow the latest posting payload.
	rec.Location = req.Posting.Location
	rec.Salary = req.Posting.Salary
	rec.JobDescription = req.Posting.Description
	rec.Requirements = req.Posting.Requirements
	rec.Responsibilities = req.Posting.Responsibilities
	rec.Benefits = req.Posting.Benefits

	if len(req.PostingRaw) > 0 {
		rec.JobPosting = req.PostingRaw
	}
	// Resume and optimized resume are retained from the prior save when the
	// caller has none in hand; they are never cleared by omission.
	if len(req.Resume) > 0 {
		rec.Resume = req.Resume
	}
	if len(req.Analysis) > 0 {
		rec.Analysis = req.Analysis
	}
	if len(req.Optimized) > 0 {
		rec.OptimizedResume = req.Optimized
	}

	if req.Match != nil {
		applyMatch(rec, req.Match)
	}

	rec.ResumeOptimized = len(rec.OptimizedResume) > 0
	rec.AnalyzedAt = now
}

func applyMatch(rec *domain.JobAnalysis, match *domain.MatchSummary) {
	rec.MatchScore = clampScore(match.Score)
	rec.Strengths = match.Strengths
	rec.Gaps = match.Gaps
	rec.Recommendations = match.Recommendations
}

func validateSave(req SaveRequest) error {
	if req.Posting.Title == "" || req.Posting.Company == "" {
		return fmt.Errorf("job posting needs a title and a company")
	}
	if req.Step != "" && !req.Step.Valid() {
		return fmt.Errorf("step %q: %w", req.Step, domain.ErrInvalidStep)
	}
	return nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
