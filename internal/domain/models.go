package domain

import (
	"encoding/json"
	"time"
)

// UserData is the root aggregate, one per user identifier. It is persisted
// and loaded as a whole; there is no partial update path.
type UserData struct {
	UserID       string           `json:"userId"`
	Name         string           `json:"name,omitempty"`
	Email        string           `json:"email,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	LastActive   time.Time        `json:"lastActive"`
	Analyses     []JobAnalysis    `json:"analyses"`
	Applications []JobApplication `json:"applications"`
}

// JobAnalysis records one evaluation of a resume against one job posting,
// including pipeline progress and the payload snapshots needed to resume
// the workflow exactly where it stopped.
type JobAnalysis struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	Salary           string   `json:"salary,omitempty"`
	JobURL           string   `json:"jobUrl,omitempty"`
	JobDescription   string   `json:"jobDescription,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`

	MatchScore      int      `json:"matchScore"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	AnalyzedAt  time.Time `json:"analyzedAt"`
	CurrentStep Step      `json:"currentStep"`

	// Opaque payload snapshots. The core stores and returns these unchanged
	// and never inspects their internals.
	JobPosting      json.RawMessage `json:"jobPosting,omitempty"`
	Resume          json.RawMessage `json:"resume,omitempty"`
	Analysis        json.RawMessage `json:"analysis,omitempty"`
	OptimizedResume json.RawMessage `json:"optimizedResume,omitempty"`

	ResumeOptimized bool `json:"resumeOptimized"`
}

// JobApplication tracks the real-world application status for exactly one
// JobAnalysis. The timeline is an append-only audit log.
type JobApplication struct {
	ID         string          `json:"id"`
	AnalysisID string          `json:"analysisId"`
	Status     Status          `json:"status"`
	LastUpdate time.Time       `json:"lastUpdate"`
	Timeline   []TimelineEntry `json:"timeline"`
}

// TimelineEntry is a single audit record on a JobApplication.
type TimelineEntry struct {
	Date        time.Time `json:"date"`
	Event       string    `json:"event"`
	Description string    `json:"description"`
}

// JobPosting is the typed header of a parsed job posting payload. Only the
// fields needed for the dedup key and denormalized display are modeled;
// the full payload stays opaque.
type JobPosting struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	Salary           string   `json:"salary,omitempty"`
	SourceURL        string   `json:"sourceUrl,omitempty"`
	Description      string   `json:"description,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
}

// MatchSummary is the denormalized outcome of an AI compatibility analysis.
type MatchSummary struct {
	Score           int      `json:"overallScore"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// NewUserData creates an empty aggregate for a user.
func NewUserData(userID, name, email string, now time.Time) *UserData {
	return &UserData{
		UserID:     userID,
		Name:       name,
		Email:      email,
		CreatedAt:  now,
		LastActive: now,
	}
}

// AnalysisByID returns a pointer into Analyses, or nil when absent.
func (u *UserData) AnalysisByID(id string) *JobAnalysis {
	for i := range u.Analyses {
		if u.Analyses[i].ID == id {
			return &u.Analyses[i]
		}
	}
	return nil
}

// ApplicationByID returns a pointer into Applications, or nil when absent.
func (u *UserData) ApplicationByID(id string) *JobApplication {
	for i := range u.Applications {
		if u.Applications[i].ID == id {
			return &u.Applications[i]
		}
	}
	return nil
}

// ApplicationForAnalysis returns the application referencing the given
// analysis, or nil. Callers keep the at-most-one-per-analysis invariant.
func (u *UserData) ApplicationForAnalysis(analysisID string) *JobApplication {
	for i := range u.Applications {
		if u.Applications[i].AnalysisID == analysisID {
			return &u.Applications[i]
		}
	}
	return nil
}

// Touch refreshes LastActive. Every mutating operation calls this before
// persisting the aggregate.
func (u *UserData) Touch(now time.Time) {
	u.LastActive = now
}
