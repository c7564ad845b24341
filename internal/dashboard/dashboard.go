// Package dashboard computes read-only projections over a UserData
// snapshot. Nothing here is cached or persisted; every view is recomputed
// on demand.
package dashboard

import "github.com/positionfit/positionfit/internal/domain"

// Entry pairs an application with its analysis for the board columns.
type Entry struct {
	Application domain.JobApplication `json:"application"`
	Analysis    domain.JobAnalysis    `json:"analysis"`
}

// Summary holds the tallies shown on the dashboard cards.
type Summary struct {
	Analyses     int `json:"analyses"`
	Applications int `json:"applications"`
	Interviewing int `json:"interviewing"`
	Offered      int `json:"offered"`
}

// ByStatus returns every application in the given status joined with its
// analysis. Applications whose analysis no longer exists are silently
// excluded; a dangling reference is defect data, not a reason to fail.
func ByStatus(u *domain.UserData, status domain.Status) []Entry {
	var entries []Entry
	for _, app := range u.Applications {
		if app.Status != status {
			continue
		}
		rec := u.AnalysisByID(app.AnalysisID)
		if rec == nil {
			continue
		}
		entries = append(entries, Entry{Application: app, Analysis: *rec})
	}
	return entries
}

// WithoutApplication returns the analyses no application references yet.
func WithoutApplication(u *domain.UserData) []domain.JobAnalysis {
	tracked := make(map[string]struct{}, len(u.Applications))
	for _, app := range u.Applications {
		tracked[app.AnalysisID] = struct{}{}
	}

	var out []domain.JobAnalysis
	for _, rec := range u.Analyses {
		if _, ok := tracked[rec.ID]; ok {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Counts tallies totals and the two statuses surfaced on summary cards.
func Counts(u *domain.UserData) Summary {
	summary := Summary{
		Analyses:     len(u.Analyses),
		Applications: len(u.Applications),
	}
	for _, app := range u.Applications {
		switch app.Status {
		case domain.StatusInterviewing:
			summary.Interviewing++
		case domain.StatusOffered:
			summary.Offered++
		}
	}
	return summary
}
