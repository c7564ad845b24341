package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/positionfit/positionfit/internal/domain"
)

func boardUser() *domain.UserData {
	return &domain.UserData{
		UserID: "u1",
		Analyses: []domain.JobAnalysis{
			{ID: "an-1", JobTitle: "Backend Engineer", Company: "Acme"},
			{ID: "an-2", JobTitle: "SRE", Company: "Globex"},
			{ID: "an-3", JobTitle: "Data Engineer", Company: "Initech"},
		},
		Applications: []domain.JobApplication{
			{ID: "app-1", AnalysisID: "an-1", Status: domain.StatusInterviewing},
			{ID: "app-2", AnalysisID: "an-2", Status: domain.StatusOffered},
			{ID: "app-3", AnalysisID: "gone", Status: domain.StatusInterviewing},
		},
	}
}

func TestByStatusJoinsAnalyses(t *testing.T) {
	u := boardUser()

	entries := ByStatus(u, domain.StatusInterviewing)
	require.Len(t, entries, 1, "dangling analysis references are silently excluded")
	assert.Equal(t, "app-1", entries[0].Application.ID)
	assert.Equal(t, "Backend Engineer", entries[0].Analysis.JobTitle)

	assert.Empty(t, ByStatus(u, domain.StatusRejected))
}

func TestWithoutApplication(t *testing.T) {
	u := boardUser()

	unassigned := WithoutApplication(u)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "an-3", unassigned[0].ID)
}

func TestCounts(t *testing.T) {
	u := boardUser()

	summary := Counts(u)
	assert.Equal(t, 3, summary.Analyses)
	assert.Equal(t, 3, summary.Applications)
	// Counts tallies applications as stored, dangling or not.
	assert.Equal(t, 2, summary.Interviewing)
	assert.Equal(t, 1, summary.Offered)
}

func TestCountsEmptyAggregate(t *testing.T) {
	summary := Counts(&domain.UserData{UserID: "u1"})
	assert.Equal(t, Summary{}, summary)
}
