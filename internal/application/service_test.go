package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/store"
	"github.com/positionfit/positionfit/pkg/logging"
)

func newTestService(t *testing.T) (*Service, *store.Users) {
	t.Helper()
	users := store.NewUsers(store.NewMemory(), "test")
	return NewService(users, logging.NewNop()), users
}

func newTestUser() *domain.UserData {
	u := domain.NewUserData("u1", "Test User", "test@example.com", time.Now().UTC())
	u.Analyses = append(u.Analyses, domain.JobAnalysis{
		ID:       "an-1",
		JobTitle: "Backend Engineer",
		Company:  "Acme",
	})
	return u
}

func TestSetStatusCreatesApplication(t *testing.T) {
	svc, users := newTestService(t)
	u := newTestUser()
	ctx := context.Background()

	app, err := svc.SetStatus(ctx, u, "an-1", domain.StatusInterested)
	require.NoError(t, err)

	require.Len(t, u.Applications, 1)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "an-1", app.AnalysisID)
	assert.Equal(t, domain.StatusInterested, app.Status)
	require.Len(t, app.Timeline, 1)
	assert.Equal(t, "Status Updated", app.Timeline[0].Event)
	assert.Equal(t, "Set status to Interested", app.Timeline[0].Description)

	stored, err := users.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored.Applications, 1)
}

func TestSetStatusUpdatesInPlace(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()
	ctx := context.Background()

	first, err := svc.SetStatus(ctx, u, "an-1", domain.StatusInterested)
	require.NoError(t, err)
	firstID := first.ID

	app, err := svc.SetStatus(ctx, u, "an-1", domain.StatusInterviewing)
	require.NoError(t, err)

	require.Len(t, u.Applications, 1, "second status assignment must not create a second application")
	assert.Equal(t, firstID, app.ID)
	assert.Equal(t, domain.StatusInterviewing, app.Status)
	require.Len(t, app.Timeline, 2)
	assert.Equal(t, "Changed status to Interviewing", app.Timeline[1].Description)
}

func TestTimelineAppendOnly(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()
	ctx := context.Background()

	statuses := []domain.Status{
		domain.StatusInterested,
		domain.StatusApplied,
		domain.StatusInterviewing,
		domain.StatusRejected,
		domain.StatusApplied,
	}

	var firstEntry domain.TimelineEntry
	for i, status := range statuses {
		app, err := svc.SetStatus(ctx, u, "an-1", status)
		require.NoError(t, err)
		require.Len(t, app.Timeline, i+1, "every call appends exactly one entry")
		if i == 0 {
			firstEntry = app.Timeline[0]
		}
	}

	app := u.ApplicationForAnalysis("an-1")
	require.NotNil(t, app)
	assert.Equal(t, firstEntry, app.Timeline[0], "existing entries are never mutated")
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()
	ctx := context.Background()

	// Deliberately "backwards" moves; there is no transition guard.
	for _, status := range []domain.Status{
		domain.StatusOffered,
		domain.StatusInterested,
		domain.StatusWithdrawn,
		domain.StatusInterviewing,
	} {
		_, err := svc.SetStatus(ctx, u, "an-1", status)
		require.NoError(t, err)
	}

	assert.Equal(t, domain.StatusInterviewing, u.Applications[0].Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()

	_, err := svc.SetStatus(context.Background(), u, "an-1", domain.Status("ghosted"))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Empty(t, u.Applications)
}

func TestSetStatusRejectsMissingAnalysis(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()

	_, err := svc.SetStatus(context.Background(), u, "missing", domain.StatusApplied)
	require.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestDeleteApplicationKeepsAnalysis(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()
	ctx := context.Background()

	app, err := svc.SetStatus(ctx, u, "an-1", domain.StatusApplied)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u, app.ID))

	assert.Empty(t, u.Applications)
	assert.Len(t, u.Analyses, 1, "deleting an application must not touch its analysis")
}

func TestDeleteUnknownApplication(t *testing.T) {
	svc, _ := newTestService(t)
	u := newTestUser()

	err := svc.Delete(context.Background(), u, "missing")
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)
}
