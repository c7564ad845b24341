// Package application manages the kanban status lifecycle layered on top of
// analyses. Every status change appends to an immutable audit timeline.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/store"
	"github.com/positionfit/positionfit/pkg/logging"
)

const eventStatusUpdated = "Status Updated"

// Service creates and updates JobApplication records. Status transitions
// are unrestricted on purpose; there is no state machine to enforce.
type Service struct {
	users  *store.Users
	logger *logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewService creates the lifecycle manager.
func NewService(users *store.Users, logger *logging.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// SetStatus assigns a status to the application tracking analysisID,
// creating the application on first assignment. The timeline only ever
// grows: one entry per call, in call order.
func (s *Service) SetStatus(ctx context.Context, u *domain.UserData, analysisID string, status domain.Status) (*domain.JobApplication, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}
	if u.AnalysisByID(analysisID) == nil {
		return nil, fmt.Errorf("set status for analysis %q: %w", analysisID, domain.ErrAnalysisNotFound)
	}

	now := s.now()

	app := u.ApplicationForAnalysis(analysisID)
	if app == nil {
		u.Applications = append(u.Applications, domain.JobApplication{
			ID:         s.newID(),
			AnalysisID: analysisID,
			Status:     status,
			LastUpdate: now,
			Timeline: []domain.TimelineEntry{{
				Date:        now,
				Event:       eventStatusUpdated,
				Description: "Set status to " + status.Label(),
			}},
		})
		app = &u.Applications[len(u.Applications)-1]
	} else {
		app.Status = status
		app.LastUpdate = now
		app.Timeline = append(app.Timeline, domain.TimelineEntry{
			Date:        now,
			Event:       eventStatusUpdated,
			Description: "Changed status to " + status.Label(),
		})
	}

	u.Touch(now)

	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("persist applications for %q: %w", u.UserID, err)
	}

	s.logger.Debug("application status set",
		"user_id", u.UserID,
		"analysis_id", analysisID,
		"application_id", app.ID,
		"status", status,
	)

	return app, nil
}

// Delete removes one application without touching its analysis.
func (s *Service) Delete(ctx context.Context, u *domain.UserData, applicationID string) error {
	idx := -1
	for i := range u.Applications {
		if u.Applications[i].ID == applicationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete application %q: %w", applicationID, domain.ErrApplicationNotFound)
	}

	u.Applications = append(u.Applications[:idx], u.Applications[idx+1:]...)
	u.Touch(s.now())

	if err := s.users.Save(ctx, u); err != nil {
		return fmt.Errorf("persist applications for %q: %w", u.UserID, err)
	}

	s.logger.Info("application deleted", "user_id", u.UserID, "application_id", applicationID)

	return nil
}
