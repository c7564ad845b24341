package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/positionfit/positionfit/internal/ai"
	"github.com/positionfit/positionfit/internal/analysis"
	"github.com/positionfit/positionfit/internal/application"
	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/store"
	"github.com/positionfit/positionfit/pkg/logging"
)

// BoardExporter pushes the application board to an external sheet.
type BoardExporter interface {
	ExportBoard(ctx context.Context, u *domain.UserData, spreadsheetID, tab string) (int, error)
}

// Deps bundles what the tool handlers call into. Collaborator and Board
// may be nil; the affected tools then report that the integration is not
// configured.
type Deps struct {
	Users        *store.Users
	Analyses     *analysis.Service
	Applications *application.Service
	Collaborator ai.Collaborator
	Board        BoardExporter
	Logger       *logging.Logger
}

// loadUser fetches the aggregate, translating store absence into a
// user-facing message instead of a raw store error.
func (d Deps) loadUser(ctx context.Context, userID string) (*domain.UserData, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	u, err := d.Users.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("no data stored for user %q", userID)
		}
		return nil, err
	}
	return u, nil
}

func (d Deps) loadOrCreateUser(ctx context.Context, userID string) (*domain.UserData, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	return d.Users.LoadOrCreate(ctx, userID)
}
