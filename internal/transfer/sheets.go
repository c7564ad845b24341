package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/pkg/logging"
)

// DefaultBoardTab is used when no tab is given on export.
const DefaultBoardTab = "Applications"

type valuesAppender interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

// SheetsExporter appends the application board to a Google Sheets tab, one
// row per application joined with its analysis.
type SheetsExporter struct {
	client valuesAppender
	logger *logging.Logger
}

// NewSheetsExporter wraps a sheets client.
func NewSheetsExporter(client valuesAppender, logger *logging.Logger) *SheetsExporter {
	return &SheetsExporter{client: client, logger: logger}
}

// ExportBoard writes the board rows and returns how many were appended.
// Applications with a dangling analysis reference are skipped, matching
// the dashboard projections.
func (e *SheetsExporter) ExportBoard(ctx context.Context, u *domain.UserData, spreadsheetID, tab string) (int, error) {
	if spreadsheetID == "" {
		return 0, fmt.Errorf("spreadsheet id is required")
	}
	if tab == "" {
		tab = DefaultBoardTab
	}

	rows := boardRows(u)
	if len(rows) == 0 {
		return 0, nil
	}

	if err := e.client.AppendValues(ctx, spreadsheetID, tab+"!A1", rows); err != nil {
		return 0, fmt.Errorf("append board rows: %w", err)
	}

	e.logger.Info("application board exported",
		"user_id", u.UserID,
		"spreadsheet_id", spreadsheetID,
		"tab", tab,
		"rows", len(rows),
	)

	return len(rows), nil
}

func boardRows(u *domain.UserData) [][]any {
	var rows [][]any
	for _, app := range u.Applications {
		rec := u.AnalysisByID(app.AnalysisID)
		if rec == nil {
			continue
		}
		rows = append(rows, []any{
			app.Status.Label(),
			rec.JobTitle,
			rec.Company,
			rec.Location,
			rec.MatchScore,
			rec.JobURL,
			app.LastUpdate.Format(time.RFC3339),
		})
	}
	return rows
}
