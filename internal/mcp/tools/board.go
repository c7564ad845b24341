package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/positionfit/positionfit/internal/dashboard"
	"github.com/positionfit/positionfit/internal/domain"
)

// DashboardParams defines the arguments for the dashboard tool.
type DashboardParams struct {
	UserID string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	Status string `json:"status,omitempty" jsonschema:"Optional single status column to return"`
}

// DashboardResult is the structured response of the dashboard tool.
type DashboardResult struct {
	Summary    dashboard.Summary                   `json:"summary"`
	Columns    map[domain.Status][]dashboard.Entry `json:"columns"`
	Unassigned []domain.JobAnalysis                `json:"unassigned,omitempty"`
}

type boardTool struct {
	deps Deps
}

func (t boardTool) dashboard(ctx context.Context, req *sdkmcp.CallToolRequest, params *DashboardParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := t.deps.loadUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	statuses := domain.Statuses()
	if params.Status != "" {
		status := domain.Status(params.Status)
		if !status.Valid() {
			return nil, nil, fmt.Errorf("status %q: %w", params.Status, domain.ErrInvalidStatus)
		}
		statuses = []domain.Status{status}
	}

	result := DashboardResult{
		Summary: dashboard.Counts(u),
		Columns: make(map[domain.Status][]dashboard.Entry, len(statuses)),
	}
	for _, status := range statuses {
		if entries := dashboard.ByStatus(u, status); len(entries) > 0 {
			result.Columns[status] = entries
		}
	}
	if params.Status == "" {
		result.Unassigned = dashboard.WithoutApplication(u)
	}

	return textResult(formatBoard(result)), result, nil
}

func formatBoard(result DashboardResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[dashboard] %d analyses, %d applications (%d interviewing, %d offers)",
		result.Summary.Analyses,
		result.Summary.Applications,
		result.Summary.Interviewing,
		result.Summary.Offered,
	)

	for _, status := range domain.Statuses() {
		entries := result.Columns[status]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:", status.Label())
		for _, entry := range entries {
			fmt.Fprintf(&b, "\n  - %s at %s (score %d)",
				entry.Analysis.JobTitle, entry.Analysis.Company, entry.Analysis.MatchScore)
		}
	}

	if len(result.Unassigned) > 0 {
		fmt.Fprintf(&b, "\nNot tracked yet: %d", len(result.Unassigned))
	}

	return b.String()
}
