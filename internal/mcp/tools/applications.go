package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/positionfit/positionfit/internal/domain"
)

// SetStatusParams defines the arguments for the set_application_status tool.
type SetStatusParams struct {
	UserID     string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	AnalysisID string `json:"analysis_id" jsonschema:"Analysis the application tracks"`
	Status     string `json:"status" jsonschema:"One of interested, applied, interviewing, rejected, offered, withdrawn"`
}

// DeleteApplicationParams defines the arguments for the delete_application
// tool.
type DeleteApplicationParams struct {
	UserID        string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	ApplicationID string `json:"application_id" jsonschema:"Identifier of the application to delete"`
}

type applicationsTool struct {
	deps Deps
}

func (t applicationsTool) setStatus(ctx context.Context, req *sdkmcp.CallToolRequest, params *SetStatusParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := t.deps.loadUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	app, err := t.deps.Applications.SetStatus(ctx, u, params.AnalysisID, domain.Status(params.Status))
	if err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("[set_application_status] application %s is now %s (%d timeline entries)",
		app.ID, app.Status.Label(), len(app.Timeline))
	return textResult(msg), app, nil
}

func (t applicationsTool) delete(ctx context.Context, req *sdkmcp.CallToolRequest, params *DeleteApplicationParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := t.deps.loadUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	if err := t.deps.Applications.Delete(ctx, u, params.ApplicationID); err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("[delete_application] application %s removed; its analysis is kept", params.ApplicationID)
	return textResult(msg), nil, nil
}
