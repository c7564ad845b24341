package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/positionfit/positionfit/internal/transfer"
)

// ExportDataParams defines the arguments for the export_data tool.
type ExportDataParams struct {
	UserID string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
}

// ImportDataParams defines the arguments for the import_data tool.
type ImportDataParams struct {
	Data string `json:"data" jsonschema:"Whole-aggregate UTF-8 JSON dump produced by export_data"`
}

// ExportSheetParams defines the arguments for the export_sheet tool.
type ExportSheetParams struct {
	UserID        string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to append rows to"`
}

type transferTool struct {
	deps Deps
}

func (t transferTool) exportData(ctx context.Context, req *sdkmcp.CallToolRequest, params *ExportDataParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := t.deps.loadUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	dump, err := transfer.Export(u)
	if err != nil {
		return nil, nil, err
	}

	return textResult(string(dump)), nil, nil
}

// importData replaces the stored aggregate wholesale. Malformed input
// leaves the store untouched.
func (t transferTool) importData(ctx context.Context, req *sdkmcp.CallToolRequest, params *ImportDataParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := transfer.Import([]byte(params.Data))
	if err != nil {
		return nil, nil, err
	}

	if err := t.deps.Users.Save(ctx, u); err != nil {
		return nil, nil, fmt.Errorf("persist imported data: %w", err)
	}

	msg := fmt.Sprintf("[import_data] replaced data for user %s: %d analyses, %d applications",
		u.UserID, len(u.Analyses), len(u.Applications))
	return textResult(msg), nil, nil
}

func (t transferTool) exportSheet(ctx context.Context, req *sdkmcp.CallToolRequest, params *ExportSheetParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	if t.deps.Board == nil {
		return nil, nil, fmt.Errorf("sheets export is not configured")
	}

	u, err := t.deps.loadUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := t.deps.Board.ExportBoard(ctx, u, params.SpreadsheetID, params.Tab)
	if err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("[export_sheet] %d rows appended to %s", rows, params.SpreadsheetID)
	return textResult(msg), nil, nil
}
