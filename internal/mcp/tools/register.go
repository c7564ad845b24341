package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll installs every workflow tool into the server.
func RegisterAll(server *sdkmcp.Server, deps Deps) {
	analyses := analysesTool{deps: deps}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_analysis",
		Description: "Create or update a job analysis, deduplicated by title, company and source URL",
	}, analyses.save)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_analysis",
		Description: "Delete a job analysis and cascade to its application",
	}, analyses.delete)

	applications := applicationsTool{deps: deps}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_application_status",
		Description: "Set the application status for an analysis, appending to the audit timeline",
	}, applications.setStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_application",
		Description: "Delete an application while keeping its analysis",
	}, applications.delete)

	board := boardTool{deps: deps}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dashboard",
		Description: "Summarize analyses and applications grouped by status",
	}, board.dashboard)

	pipeline := pipelineTool{deps: deps}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resume_session",
		Description: "Reconstruct a workflow session from a stored analysis without re-fetching anything",
	}, pipeline.resumeSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "run_analysis",
		Description: "Run the AI compatibility analysis for a stored job and resume",
	}, pipeline.runAnalysis)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "optimize_resume",
		Description: "Generate an optimized resume for a stored analysis",
	}, pipeline.optimizeResume)

	xfer := transferTool{deps: deps}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_data",
		Description: "Export the whole user aggregate as JSON",
	}, xfer.exportData)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_data",
		Description: "Replace the stored user aggregate with an exported JSON dump",
	}, xfer.importData)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_sheet",
		Description: "Append the application board to a Google Sheets tab",
	}, xfer.exportSheet)

	deps.Logger.Info("workflow tools registered", "count", 11)
}
