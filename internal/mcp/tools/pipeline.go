package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/positionfit/positionfit/internal/domain"
	"github.com/positionfit/positionfit/internal/session"
)

// ResumeSessionParams defines the arguments for the resume_session tool.
type ResumeSessionParams struct {
	UserID     string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	AnalysisID string `json:"analysis_id" jsonschema:"Stored analysis to reconstruct the session from"`
	Step       string `json:"step,omitempty" jsonschema:"Optional target step to open"`
}

// RunAnalysisParams defines the arguments for the run_analysis tool.
type RunAnalysisParams struct {
	UserID     string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	AnalysisID string `json:"analysis_id" jsonschema:"Stored analysis whose job and resume to analyze"`
}

// OptimizeResumeParams defines the arguments for the optimize_resume tool.
type OptimizeResumeParams struct {
	UserID     string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	AnalysisID string `json:"analysis_id" jsonschema:"Stored analysis whose resume to optimize"`
}

type pipelineTool struct {
	deps Deps
}

// resumeSession rebuilds a full session from the stored record alone; no
// external collaborator call happens here.
func (t pipelineTool) resumeSession(ctx context.Context, req *sdkmcp.CallToolRequest, params *ResumeSessionParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	ctrl, err := t.restore(ctx, params.UserID, params.AnalysisID, domain.Step(params.Step))
	if err != nil {
		return nil, nil, err
	}

	state := ctrl.State()
	msg := fmt.Sprintf("[resume_session] analysis %s reopened at step %s", params.AnalysisID, state.CurrentStep)
	return textResult(msg), state, nil
}

func (t pipelineTool) runAnalysis(ctx context.Context, req *sdkmcp.CallToolRequest, params *RunAnalysisParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	ctrl, err := t.restore(ctx, params.UserID, params.AnalysisID, "")
	if err != nil {
		return nil, nil, err
	}

	if err := ctrl.RunAnalysis(ctx); err != nil {
		return nil, nil, err
	}

	state := ctrl.State()
	score := 0
	if state.Match != nil {
		score = state.Match.Score
	}
	msg := fmt.Sprintf("[run_analysis] analysis %s scored %d", params.AnalysisID, score)
	return textResult(msg), state, nil
}

func (t pipelineTool) optimizeResume(ctx context.Context, req *sdkmcp.CallToolRequest, params *OptimizeResumeParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	ctrl, err := t.restore(ctx, params.UserID, params.AnalysisID, "")
	if err != nil {
		return nil, nil, err
	}

	if err := ctrl.OptimizeResume(ctx); err != nil {
		return nil, nil, err
	}

	state := ctrl.State()
	msg := fmt.Sprintf("[optimize_resume] optimized resume stored for analysis %s", params.AnalysisID)
	return textResult(msg), state, nil
}

func (t pipelineTool) restore(ctx context.Context, userID, analysisID string, step domain.Step) (*session.Controller, error) {
	u, err := t.deps.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ctrl := session.New(u, t.deps.Analyses, t.deps.Collaborator, t.deps.Logger)
	if err := ctrl.Resume(analysisID, step); err != nil {
		return nil, err
	}

	return ctrl, nil
}
