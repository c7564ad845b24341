package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/positionfit/positionfit/internal/analysis"
	"github.com/positionfit/positionfit/internal/domain"
)

// SaveAnalysisParams defines the arguments for the save_analysis tool.
type SaveAnalysisParams struct {
	UserID          string         `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	JobPosting      map[string]any `json:"job_posting" jsonschema:"Parsed job posting payload; title and company are required"`
	Resume          map[string]any `json:"resume,omitempty" jsonschema:"Opaque resume payload snapshot"`
	Analysis        map[string]any `json:"analysis,omitempty" jsonschema:"Opaque compatibility analysis payload snapshot"`
	OptimizedResume map[string]any `json:"optimized_resume,omitempty" jsonschema:"Opaque optimized resume payload snapshot"`
	Match           *MatchParams   `json:"match,omitempty" jsonschema:"Denormalized match fields to apply"`
	Step            string         `json:"step,omitempty" jsonschema:"Pipeline step reached: job, resume, analysis or optimization"`
}

// MatchParams mirrors the denormalized analysis outcome.
type MatchParams struct {
	OverallScore    int      `json:"overall_score" jsonschema:"Match score from 0 to 100"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// DeleteAnalysisParams defines the arguments for the delete_analysis tool.
type DeleteAnalysisParams struct {
	UserID     string `json:"user_id" jsonschema:"User identifier owning the aggregate"`
	AnalysisID string `json:"analysis_id" jsonschema:"Identifier of the analysis to delete"`
}

type analysesTool struct {
	deps Deps
}

func (t analysesTool) save(ctx context.Context, req *sdkmcp.CallToolRequest, params *SaveAnalysisParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := t.deps.loadOrCreateUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	saveReq, err := buildSaveRequest(params)
	if err != nil {
		return nil, nil, err
	}

	rec, err := t.deps.Analyses.Save(ctx, u, saveReq)
	if err != nil {
		return nil, nil, fmt.Errorf("save analysis: %w", err)
	}

	msg := fmt.Sprintf("[save_analysis] %s at %s saved (id=%s, step=%s, score=%d)",
		rec.JobTitle, rec.Company, rec.ID, rec.CurrentStep, rec.MatchScore)
	return textResult(msg), rec, nil
}

func (t analysesTool) delete(ctx context.Context, req *sdkmcp.CallToolRequest, params *DeleteAnalysisParams) (*sdkmcp.CallToolResult, any, error) {
	_ = req

	if params == nil {
		return nil, nil, fmt.Errorf("parameters are required")
	}

	u, err := t.deps.loadUser(ctx, params.UserID)
	if err != nil {
		return nil, nil, err
	}

	if err := t.deps.Analyses.Delete(ctx, u, params.AnalysisID); err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("[delete_analysis] analysis %s and its application removed", params.AnalysisID)
	return textResult(msg), nil, nil
}

func buildSaveRequest(params *SaveAnalysisParams) (analysis.SaveRequest, error) {
	postingRaw, err := marshalPayload(params.JobPosting)
	if err != nil {
		return analysis.SaveRequest{}, fmt.Errorf("job_posting: %w", err)
	}

	var posting domain.JobPosting
	if err := json.Unmarshal(postingRaw, &posting); err != nil {
		return analysis.SaveRequest{}, fmt.Errorf("job_posting: %w", err)
	}

	resumeRaw, err := marshalPayload(params.Resume)
	if err != nil {
		return analysis.SaveRequest{}, fmt.Errorf("resume: %w", err)
	}

	analysisRaw, err := marshalPayload(params.Analysis)
	if err != nil {
		return analysis.SaveRequest{}, fmt.Errorf("analysis: %w", err)
	}

	optimizedRaw, err := marshalPayload(params.OptimizedResume)
	if err != nil {
		return analysis.SaveRequest{}, fmt.Errorf("optimized_resume: %w", err)
	}

	saveReq := analysis.SaveRequest{
		Posting:    posting,
		PostingRaw: postingRaw,
		Resume:     resumeRaw,
		Analysis:   analysisRaw,
		Optimized:  optimizedRaw,
		Step:       domain.Step(params.Step),
	}

	if params.Match != nil {
		saveReq.Match = &domain.MatchSummary{
			Score:           params.Match.OverallScore,
			Strengths:       params.Match.Strengths,
			Gaps:            params.Match.Gaps,
			Recommendations: params.Match.Recommendations,
		}
	}

	return saveReq, nil
}

func marshalPayload(payload map[string]any) (json.RawMessage, error) {
	if payload == nil {
		return nil, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
