// Package ai defines the external generative-AI boundary of the workflow
// core. The core stores the raw payloads opaquely and only denormalizes
// the parsed match summary.
package ai

import (
	"context"
	"encoding/json"
)

// MatchResult is the outcome of a compatibility analysis: the raw payload
// kept verbatim for resumption plus the parsed fields the record manager
// denormalizes onto the analysis.
type MatchResult struct {
	Summary MatchSummaryFields
	Raw     json.RawMessage
}

// MatchSummaryFields mirrors the denormalized analysis fields.
type MatchSummaryFields struct {
	Score           int
	Strengths       []string
	Gaps            []string
	Recommendations []string
}

// Collaborator is the generative-AI dependency of the session controller.
// Both calls may fail with network, quota or response-shape errors; the
// core surfaces those without retrying and persists nothing partial.
type Collaborator interface {
	AnalyzeCompatibility(ctx context.Context, jobPosting, resume json.RawMessage) (*MatchResult, error)
	OptimizeResume(ctx context.Context, resume, analysis, jobPosting json.RawMessage) (json.RawMessage, error)
}
