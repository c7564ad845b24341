package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	_ "embed"

	"github.com/positionfit/positionfit/internal/ai"
	"github.com/positionfit/positionfit/pkg/logging"
)

//go:embed analyze_prompt.md
var analyzePromptTemplate string

//go:embed optimize_prompt.md
var optimizePromptTemplate string

const previewLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Collaborator implements the workflow's generative-AI boundary on top of
// Gemini.
type Collaborator struct {
	generator contentGenerator
	logger    *logging.Logger
}

var _ ai.Collaborator = (*Collaborator)(nil)

// NewCollaborator wraps a content generator.
func NewCollaborator(generator contentGenerator, logger *logging.Logger) *Collaborator {
	return &Collaborator{generator: generator, logger: logger}
}

// AnalyzeCompatibility scores the resume against the job posting. The raw
// model response is returned verbatim alongside the parsed summary so the
// caller can snapshot it for resumption.
func (c *Collaborator) AnalyzeCompatibility(ctx context.Context, jobPosting, resume json.RawMessage) (*ai.MatchResult, error) {
	if len(jobPosting) == 0 {
		return nil, fmt.Errorf("job posting payload is required")
	}
	if len(resume) == 0 {
		return nil, fmt.Errorf("resume payload is required")
	}

	prompt := renderPrompt(analyzePromptTemplate, map[string]string{
		"{{JOB_JSON}}":    string(jobPosting),
		"{{RESUME_JSON}}": string(resume),
	})

	c.logger.Debug("gemini analyze request",
		"prompt_length", utf8.RuneCountInString(prompt),
		"prompt_preview", truncate(prompt, previewLength),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini analyze response",
		"response_length", utf8.RuneCountInString(raw),
		"response_preview", truncate(raw, previewLength),
	)

	return parseMatchResponse(raw)
}

// OptimizeResume rewrites the resume toward the posting, guided by the
// analysis. The result is the extracted JSON payload, stored opaquely.
func (c *Collaborator) OptimizeResume(ctx context.Context, resume, analysis, jobPosting json.RawMessage) (json.RawMessage, error) {
	if len(resume) == 0 {
		return nil, fmt.Errorf("resume payload is required")
	}

	prompt := renderPrompt(optimizePromptTemplate, map[string]string{
		"{{JOB_JSON}}":      string(jobPosting),
		"{{ANALYSIS_JSON}}": string(analysis),
		"{{RESUME_JSON}}":   string(resume),
	})

	c.logger.Debug("gemini optimize request",
		"prompt_length", utf8.RuneCountInString(prompt),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSON(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("optimize response is not valid JSON: %s", truncate(cleaned, previewLength))
	}

	c.logger.Debug("gemini optimize response",
		"response_length", utf8.RuneCountInString(cleaned),
	)

	return json.RawMessage(cleaned), nil
}
