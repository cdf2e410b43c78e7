package model

import (
	"github.com/cloudwego/eino/schema"
)

// GenerationRequest is built fresh for every submission and passed by value,
// so it cannot change once sent.
type GenerationRequest struct {
	Prompt          string
	Model           string
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// NewGenerationRequest pairs a rendered prompt with the configured decoding settings.
func NewGenerationRequest(prompt string, cfg GenerationConfig) GenerationRequest {
	return GenerationRequest{
		Prompt:          prompt,
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		TopK:            cfg.TopK,
		TopP:            cfg.TopP,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}

// GenerationResult holds the text of each returned candidate (first part only).
type GenerationResult struct {
	Candidates []string
	Model      string
	Usage      *schema.TokenUsage
}

// FirstCandidate returns the first candidate's text, if any.
func (r *GenerationResult) FirstCandidate() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	return r.Candidates[0], true
}
