package generators

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/instant-idea-buddy/server/internal/core/error"
	"github.com/instant-idea-buddy/server/internal/idea/model"
	logx "github.com/instant-idea-buddy/server/pkg/logger"
)

// ClientConfig holds the configuration for Gemini client creation
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGenAIClient creates the Gemini API client shared by both transports.
func NewGenAIClient(ctx context.Context, config ClientConfig) (*genai.Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: config.HTTPClient,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	return client, nil
}

// GenAIGenerator calls generateContent directly through the genai SDK, which
// keeps the candidate list and API error status intact.
type GenAIGenerator struct {
	client *genai.Client
}

func NewGenAIGenerator(client *genai.Client) *GenAIGenerator {
	return &GenAIGenerator{client: client}
}

func (g *GenAIGenerator) Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		TopK:            genai.Ptr(float32(req.TopK)),
		TopP:            genai.Ptr(req.TopP),
		MaxOutputTokens: req.MaxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, errx.Classify(err)
	}

	result := &model.GenerationResult{Model: req.Model}
	if resp.ModelVersion != "" {
		result.Model = resp.ModelVersion
	}
	for _, c := range resp.Candidates {
		result.Candidates = append(result.Candidates, firstPartText(c))
	}
	if u := resp.UsageMetadata; u != nil {
		result.Usage = &schema.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return result, nil
}

// firstPartText returns the text of the candidate's first part. A candidate
// without content (e.g. stopped by safety filters) yields "".
func firstPartText(c *genai.Candidate) string {
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}

var _ Generator = (*GenAIGenerator)(nil)
