package generators

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/instant-idea-buddy/server/internal/core/error"
	"github.com/instant-idea-buddy/server/internal/idea/model"
)

type capturedRequest struct {
	Path   string
	APIKey string
	Body   struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig struct {
			Temperature     float64 `json:"temperature"`
			TopK            float64 `json:"topK"`
			TopP            float64 `json:"topP"`
			MaxOutputTokens int     `json:"maxOutputTokens"`
		} `json:"generationConfig"`
	}
}

func newGeminiServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.Path = r.URL.Path
			captured.APIKey = r.Header.Get("x-goog-api-key")
			_ = json.NewDecoder(r.Body).Decode(&captured.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGenerator(t *testing.T, srv *httptest.Server) *GenAIGenerator {
	t.Helper()
	client, err := NewGenAIClient(context.Background(), ClientConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return NewGenAIGenerator(client)
}

func TestGenAIGenerator_Success(t *testing.T) {
	var captured capturedRequest
	srv := newGeminiServer(t, http.StatusOK, `{
		"candidates": [
			{"content": {"role": "model", "parts": [{"text": "Idea: Go hiking\nEncouragement: You'll love the fresh air!"}]}, "finishReason": "STOP"},
			{"content": {"role": "model", "parts": [{"text": "Idea: Read a book"}]}}
		],
		"usageMetadata": {"promptTokenCount": 40, "candidatesTokenCount": 12, "totalTokenCount": 52},
		"modelVersion": "gemini-2.0-flash-001"
	}`, &captured)
	gen := newTestGenerator(t, srv)

	req := model.NewGenerationRequest("Given the following request: 'weekend plans'", model.DefaultGenerationConfig())
	result, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Idea: Go hiking\nEncouragement: You'll love the fresh air!", "Idea: Read a book"}, result.Candidates)
	assert.Equal(t, "gemini-2.0-flash-001", result.Model)
	require.NotNil(t, result.Usage)
	assert.Equal(t, 40, result.Usage.PromptTokens)
	assert.Equal(t, 12, result.Usage.CompletionTokens)
	assert.Equal(t, 52, result.Usage.TotalTokens)

	assert.True(t, strings.HasSuffix(captured.Path, "gemini-2.0-flash:generateContent"), captured.Path)
	assert.Equal(t, "test-key", captured.APIKey)
	require.Len(t, captured.Body.Contents, 1)
	require.Len(t, captured.Body.Contents[0].Parts, 1)
	assert.Equal(t, req.Prompt, captured.Body.Contents[0].Parts[0].Text)
	assert.InDelta(t, 0.8, captured.Body.GenerationConfig.Temperature, 1e-6)
	assert.InDelta(t, 40, captured.Body.GenerationConfig.TopK, 1e-6)
	assert.InDelta(t, 0.95, captured.Body.GenerationConfig.TopP, 1e-6)
	assert.Equal(t, 150, captured.Body.GenerationConfig.MaxOutputTokens)
}

func TestGenAIGenerator_NoCandidates(t *testing.T) {
	srv := newGeminiServer(t, http.StatusOK, `{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`, nil)
	gen := newTestGenerator(t, srv)

	result, err := gen.Generate(context.Background(), model.NewGenerationRequest("p", model.DefaultGenerationConfig()))
	require.NoError(t, err)
	_, ok := result.FirstCandidate()
	assert.False(t, ok)
}

func TestGenAIGenerator_CandidateWithoutContent(t *testing.T) {
	srv := newGeminiServer(t, http.StatusOK, `{"candidates": [{"finishReason": "SAFETY"}]}`, nil)
	gen := newTestGenerator(t, srv)

	result, err := gen.Generate(context.Background(), model.NewGenerationRequest("p", model.DefaultGenerationConfig()))
	require.NoError(t, err)
	text, ok := result.FirstCandidate()
	assert.True(t, ok)
	assert.Empty(t, text)
}

func TestGenAIGenerator_RemoteStatus(t *testing.T) {
	srv := newGeminiServer(t, http.StatusBadRequest,
		`{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT"}}`, nil)
	gen := newTestGenerator(t, srv)

	_, err := gen.Generate(context.Background(), model.NewGenerationRequest("p", model.DefaultGenerationConfig()))
	require.Error(t, err)

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errx.KindRemoteStatus, appErr.Kind)
	assert.Equal(t, "API Error: 400 - API key not valid. Please pass a valid API key.", appErr.Message)
}

func TestGenAIGenerator_NoResponse(t *testing.T) {
	srv := newGeminiServer(t, http.StatusOK, `{}`, nil)
	gen := newTestGenerator(t, srv)
	srv.Close()

	_, err := gen.Generate(context.Background(), model.NewGenerationRequest("p", model.DefaultGenerationConfig()))
	require.Error(t, err)
	assert.Equal(t, errx.KindNetwork, errx.KindOf(err))
	assert.Equal(t, errx.NetworkMessage, errx.Classify(err).Message)
}

func TestNewGenAIClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGenAIClient(context.Background(), ClientConfig{})
	assert.Error(t, err)
}
