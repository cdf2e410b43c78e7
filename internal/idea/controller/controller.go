package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	errx "github.com/instant-idea-buddy/server/internal/core/error"
	"github.com/instant-idea-buddy/server/internal/idea/generators"
	"github.com/instant-idea-buddy/server/internal/idea/model"
	"github.com/instant-idea-buddy/server/internal/idea/observers"
	"github.com/instant-idea-buddy/server/internal/idea/parsers"
	"github.com/instant-idea-buddy/server/internal/idea/prompts"
	logx "github.com/instant-idea-buddy/server/pkg/logger"
)

// ErrSuperseded is returned for a submission whose result was discarded because
// a newer submission (or a reset) happened while it was in flight.
var ErrSuperseded = errors.New("idea request superseded by a newer submission")

// Result is the outcome of one submission.
type Result struct {
	State model.State
	Err   error
}

// Controller owns the interaction state. State changes only at call start and
// call completion, and only the latest submission may complete it.
type Controller struct {
	generator generators.Generator
	history   model.HistoryRepository
	config    model.GenerationConfig
	now       func() time.Time

	mu    sync.Mutex
	state model.State
	token uint64
}

type Option func(*Controller)

// WithHistory records every successful idea in repo.
func WithHistory(repo model.HistoryRepository) Option {
	return func(c *Controller) { c.history = repo }
}

// WithGenerationConfig overrides the default decoding settings.
func WithGenerationConfig(cfg model.GenerationConfig) Option {
	return func(c *Controller) { c.config = cfg }
}

func New(generator generators.Generator, opts ...Option) *Controller {
	c := &Controller{
		generator: generator,
		config:    model.DefaultGenerationConfig(),
		now:       time.Now,
		state:     model.NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current interaction state.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns to Idle and drops any in-flight submission.
func (c *Controller) Reset() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token++
	c.state = model.NewState()
	return c.state
}

// Submit validates input and, when it is usable, enters Loading before
// returning. The remote call resolves on its own goroutine and the returned
// channel receives exactly one Result. Earlier in-flight submissions are not
// cancelled; their results are discarded with ErrSuperseded.
func (c *Controller) Submit(ctx context.Context, input string) <-chan Result {
	out := make(chan Result, 1)

	token, ok := c.begin(input)
	if !ok {
		out <- Result{State: c.State(), Err: errx.Validation()}
		return out
	}

	go func() {
		out <- c.resolve(ctx, token, input)
	}()
	return out
}

// SubmitAndWait is Submit for callers that want to block until resolution.
func (c *Controller) SubmitAndWait(ctx context.Context, input string) (model.State, error) {
	r := <-c.Submit(ctx, input)
	return r.State, r.Err
}

// begin applies the submit-time transition and returns the submission token.
// Whitespace-only input moves straight to Error without a remote call.
func (c *Controller) begin(input string) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	if strings.TrimSpace(input) == "" {
		c.state = model.State{
			UserInput: input,
			Error:     errx.ValidationMessage,
			Phase:     model.PhaseError,
		}
		return c.token, false
	}

	c.state = model.State{
		UserInput: input,
		IsLoading: true,
		Phase:     model.PhaseLoading,
	}
	return c.token, true
}

func (c *Controller) resolve(ctx context.Context, token uint64, input string) Result {
	requestID := uuid.NewString()
	ctx = observers.WithCallbacks(ctx)

	idea, result, err := c.generate(ctx, input)
	if err != nil {
		logx.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("kind", string(errx.KindOf(err))).
			Msg("idea request failed")
	}

	c.mu.Lock()
	if token != c.token {
		state := c.state
		c.mu.Unlock()
		logx.Debug().Str("request_id", requestID).Uint64("token", token).Msg("discarding superseded idea result")
		return Result{State: state, Err: ErrSuperseded}
	}
	if err != nil {
		c.state.Error = errx.Classify(err).Message
		c.state.Phase = model.PhaseError
	} else {
		c.state.Idea = idea.Idea
		c.state.Encouragement = idea.Encouragement
		c.state.Phase = model.PhaseSuccess
	}
	c.state.IsLoading = false
	state := c.state
	c.mu.Unlock()

	if err != nil {
		return Result{State: state, Err: err}
	}

	c.logUsage(requestID, result)
	c.record(ctx, requestID, input, idea, result.Model)
	return Result{State: state}
}

// generate runs one round trip: render, call, parse.
func (c *Controller) generate(ctx context.Context, input string) (model.Idea, *model.GenerationResult, error) {
	prompt, err := prompts.RenderIdea(ctx, input)
	if err != nil {
		return model.Idea{}, nil, errx.RequestSetup(err)
	}

	result, err := c.generator.Generate(ctx, model.NewGenerationRequest(prompt, c.config))
	if err != nil {
		return model.Idea{}, nil, errx.Classify(err)
	}

	text, ok := result.FirstCandidate()
	if !ok {
		return model.Idea{}, result, errx.EmptyResult()
	}
	return parsers.ParseIdea(text), result, nil
}

func (c *Controller) logUsage(requestID string, result *model.GenerationResult) {
	if result == nil || result.Usage == nil {
		return
	}
	inC, outC, totalC := model.ComputeCost(result.Usage, model.ResolvePricing(c.config.Model))
	logx.Debug().
		Str("request_id", requestID).
		Str("model", result.Model).
		Int("prompt_tokens", result.Usage.PromptTokens).
		Int("completion_tokens", result.Usage.CompletionTokens).
		Int("total_tokens", result.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

// record stores the idea in history. Failures are logged only; the user
// already has their idea.
func (c *Controller) record(ctx context.Context, requestID, input string, idea model.Idea, modelName string) {
	if c.history == nil {
		return
	}
	rec := &model.IdeaRecord{
		ID:            requestID,
		Request:       input,
		Idea:          idea.Idea,
		Encouragement: idea.Encouragement,
		Model:         modelName,
		CreatedAt:     c.now().UTC(),
	}
	if err := c.history.Add(ctx, rec); err != nil {
		logx.Error().Err(err).Str("request_id", requestID).Msg("failed to record idea history")
	}
}
