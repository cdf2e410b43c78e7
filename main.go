package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/genai"

	"github.com/instant-idea-buddy/server/internal/core"
	"github.com/instant-idea-buddy/server/internal/idea/controller"
	"github.com/instant-idea-buddy/server/internal/idea/generators"
	"github.com/instant-idea-buddy/server/internal/idea/model"
	"github.com/instant-idea-buddy/server/internal/repo"
	"github.com/instant-idea-buddy/server/internal/web"
	logx "github.com/instant-idea-buddy/server/pkg/logger"
	pkgredis "github.com/instant-idea-buddy/server/pkg/redis"
)

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis  pkgredis.Config
	Server web.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	Generation model.GenerationConfig
	History    model.HistoryConfig
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg AppConfig) error {
	client, err := generators.NewGenAIClient(ctx, generators.ClientConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return err
	}

	generator, err := newGenerator(ctx, client, cfg.Generation)
	if err != nil {
		return err
	}

	opts := []controller.Option{controller.WithGenerationConfig(cfg.Generation)}

	var history model.HistoryRepository
	if cfg.Redis.Enabled() {
		ttl, err := time.ParseDuration(cfg.History.TTL)
		if err != nil {
			return fmt.Errorf("invalid HISTORY_TTL %q: %w", cfg.History.TTL, err)
		}

		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialise Redis client: %w", err)
		}
		defer rdb.Close()
		logx.Info().Msg("Connected to Redis, idea history enabled")

		history = repo.NewRedisHistoryRepository(rdb, ttl, cfg.History.MaxEntries)
		opts = append(opts, controller.WithHistory(history))
	} else {
		logx.Info().Msg("REDIS_URL not set, idea history disabled")
	}

	ctrl := controller.New(generator, opts...)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.NewServer(ctrl, history, cfg.Server).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().
			Str("addr", cfg.Server.Addr).
			Str("environment", cfg.Environment.String()).
			Str("transport", cfg.Generation.Transport).
			Str("model", cfg.Generation.Model).
			Msg("Instant Idea Buddy listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logx.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newGenerator picks the transport named by IDEA_TRANSPORT.
func newGenerator(ctx context.Context, client *genai.Client, cfg model.GenerationConfig) (generators.Generator, error) {
	switch cfg.Transport {
	case model.TransportGenAI, "":
		return generators.NewGenAIGenerator(client), nil
	case model.TransportChatModel:
		maxTokens := int(cfg.MaxOutputTokens)
		chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       cfg.Model,
			Temperature: &cfg.Temperature,
			TopP:        &cfg.TopP,
			TopK:        &cfg.TopK,
			MaxTokens:   &maxTokens,
		})
		if err != nil {
			logx.Error().Err(err).Msg("Error creating Gemini chat model")
			return nil, fmt.Errorf("error creating Gemini chat model: %w", err)
		}
		return generators.NewChatModelGenerator(chatModel, "Gemini"), nil
	default:
		return nil, fmt.Errorf("unknown IDEA_TRANSPORT %q", cfg.Transport)
	}
}
