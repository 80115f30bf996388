package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pairforge/pairforge/internal/api"
	"github.com/pairforge/pairforge/internal/config"
	"github.com/pairforge/pairforge/internal/generation"
	"github.com/pairforge/pairforge/internal/platform/anthropic"
	"github.com/pairforge/pairforge/internal/platform/gemini"
	"github.com/pairforge/pairforge/internal/platform/ollama"
	"github.com/pairforge/pairforge/internal/platform/openai"
	"github.com/pairforge/pairforge/internal/service"
)

// application holds the shared application dependencies to simplify
// wiring and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	providers []generation.Provider
	service   *service.GenerationService
	handler   *api.GenerateHandler
}

// newApplication creates an application instance with all dependencies
// initialized. Remote adapters whose API key is absent from the
// environment are skipped with a log line rather than failing startup;
// the local Ollama adapter needs no credential and is always registered.
// The configured default provider must end up registered.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.registerProviders(ctx); err != nil {
		return nil, err
	}

	registered := make([]string, 0, len(app.providers))
	hasDefault := false
	for _, p := range app.providers {
		registered = append(registered, p.Name())
		if p.Name() == cfg.LLM.DefaultProvider {
			hasDefault = true
		}
	}
	if !hasDefault {
		return nil, fmt.Errorf(
			"default provider %q is not available; registered providers: %v",
			cfg.LLM.DefaultProvider, registered)
	}

	estimator := generation.Estimator{
		MinPairs:              cfg.Estimator.MinPairs,
		MaxPairs:              cfg.Estimator.MaxPairs,
		PairsPerThousandWords: cfg.Estimator.PairsPerThousandWords,
	}

	retry := generation.RetryPolicy{
		MaxAttempts: cfg.LLM.MaxAttempts,
		BaseDelay:   cfg.LLM.RetryBaseDelay(),
		MaxDelay:    cfg.LLM.RetryMaxDelay(),
	}

	svc, err := service.NewGenerationService(app.providers, estimator, retry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}
	app.service = svc

	app.handler = api.NewGenerateHandler(svc, cfg.LLM.DefaultProvider, cfg.LLM.Temperature, logger)

	logger.Info("application initialized", "providers", registered)
	return app, nil
}

// registerProviders constructs one adapter per configured backend.
func (app *application) registerProviders(ctx context.Context) error {
	cfg := app.config.LLM

	if cfg.AnthropicAPIKey != "" {
		adapter, err := anthropic.New(anthropic.Config{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.Timeout(),
		}, app.logger.With("component", "anthropic_adapter"))
		if err != nil {
			return fmt.Errorf("failed to initialize anthropic adapter: %w", err)
		}
		app.providers = append(app.providers, adapter)
	} else {
		app.logger.Info("anthropic adapter not registered", "reason", "no API key configured")
	}

	if cfg.OpenAIAPIKey != "" {
		adapter, err := openai.New(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout(),
		}, app.logger.With("component", "openai_adapter"))
		if err != nil {
			return fmt.Errorf("failed to initialize openai adapter: %w", err)
		}
		app.providers = append(app.providers, adapter)
	} else {
		app.logger.Info("openai adapter not registered", "reason", "no API key configured")
	}

	if cfg.GeminiAPIKey != "" {
		adapter, err := gemini.New(ctx, gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}, app.logger.With("component", "gemini_adapter"))
		if err != nil {
			return fmt.Errorf("failed to initialize gemini adapter: %w", err)
		}
		app.providers = append(app.providers, adapter)
	} else {
		app.logger.Info("gemini adapter not registered", "reason", "no API key configured")
	}

	adapter, err := ollama.New(ollama.Config{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaModel,
	}, app.logger.With("component", "ollama_adapter"))
	if err != nil {
		return fmt.Errorf("failed to initialize ollama adapter: %w", err)
	}
	app.providers = append(app.providers, adapter)

	return nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
