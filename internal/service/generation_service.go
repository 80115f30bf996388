// Package service wires the generation pipeline together: estimator,
// provider registry, retry wrapper, and output validator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pairforge/pairforge/internal/domain"
	"github.com/pairforge/pairforge/internal/generation"
)

// GenerateParams carries one caller invocation.
type GenerateParams struct {
	// SourceText is the text to derive training pairs from.
	SourceText string

	// Provider selects the backend adapter by registry name.
	Provider string

	// Model optionally overrides the adapter's default model.
	Model string

	// Temperature is the sampling temperature. Zero means backend default.
	Temperature float32

	// MaxTokens optionally caps the backend's output length.
	MaxTokens int
}

// GenerationService orchestrates a single generation request: estimate the
// pair count, call the selected adapter through the retry wrapper, validate
// the output, and assemble a GenerationResult. The provider registry is
// injected at construction; the service never consults ambient
// configuration to pick a backend.
//
// The service holds no mutable state across requests, so one instance
// safely serves concurrent callers.
type GenerationService struct {
	providers map[string]generation.Provider
	estimator generation.Estimator
	retry     generation.RetryPolicy
	logger    *slog.Logger
}

// NewGenerationService creates a GenerationService over the given adapter
// instances.
func NewGenerationService(
	providers []generation.Provider,
	estimator generation.Estimator,
	retry generation.RetryPolicy,
	logger *slog.Logger,
) (*GenerationService, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if len(providers) == 0 {
		return nil, errors.New("at least one provider is required")
	}

	registry := make(map[string]generation.Provider, len(providers))
	for _, p := range providers {
		if p == nil {
			return nil, errors.New("provider cannot be nil")
		}
		if _, exists := registry[p.Name()]; exists {
			return nil, fmt.Errorf("duplicate provider %q", p.Name())
		}
		registry[p.Name()] = p
	}

	return &GenerationService{
		providers: registry,
		estimator: estimator,
		retry:     retry,
		logger:    logger,
	}, nil
}

// Providers returns the registered provider names, sorted.
func (s *GenerationService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate runs the pipeline for params. It returns either a non-empty
// GenerationResult or exactly one typed error: a *generation.ConfigError
// for an unknown provider, a *generation.ProviderError once retries are
// exhausted (or immediately for permanent failures), or a
// *generation.ValidationError when the backend succeeded at the transport
// level but produced no usable pairs.
func (s *GenerationService) Generate(ctx context.Context, params GenerateParams) (*domain.GenerationResult, error) {
	sourceText := strings.TrimSpace(params.SourceText)
	if sourceText == "" {
		return nil, generation.ErrEmptySource
	}

	provider, ok := s.providers[params.Provider]
	if !ok {
		return nil, generation.NewUnknownProviderError(params.Provider)
	}

	pairCount := s.estimator.PairCount(sourceText)

	req := generation.Request{
		SourceText:  sourceText,
		PairCount:   pairCount,
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	logger := s.logger.With(
		"provider", provider.Name(),
		"pair_count", pairCount,
		"source_length", len(sourceText))

	logger.InfoContext(ctx, "starting generation")

	raw, err := s.retry.Do(ctx, logger, func(ctx context.Context) (string, error) {
		return provider.Generate(ctx, req)
	})
	if err != nil {
		logger.ErrorContext(ctx, "generation failed", "error", err)
		return nil, err
	}

	pairs, skipped, err := generation.ParsePairs(raw)
	if err != nil {
		logger.ErrorContext(ctx, "model output failed validation",
			"error", err,
			"raw_length", len(raw))
		return nil, err
	}

	model := params.Model
	if model == "" {
		model = provider.Model()
	}

	result, err := domain.NewGenerationResult(provider.Name(), model, pairCount, skipped, pairs)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble result: %w", err)
	}

	logger.InfoContext(ctx, "generation complete",
		"result_id", result.ID,
		"returned", result.Returned,
		"skipped", result.Skipped)

	return result, nil
}
