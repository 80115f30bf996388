// Package gemini implements the generation.Provider interface against
// Google's Gemini API using the genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/pairforge/pairforge/internal/generation"
)

const (
	// ProviderName is the registry identifier for this adapter.
	ProviderName = "gemini"

	defaultModel     = "gemini-2.0-flash"
	defaultMaxTokens = 4096
)

// Config holds the adapter's settings.
type Config struct {
	// APIKey is the Gemini API secret. Required.
	APIKey string

	// Model is the default model when a request does not override it.
	Model string
}

// Adapter talks to the Gemini API. Gemini responses are segmented into
// candidate parts; the adapter concatenates the text parts in order.
type Adapter struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// New creates a Gemini adapter. A missing API key is a configuration
// error surfaced here, before any network attempt.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, generation.NewMissingCredentialError(ProviderName, "GEMINI_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Adapter{
		logger: logger,
		client: client,
		model:  model,
	}, nil
}

// Name implements generation.Provider.
func (a *Adapter) Name() string { return ProviderName }

// Model implements generation.Provider.
func (a *Adapter) Model() string { return a.model }

// Generate implements generation.Provider. The requested pair count is
// embedded in the prompt as a target the model should meet.
func (a *Adapter) Generate(ctx context.Context, req generation.Request) (string, error) {
	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "invalid request", err)
	}

	model := req.Model
	if model == "" {
		model = a.model
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generation.SystemPrompt}},
		},
	}
	if req.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(req.Temperature)
	}

	a.logger.DebugContext(ctx, "calling gemini generate content API",
		"model", model,
		"pair_count", req.PairCount,
		"source_length", len(req.SourceText))

	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", generation.ClassifyHTTPStatus(ProviderName, apiErr.Code, apiErr.Message)
		}
		return "", generation.ClassifyTransportError(ProviderName, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "response contained no candidates", nil)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.NewProviderError(ProviderName, generation.KindContentFiltered, "content blocked by safety filters", nil)
	}

	if candidate.Content == nil {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "candidate carried no content", nil)
	}

	text := collectText(candidate.Content.Parts)
	if text == "" {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "response contained no text part", nil)
	}

	return text, nil
}

// collectText concatenates text parts in order, skipping non-text parts.
func collectText(parts []*genai.Part) string {
	var sb strings.Builder
	for _, part := range parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
