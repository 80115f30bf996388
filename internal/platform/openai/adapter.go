// Package openai implements the generation.Provider interface against the
// OpenAI Chat Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pairforge/pairforge/internal/generation"
)

const (
	// ProviderName is the registry identifier for this adapter.
	ProviderName = "openai"

	defaultBaseURL   = "https://api.openai.com"
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 4096
	defaultTimeout   = 60 * time.Second
)

// Config holds the adapter's settings.
type Config struct {
	// APIKey is the OpenAI API secret. Required.
	APIKey string

	// Model is the default model when a request does not override it.
	Model string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// Timeout bounds each individual API attempt.
	Timeout time.Duration
}

// Adapter talks to the OpenAI Chat Completions API. The response envelope
// is a flat string at choices[0].message.content.
type Adapter struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// Chat Completions wire types.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// New creates an OpenAI adapter. A missing API key is a configuration
// error surfaced here, before any network attempt.
func New(cfg Config, logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, generation.NewMissingCredentialError(ProviderName, "OPENAI_API_KEY")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Adapter{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   model,
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

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	a.logger.DebugContext(ctx, "calling openai chat completions API",
		"model", model,
		"pair_count", req.PairCount,
		"source_length", len(req.SourceText))

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", generation.ClassifyTransportError(ProviderName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		msg := ""
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			msg = errResp.Error.Message
		}
		return "", generation.ClassifyHTTPStatus(ProviderName, resp.StatusCode, msg)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "failed to decode response", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "response contained no choices", nil)
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "response contained no content", nil)
	}

	return text, nil
}
