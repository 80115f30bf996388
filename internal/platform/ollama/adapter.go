// Package ollama implements the generation.Provider interface against a
// local Ollama instance. No secret is required: the endpoint is local and
// there is no external network egress.
package ollama

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
	ProviderName = "ollama"

	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2:3b"
	defaultTimeout = 5 * time.Minute
)

// Config holds the adapter's settings.
type Config struct {
	// BaseURL is the local Ollama endpoint.
	BaseURL string

	// Model is the default model when a request does not override it.
	Model string

	// Timeout bounds each individual attempt. Local models are slow, so
	// the default is generous.
	Timeout time.Duration
}

// Adapter talks to Ollama's /api/chat endpoint. It uses the focused
// prompt: the local backend favors fewer, higher-quality pairs over
// strictly honoring the requested count, and must never pad its output.
type Adapter struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
	model   string
}

// Ollama chat wire types.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float32 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// New creates an Ollama adapter.
func New(cfg Config, logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
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
		model:   model,
	}, nil
}

// Name implements generation.Provider.
func (a *Adapter) Name() string { return ProviderName }

// Model implements generation.Provider.
func (a *Adapter) Model() string { return a.model }

// Generate implements generation.Provider.
func (a *Adapter) Generate(ctx context.Context, req generation.Request) (string, error) {
	prompt, err := generation.BuildFocusedPrompt(req)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "invalid request", err)
	}

	model := req.Model
	if model == "" {
		model = a.model
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Options: chatOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	})
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	a.logger.DebugContext(ctx, "calling local ollama chat endpoint",
		"model", model,
		"pair_count", req.PairCount,
		"source_length", len(req.SourceText))

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", generation.ClassifyTransportError(ProviderName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", generation.ClassifyHTTPStatus(ProviderName, resp.StatusCode, "")
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "failed to decode response", err)
	}

	text := strings.TrimSpace(chatResp.Message.Content)
	if text == "" {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "response contained no content", nil)
	}

	return text, nil
}
