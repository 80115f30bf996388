// Package anthropic implements the generation.Provider interface against
// the Anthropic Messages API.
package anthropic

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
	ProviderName = "anthropic"

	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 4096
	defaultTimeout   = 60 * time.Second

	apiVersion = "2023-06-01"
)

// Config holds the adapter's settings.
type Config struct {
	// APIKey is the Anthropic API secret. Required.
	APIKey string

	// Model is the default model when a request does not override it.
	Model string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// Timeout bounds each individual API attempt.
	Timeout time.Duration
}

// Adapter talks to the Anthropic Messages API. The API returns segmented
// content blocks; the adapter concatenates text-typed blocks in order and
// ignores every other block type.
type Adapter struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// Messages API wire types.

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// New creates an Anthropic adapter. A missing API key is a configuration
// error surfaced here, before any network attempt.
func New(cfg Config, logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, generation.NewMissingCredentialError(ProviderName, "ANTHROPIC_API_KEY")
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

	body, err := json.Marshal(messagesRequest{
		Model:       model,
		System:      generation.SystemPrompt,
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindBadRequest, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	a.logger.DebugContext(ctx, "calling anthropic messages API",
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

	var msgResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "failed to decode response", err)
	}

	text := collectText(msgResp.Content)
	if text == "" {
		return "", generation.NewProviderError(ProviderName, generation.KindMalformedResponse, "response contained no text block", nil)
	}

	return text, nil
}

// collectText concatenates text-typed content blocks in order, skipping
// every other block type.
func collectText(blocks []contentBlock) string {
	var sb strings.Builder
	for _, block := range blocks {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
