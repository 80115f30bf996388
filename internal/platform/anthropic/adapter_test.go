package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairforge/pairforge/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() generation.Request {
	return generation.Request{
		SourceText:  "TLS certificates bind a public key to an identity.",
		PairCount:   5,
		Temperature: 0.7,
	}
}

func newTestAdapter(t *testing.T, url string) *Adapter {
	t.Helper()

	adapter, err := New(Config{
		APIKey:  "test-key",
		Model:   "claude-sonnet-4-5",
		BaseURL: url,
		Timeout: 5 * time.Second,
	}, testLogger())
	require.NoError(t, err)
	return adapter
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{}, testLogger())

	var cfgErr *generation.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, generation.KindMissingCredential, cfgErr.Kind)
	assert.Equal(t, ProviderName, cfgErr.Provider)
}

func TestGenerateConcatenatesTextBlocksOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet-4-5", req.Model)
		assert.Equal(t, generation.SystemPrompt, req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "at least 5")

		resp := messagesResponse{Content: []contentBlock{
			{Type: "thinking", Text: "planning the pairs"},
			{Type: "text", Text: "{\"instruction\":\"Q1\",\"response\":\"A1\"}\n"},
			{Type: "tool_use"},
			{Type: "text", Text: "{\"instruction\":\"Q2\",\"response\":\"A2\"}"},
		}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)

	text, err := adapter.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "{\"instruction\":\"Q1\",\"response\":\"A1\"}\n{\"instruction\":\"Q2\",\"response\":\"A2\"}", text)
	assert.NotContains(t, text, "planning")
}

func TestGenerateFailsWhenNoTextBlockPresent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := messagesResponse{Content: []contentBlock{{Type: "tool_use"}}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)

	_, err := adapter.Generate(context.Background(), testRequest())

	var provErr *generation.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, generation.KindMalformedResponse, provErr.Kind)
	assert.False(t, provErr.Retryable)
}

func TestGenerateClassifiesStatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		wantKind      generation.ProviderErrorKind
		wantRetryable bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: generation.KindRateLimited, wantRetryable: true},
		{name: "server error", status: http.StatusInternalServerError, wantKind: generation.KindServerError, wantRetryable: true},
		{name: "overloaded", status: http.StatusServiceUnavailable, wantKind: generation.KindServerError, wantRetryable: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: generation.KindUnauthorized, wantRetryable: false},
		{name: "bad request", status: http.StatusBadRequest, wantKind: generation.KindBadRequest, wantRetryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"backend says no"}}`))
			}))
			defer srv.Close()

			adapter := newTestAdapter(t, srv.URL)

			_, err := adapter.Generate(context.Background(), testRequest())

			var provErr *generation.ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, tt.wantKind, provErr.Kind)
			assert.Equal(t, tt.wantRetryable, provErr.Retryable)
			assert.Contains(t, provErr.Message, "backend says no")
		})
	}
}

func TestGenerateClassifiesCancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Generate(ctx, testRequest())

	var provErr *generation.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, generation.KindTimeout, provErr.Kind)
	assert.True(t, provErr.Retryable)
}

func TestGenerateUsesRequestModelOverride(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-opus-4-1", req.Model)

		resp := messagesResponse{Content: []contentBlock{{Type: "text", Text: "{}"}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)

	req := testRequest()
	req.Model = "claude-opus-4-1"

	_, err := adapter.Generate(context.Background(), req)
	require.NoError(t, err)
}

func TestGenerateRejectsEmptySourceText(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, "http://127.0.0.1:0")

	_, err := adapter.Generate(context.Background(), generation.Request{PairCount: 5})

	var provErr *generation.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, generation.KindBadRequest, provErr.Kind)
	assert.False(t, provErr.Retryable)
}
