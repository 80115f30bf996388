// Package mocks provides test doubles for the generation pipeline.
package mocks

import (
	"context"
	"sync"

	"github.com/pairforge/pairforge/internal/generation"
)

// Provider implements generation.Provider for testing.
type Provider struct {
	// ProviderName is returned by Name. Defaults to "mock".
	ProviderName string

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// GenerateFn lets a test case script Generate's behavior. When nil,
	// Generate returns Output and Err.
	GenerateFn func(ctx context.Context, req generation.Request) (string, error)

	// Output and Err are the default return values.
	Output string
	Err    error

	// Calls tracks every Generate invocation for verification.
	Calls struct {
		mu       sync.Mutex
		Count    int
		Requests []generation.Request
	}
}

// Name implements generation.Provider.
func (m *Provider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Model implements generation.Provider.
func (m *Provider) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Generate implements generation.Provider.
func (m *Provider) Generate(ctx context.Context, req generation.Request) (string, error) {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.Requests = append(m.Calls.Requests, req)
	m.Calls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}

	return m.Output, m.Err
}

// CallCount returns how many times Generate was invoked.
func (m *Provider) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Count
}

// LastRequest returns the most recent request, or the zero value if
// Generate was never called.
func (m *Provider) LastRequest() generation.Request {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	if len(m.Calls.Requests) == 0 {
		return generation.Request{}
	}
	return m.Calls.Requests[len(m.Calls.Requests)-1]
}

// NewProviderWithOutput creates a mock that always succeeds with output.
func NewProviderWithOutput(output string) *Provider {
	return &Provider{Output: output}
}

// NewProviderWithError creates a mock that always fails with err.
func NewProviderWithError(err error) *Provider {
	return &Provider{Err: err}
}

// NewFlakyProvider creates a mock that fails with err for the first
// failures calls, then succeeds with output.
func NewFlakyProvider(failures int, err error, output string) *Provider {
	m := &Provider{}
	m.GenerateFn = func(ctx context.Context, req generation.Request) (string, error) {
		if m.CallCount() <= failures {
			return "", err
		}
		return output, nil
	}
	return m
}
