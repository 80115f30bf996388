package generation

import "context"

// Request carries one generation invocation's inputs. It is built once by
// the orchestrator and treated as immutable by adapters.
type Request struct {
	// SourceText is the text the training pairs should be derived from.
	SourceText string

	// PairCount is the number of instruction-response pairs to ask the
	// model for. Remote backends treat it as a target; the local backend
	// treats it as an upper bound and may return fewer pairs.
	PairCount int

	// Model overrides the adapter's configured default model when non-empty.
	Model string

	// Temperature is the sampling temperature passed through to the backend.
	Temperature float32

	// MaxTokens caps the backend's output length. Zero means the adapter's
	// default.
	MaxTokens int
}

// Provider is the capability contract every LLM backend adapter implements.
// An adapter owns the wire-format translation to its backend: request
// shaping, authentication, and unwrapping the backend's response envelope
// into plain text. It does not interpret the text beyond detecting that
// some is present; parsing pairs out of it is the validator's job.
//
// Failures are reported as *ProviderError so the retry wrapper can
// distinguish transient from permanent causes.
type Provider interface {
	// Name returns the stable identifier callers use to select this
	// provider (e.g. "anthropic", "ollama").
	Name() string

	// Model returns the model the adapter will use when a request does
	// not override it.
	Model() string

	// Generate asks the backend for req.PairCount instruction-response
	// pairs derived from req.SourceText and returns the backend's output
	// as plain text.
	Generate(ctx context.Context, req Request) (string, error)
}
