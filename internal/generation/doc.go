// Package generation provides the provider abstraction and pipeline pieces
// for turning source text into instruction-response training pairs. It
// defines the Provider interface every LLM backend implements, the typed
// error taxonomy shared across the pipeline, the pair count estimator, the
// retry wrapper, and the output validator. Backend-specific wire formats
// live under internal/platform; nothing in this package branches on which
// backend produced a piece of text.
package generation
