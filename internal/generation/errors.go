package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptySource is returned when a request carries no source text.
var ErrEmptySource = errors.New("source text cannot be empty")

// ProviderErrorKind classifies backend failures.
type ProviderErrorKind string

// Provider failure kinds. Timeout, RateLimited, ServerError, and Network
// are transient; the rest are permanent and never retried.
const (
	KindTimeout           ProviderErrorKind = "timeout"
	KindRateLimited       ProviderErrorKind = "rate_limited"
	KindServerError       ProviderErrorKind = "server_error"
	KindNetwork           ProviderErrorKind = "network"
	KindUnauthorized      ProviderErrorKind = "unauthorized"
	KindBadRequest        ProviderErrorKind = "bad_request"
	KindContentFiltered   ProviderErrorKind = "content_filtered"
	KindMalformedResponse ProviderErrorKind = "malformed_response"
)

// ProviderError reports a backend adapter failure. Retryable is the sole
// signal the retry wrapper uses to decide whether to re-attempt.
type ProviderError struct {
	Provider  string
	Kind      ProviderErrorKind
	Message   string
	Retryable bool
	Err       error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a ProviderError with the retryable flag derived
// from the kind.
func NewProviderError(provider string, kind ProviderErrorKind, message string, err error) *ProviderError {
	retryable := false
	switch kind {
	case KindTimeout, KindRateLimited, KindServerError, KindNetwork:
		retryable = true
	}

	return &ProviderError{
		Provider:  provider,
		Kind:      kind,
		Message:   message,
		Retryable: retryable,
		Err:       err,
	}
}

// ClassifyHTTPStatus maps a non-2xx backend status code to a ProviderError.
// Rate limits and 5xx responses are transient; auth and client errors are
// permanent.
func ClassifyHTTPStatus(provider string, status int, message string) *ProviderError {
	var kind ProviderErrorKind
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = KindTimeout
	case status >= http.StatusInternalServerError:
		kind = KindServerError
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindUnauthorized
	default:
		kind = KindBadRequest
	}

	if message == "" {
		message = fmt.Sprintf("unexpected status %d", status)
	}

	return NewProviderError(provider, kind, message, nil)
}

// ClassifyTransportError maps a failed HTTP round trip (no response at all)
// to a ProviderError. Timeouts and cancellations surface as KindTimeout so
// the retry wrapper treats a per-attempt timeout as transient; everything
// else is a network-level failure, also transient.
func ClassifyTransportError(provider string, err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewProviderError(provider, KindTimeout, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewProviderError(provider, KindTimeout, "request canceled", err)
	}
	return NewProviderError(provider, KindNetwork, "request failed", err)
}

// ConfigErrorKind classifies configuration failures.
type ConfigErrorKind string

const (
	KindUnknownProvider   ConfigErrorKind = "unknown_provider"
	KindMissingCredential ConfigErrorKind = "missing_credential"
)

// ConfigError reports a configuration problem detected before any network
// call is attempted. It is fatal and never retried.
type ConfigError struct {
	Kind     ConfigErrorKind
	Provider string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// NewUnknownProviderError reports a provider identifier with no registered
// adapter.
func NewUnknownProviderError(provider string) *ConfigError {
	return &ConfigError{
		Kind:     KindUnknownProvider,
		Provider: provider,
		Message:  "no adapter registered for provider",
	}
}

// NewMissingCredentialError reports an absent provider secret.
func NewMissingCredentialError(provider, credential string) *ConfigError {
	return &ConfigError{
		Kind:     KindMissingCredential,
		Provider: provider,
		Message:  fmt.Sprintf("%s is not configured", credential),
	}
}

// ValidationErrorKind classifies output validation failures.
type ValidationErrorKind string

const (
	// KindNoValidPairs means the backend returned text at the transport
	// level but no line survived validation.
	KindNoValidPairs ValidationErrorKind = "no_valid_pairs"
)

// ValidationError reports unusable model output. It is always fatal to the
// request: retrying will not change a model's tendency to misformat
// identically-prompted output.
type ValidationError struct {
	Kind    ValidationErrorKind
	Skipped int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (skipped %d lines)", e.Kind, e.Message, e.Skipped)
}

// NewNoValidPairsError reports that zero lines of model output parsed into
// valid pairs.
func NewNoValidPairsError(skipped int) *ValidationError {
	return &ValidationError{
		Kind:    KindNoValidPairs,
		Skipped: skipped,
		Message: "model output contained no valid instruction-response pairs",
	}
}
