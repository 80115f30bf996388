package api

import (
	"errors"
	"net/http"

	"github.com/pairforge/pairforge/internal/generation"
)

// mapError translates a pipeline error into an HTTP status and a
// client-safe message. The caller chose the provider, so an unknown
// provider is their mistake; a missing credential is ours; backend
// failures and unusable model output are upstream problems.
func mapError(err error) (int, string) {
	var cfgErr *generation.ConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Kind {
		case generation.KindUnknownProvider:
			return http.StatusBadRequest, "unknown provider: " + cfgErr.Provider
		case generation.KindMissingCredential:
			return http.StatusServiceUnavailable, "provider " + cfgErr.Provider + " is not configured"
		}
	}

	var provErr *generation.ProviderError
	if errors.As(err, &provErr) {
		if provErr.Kind == generation.KindTimeout {
			return http.StatusGatewayTimeout, "provider request timed out"
		}
		return http.StatusBadGateway, "provider request failed"
	}

	var valErr *generation.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadGateway, "model returned no usable training pairs"
	}

	if errors.Is(err, generation.ErrEmptySource) {
		return http.StatusBadRequest, "source text is required"
	}

	return http.StatusInternalServerError, "internal server error"
}
