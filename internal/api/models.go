package api

import (
	"time"

	"github.com/pairforge/pairforge/internal/domain"
)

// GenerateRequest is the payload for the generation endpoints.
type GenerateRequest struct {
	// Text is the source text to derive training pairs from.
	Text string `json:"text" validate:"required,min=1"`

	// Provider selects the backend. Empty means the configured default.
	Provider string `json:"provider" validate:"omitempty,min=1"`

	// Model optionally overrides the provider's default model.
	Model string `json:"model" validate:"omitempty,min=1"`

	// Temperature optionally overrides the configured sampling
	// temperature.
	Temperature *float32 `json:"temperature" validate:"omitempty,gte=0,lte=2"`
}

// PairResponse is one training pair in an API response.
type PairResponse struct {
	Instruction string `json:"instruction"`
	Response    string `json:"response"`
}

// GenerateResponse is the JSON body returned by POST /api/generate.
type GenerateResponse struct {
	ID        string         `json:"id"`
	Provider  string         `json:"provider"`
	Model     string         `json:"model"`
	Requested int            `json:"requested"`
	Returned  int            `json:"returned"`
	Skipped   int            `json:"skipped"`
	Pairs     []PairResponse `json:"pairs"`
	CreatedAt time.Time      `json:"created_at"`
}

// ProvidersResponse lists the provider names available for selection.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
	Default   string   `json:"default"`
}

// resultToResponse converts a domain result to its API shape.
func resultToResponse(result *domain.GenerationResult) GenerateResponse {
	pairs := make([]PairResponse, len(result.Pairs))
	for i, pair := range result.Pairs {
		pairs[i] = PairResponse{
			Instruction: pair.Instruction,
			Response:    pair.Response,
		}
	}

	return GenerateResponse{
		ID:        result.ID.String(),
		Provider:  result.Provider,
		Model:     result.Model,
		Requested: result.Requested,
		Returned:  result.Returned,
		Skipped:   result.Skipped,
		Pairs:     pairs,
		CreatedAt: result.CreatedAt,
	}
}
