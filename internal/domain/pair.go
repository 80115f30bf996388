package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrainingPair is one instruction-response training record. The two-field
// JSON shape is the external contract: downstream fine-tuning tooling
// depends on exactly these field names.
type TrainingPair struct {
	Instruction string `json:"instruction"`
	Response    string `json:"response"`
}

// NewTrainingPair creates a TrainingPair from raw field values, trimming
// surrounding whitespace. Returns an error if either field is empty after
// trimming.
func NewTrainingPair(instruction, response string) (TrainingPair, error) {
	p := TrainingPair{
		Instruction: strings.TrimSpace(instruction),
		Response:    strings.TrimSpace(response),
	}

	if err := p.Validate(); err != nil {
		return TrainingPair{}, err
	}

	return p, nil
}

// Validate checks that both fields are non-empty.
func (p TrainingPair) Validate() error {
	if p.Instruction == "" {
		return ErrEmptyInstruction
	}

	if p.Response == "" {
		return ErrEmptyResponse
	}

	return nil
}

// GenerationResult is the ordered outcome of one generation request.
// Pair order matches the order pairs appeared in the model output.
// The result carries provenance (which provider produced it, how many
// pairs were requested vs. returned) but no persistent state: it is
// handed to the caller and discarded.
type GenerationResult struct {
	ID        uuid.UUID      `json:"id"`
	Provider  string         `json:"provider"`
	Model     string         `json:"model"`
	Requested int            `json:"requested"`
	Returned  int            `json:"returned"`
	Skipped   int            `json:"skipped"`
	Pairs     []TrainingPair `json:"pairs"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewGenerationResult assembles a GenerationResult with a fresh ID and
// timestamp. Returns an error if pairs is empty: an empty result must
// surface as a typed failure upstream, never as a silently-empty success.
func NewGenerationResult(provider, model string, requested, skipped int, pairs []TrainingPair) (*GenerationResult, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	return &GenerationResult{
		ID:        uuid.New(),
		Provider:  provider,
		Model:     model,
		Requested: requested,
		Returned:  len(pairs),
		Skipped:   skipped,
		Pairs:     pairs,
		CreatedAt: time.Now().UTC(),
	}, nil
}
