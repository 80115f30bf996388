package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairforge/pairforge/internal/domain"
)

func TestNewTrainingPair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		instruction string
		response    string
		wantErr     error
	}{
		{
			name:        "valid pair",
			instruction: "What is exponential backoff?",
			response:    "A retry strategy that doubles the wait between attempts.",
		},
		{
			name:        "trims whitespace",
			instruction: "  What is JSONL?  ",
			response:    "\tOne JSON object per line.\n",
		},
		{
			name:        "empty instruction",
			instruction: "",
			response:    "answer",
			wantErr:     domain.ErrEmptyInstruction,
		},
		{
			name:        "whitespace-only instruction",
			instruction: "   \t",
			response:    "answer",
			wantErr:     domain.ErrEmptyInstruction,
		},
		{
			name:        "empty response",
			instruction: "question",
			response:    "  ",
			wantErr:     domain.ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pair, err := domain.NewTrainingPair(tt.instruction, tt.response)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, pair.Instruction)
			assert.NotEmpty(t, pair.Response)
			assert.NoError(t, pair.Validate())
		})
	}
}

func TestNewTrainingPairTrimsFields(t *testing.T) {
	t.Parallel()

	pair, err := domain.NewTrainingPair("  Q  ", "  A  ")
	require.NoError(t, err)
	assert.Equal(t, "Q", pair.Instruction)
	assert.Equal(t, "A", pair.Response)
}

func TestNewGenerationResult(t *testing.T) {
	t.Parallel()

	pairs := []domain.TrainingPair{
		{Instruction: "Q1", Response: "A1"},
		{Instruction: "Q2", Response: "A2"},
	}

	result, err := domain.NewGenerationResult("anthropic", "claude-sonnet-4-5", 5, 1, pairs)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, "anthropic", result.Provider)
	assert.Equal(t, "claude-sonnet-4-5", result.Model)
	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 2, result.Returned)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, pairs, result.Pairs)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestNewGenerationResultRejectsEmptyPairs(t *testing.T) {
	t.Parallel()

	_, err := domain.NewGenerationResult("openai", "gpt-4o-mini", 5, 3, nil)
	assert.ErrorIs(t, err, domain.ErrNoPairs)
}
