package generation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pairforge/pairforge/internal/domain"
)

// Conversational prefixes models sometimes add despite being told not to.
// Stripped before line parsing.
var responsePrefixes = []string{
	"Here are the training pairs in JSONL format:",
	"Here are the training pairs:",
	"Training pairs:",
	"Here are",
}

// pairLine is the wire shape of one model output line. Pointer fields
// distinguish a missing key from an empty value.
type pairLine struct {
	Instruction *string `json:"instruction"`
	Response    *string `json:"response"`
}

// ParsePairs parses raw model output as newline-delimited JSON objects and
// returns the pairs that survive validation, in original line order, along
// with the number of skipped lines. A line is skipped (never aborting the
// batch) when it is not a JSON object or when either field is missing,
// non-string, or empty after trimming. If zero lines survive, the error is
// a *ValidationError with kind NoValidPairs.
func ParsePairs(raw string) ([]domain.TrainingPair, int, error) {
	cleaned := CleanResponseText(raw)

	var (
		pairs   []domain.TrainingPair
		skipped int
	)

	scanner := bufio.NewScanner(strings.NewReader(cleaned))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var parsed pairLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			skipped++
			continue
		}

		if parsed.Instruction == nil || parsed.Response == nil {
			skipped++
			continue
		}

		pair, err := domain.NewTrainingPair(*parsed.Instruction, *parsed.Response)
		if err != nil {
			skipped++
			continue
		}

		pairs = append(pairs, pair)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to scan model output: %w", err)
	}

	if len(pairs) == 0 {
		return nil, skipped, NewNoValidPairsError(skipped)
	}

	return pairs, skipped, nil
}

// CleanResponseText strips conversational prefixes and Markdown code
// fences from model output so the remaining lines can be parsed as JSONL.
func CleanResponseText(raw string) string {
	text := strings.TrimSpace(raw)

	for _, prefix := range responsePrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
			break
		}
	}

	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	return strings.TrimSpace(text)
}

// WriteJSONL serializes pairs as one JSON object per line, UTF-8,
// newline-terminated, with exactly the instruction and response fields.
// This is the external contract other tooling depends on.
func WriteJSONL(w io.Writer, pairs []domain.TrainingPair) error {
	enc := json.NewEncoder(w)
	for i, pair := range pairs {
		if err := enc.Encode(pair); err != nil {
			return fmt.Errorf("failed to encode pair %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSONL renders pairs to a JSONL string.
func MarshalJSONL(pairs []domain.TrainingPair) (string, error) {
	var sb strings.Builder
	if err := WriteJSONL(&sb, pairs); err != nil {
		return "", err
	}
	return sb.String(), nil
}
