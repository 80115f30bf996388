package generation

import (
	"math"
	"strings"
)

// Estimator defaults, matching the original tuning: five pairs minimum so
// short snippets still produce a usable batch, four pairs per thousand
// words of input, capped so very long documents don't request an
// unreasonable batch in one call.
const (
	DefaultMinPairs              = 5
	DefaultMaxPairs              = 50
	DefaultPairsPerThousandWords = 4
)

// Estimator computes how many instruction-response pairs to request for a
// given source text. It is a pure function of input length: deterministic,
// side-effect-free, and monotonically non-decreasing in text length.
type Estimator struct {
	// MinPairs is the floor returned for any non-empty input.
	MinPairs int

	// MaxPairs caps the count for long inputs.
	MaxPairs int

	// PairsPerThousandWords sets the scaling rate between floor and cap.
	PairsPerThousandWords int
}

// NewEstimator returns an Estimator with the default thresholds.
func NewEstimator() Estimator {
	return Estimator{
		MinPairs:              DefaultMinPairs,
		MaxPairs:              DefaultMaxPairs,
		PairsPerThousandWords: DefaultPairsPerThousandWords,
	}
}

// PairCount returns the number of pairs to request for text. The count is
// always within [MinPairs, MaxPairs].
func (e Estimator) PairCount(text string) int {
	minPairs := e.MinPairs
	if minPairs < 1 {
		minPairs = 1
	}

	maxPairs := e.MaxPairs
	if maxPairs < minPairs {
		maxPairs = minPairs
	}

	rate := e.PairsPerThousandWords
	if rate < 1 {
		rate = DefaultPairsPerThousandWords
	}

	words := len(strings.Fields(text))
	scaled := int(math.Ceil(float64(words) / 1000.0 * float64(rate)))

	if scaled < minPairs {
		return minPairs
	}
	if scaled > maxPairs {
		return maxPairs
	}
	return scaled
}
