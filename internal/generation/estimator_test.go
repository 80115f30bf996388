package generation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pairforge/pairforge/internal/generation"
)

// words builds a text of n whitespace-separated words.
func words(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimatorPairCount(t *testing.T) {
	t.Parallel()

	est := generation.NewEstimator()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty text gets the floor", text: "", want: generation.DefaultMinPairs},
		{name: "short snippet gets the floor", text: "a few short words", want: generation.DefaultMinPairs},
		{name: "one thousand words", text: words(1000), want: generation.DefaultMinPairs},
		{name: "two thousand words", text: words(2000), want: 8},
		{name: "five thousand words", text: words(5000), want: 20},
		{name: "very long input hits the cap", text: words(100000), want: generation.DefaultMaxPairs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, est.PairCount(tt.text))
		})
	}
}

func TestEstimatorBounds(t *testing.T) {
	t.Parallel()

	est := generation.NewEstimator()

	for _, n := range []int{0, 1, 10, 100, 1000, 10000, 100000, 1000000} {
		got := est.PairCount(words(n))
		assert.GreaterOrEqual(t, got, est.MinPairs, "word count %d", n)
		assert.LessOrEqual(t, got, est.MaxPairs, "word count %d", n)
	}
}

func TestEstimatorMonotonic(t *testing.T) {
	t.Parallel()

	est := generation.NewEstimator()

	prev := 0
	for n := 0; n <= 50000; n += 500 {
		got := est.PairCount(words(n))
		assert.GreaterOrEqual(t, got, prev, "pair count must not decrease at word count %d", n)
		prev = got
	}
}

func TestEstimatorDeterministic(t *testing.T) {
	t.Parallel()

	est := generation.NewEstimator()
	text := words(3456)

	first := est.PairCount(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, est.PairCount(text))
	}
}

func TestEstimatorZeroValueFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	var est generation.Estimator

	got := est.PairCount(words(2000))
	assert.GreaterOrEqual(t, got, 1)
}

func TestEstimatorCustomThresholds(t *testing.T) {
	t.Parallel()

	est := generation.Estimator{MinPairs: 1, MaxPairs: 10, PairsPerThousandWords: 2}

	assert.Equal(t, 1, est.PairCount(words(10)))
	assert.Equal(t, 4, est.PairCount(words(2000)))
	assert.Equal(t, 10, est.PairCount(words(50000)))
}
