package service

import (
	"math"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

// Match strategies. StrategyFirst selects the first candidate within
// tolerance in store return order, which is the historical behavior of this
// system even when a closer candidate exists later in the list.
// StrategyBest selects the candidate with the minimum distance instead.
const (
	StrategyFirst = "first"
	StrategyBest  = "best"
)

// DefaultTolerance is calibrated to the encoder's native Euclidean metric.
const DefaultTolerance = 0.5

// Matcher decides whether a live probe and a candidate embedding belong to
// the same subject under a fixed distance tolerance.
type Matcher struct {
	tolerance float64
	strategy  string
}

// NewMatcher builds a Matcher. Non-positive tolerance falls back to
// DefaultTolerance; an unknown strategy falls back to StrategyFirst.
func NewMatcher(tolerance float64, strategy string) *Matcher {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if strategy != StrategyBest {
		strategy = StrategyFirst
	}
	return &Matcher{tolerance: tolerance, strategy: strategy}
}

// Tolerance returns the configured distance threshold.
func (m *Matcher) Tolerance() float64 { return m.tolerance }

// Match evaluates candidates against probe and returns the index of the
// selected match and its distance, or (-1, +Inf) when nothing is within
// tolerance. Candidates without a usable embedding never match.
func (m *Matcher) Match(probe []float64, candidates []domain.Identity) (int, float64) {
	bestIdx := -1
	bestDist := math.Inf(1)

	for i := range candidates {
		d := Distance(probe, candidates[i].Embedding)
		if d > m.tolerance {
			continue
		}
		if m.strategy == StrategyFirst {
			return i, d
		}
		if d < bestDist {
			bestIdx, bestDist = i, d
		}
	}
	return bestIdx, bestDist
}

// Distance computes the Euclidean distance between two embeddings.
// Mismatched or empty vectors yield +Inf so they can never satisfy a
// tolerance check.
func Distance(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
