// Package cfpg - RNG utilities shared by all samplers.
//
// Determinism is a contract here: same seed ⇒ identical sample
// sequences across platforms. There are no time-based sources hidden
// anywhere; a zero seed selects a fixed default stream.
//
// math/rand.Rand is not goroutine-safe; do not share one *rand.Rand
// across concurrent sampling calls.
package cfpg

import "math/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass
// seed==0. The value is arbitrary but stable.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// weightedChoice picks an index proportionally to weights, which must
// be non-empty with non-negative entries. A degenerate all-zero weight
// vector falls back to the last index so walks cannot stall.
func weightedChoice(r *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return len(weights) - 1
	}
	x := r.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return i
		}
	}

	return len(weights) - 1
}
