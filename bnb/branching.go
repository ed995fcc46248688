package bnb

import (
	"math"
	"math/rand"
	"sync"
)

// BranchingStrategy picks the variable to branch on.
//
// Select receives the relaxed values x (aligned with the formulation's
// variables) and candidates: the indices of the integer variables failing the
// integrality test, in variable order, never empty. It must return one of the
// candidates; anything else aborts the search with ErrBadBranchVariable.
type BranchingStrategy interface {
	Select(x []float64, candidates []int) int
}

// ClosestToHalf picks the candidate whose fractional part is closest to 0.5,
// the most "undecided" variable. Ties go to the first candidate.
type ClosestToHalf struct{}

// Select implements BranchingStrategy.
func (ClosestToHalf) Select(x []float64, candidates []int) int {
	best, score := candidates[0], math.Inf(1)
	for _, j := range candidates {
		d := math.Abs(x[j] - math.Floor(x[j]) - 0.5)
		if d < score {
			best, score = j, d
		}
	}

	return best
}

func (ClosestToHalf) String() string { return "closest-to-half" }

// FirstFractional picks the first candidate in variable order.
type FirstFractional struct{}

// Select implements BranchingStrategy.
func (FirstFractional) Select(_ []float64, candidates []int) int { return candidates[0] }

func (FirstFractional) String() string { return "first-fractional" }

// RandomFractional picks a candidate uniformly at random from a seeded stream.
// Two strategies built with the same seed make the same choices on the same
// sequence of calls.
type RandomFractional struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomFractional returns a RandomFractional seeded with seed (0 ⇒ default seed).
func NewRandomFractional(seed int64) *RandomFractional {
	return &RandomFractional{rng: rngFromSeed(seed)}
}

// Select implements BranchingStrategy.
func (r *RandomFractional) Select(_ []float64, candidates []int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rng == nil {
		r.rng = rngFromSeed(0)
	}

	return candidates[r.rng.Intn(len(candidates))]
}

func (r *RandomFractional) String() string { return "random-fractional" }
