package pagerank

import (
	"fmt"
	"math/rand"
	"sort"
)

// WeightedChoice returns the index of one of weights, each index being chosen
// with probability weights[i] / sum(weights)
func WeightedChoice(rng *rand.Rand, weights []float64) (int, error) {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return -1, fmt.Errorf("%w: negative weight %v at %d", ErrInvalidParameter, w, i)
		}
		total += w
		cumulative[i] = total
	}
	if total <= 0 {
		return -1, fmt.Errorf("%w: weights sum to %v", ErrInvalidParameter, total)
	}

	r := rng.Float64() * total
	// First index whose cumulative weight exceeds r; zero weights are never picked
	i := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > r })
	if i == len(cumulative) {
		// Rounding pushed r to the total: take the last index with a weight
		for i = len(weights) - 1; weights[i] == 0; i-- {
		}
	}
	return i, nil
}
