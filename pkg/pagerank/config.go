package pagerank

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config holds the tunables of both estimators
type Config struct {
	Damping       float64 `json:"damping"`        // Probability of following a link
	Samples       int     `json:"samples"`        // Pages visited by the random surfer
	Threshold     float64 `json:"threshold"`      // Max rank change accepted as converged
	MaxIterations int     `json:"max_iterations"` // Iteration cap of the iterative estimator
	Seed          int64   `json:"seed"`           // Sampling seed (0: seeded from the clock)
}

func DefaultConfig() Config {
	return Config{
		Damping:       0.85,
		Samples:       10000,
		Threshold:     0.001,
		MaxIterations: 1000,
	}
}

// Validate checks every field, regardless of which estimator will use it
func (c Config) Validate() error {
	if err := checkDamping(c.Damping); err != nil {
		return err
	}
	if err := checkSamples(c.Samples); err != nil {
		return err
	}
	return checkConvergence(c.Threshold, c.MaxIterations)
}

// Rand returns the random source of the sampling estimator
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func checkDamping(damping float64) error {
	// Written so that NaN fails too
	if !(damping > 0 && damping < 1) {
		return fmt.Errorf("%w: damping factor %v not in (0, 1)", ErrInvalidParameter, damping)
	}
	return nil
}

func checkSamples(samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: sample count %d must be positive", ErrInvalidParameter, samples)
	}
	return nil
}

func checkConvergence(threshold float64, maxIterations int) error {
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return fmt.Errorf("%w: threshold %v must be positive", ErrInvalidParameter, threshold)
	}
	if maxIterations <= 0 {
		return fmt.Errorf("%w: iteration cap %d must be positive", ErrInvalidParameter, maxIterations)
	}
	return nil
}

// Override returns c with every non-zero field of o replacing its own
func (c Config) Override(o Config) Config {
	if o.Damping != 0 {
		c.Damping = o.Damping
	}
	if o.Samples != 0 {
		c.Samples = o.Samples
	}
	if o.Threshold != 0 {
		c.Threshold = o.Threshold
	}
	if o.MaxIterations != 0 {
		c.MaxIterations = o.MaxIterations
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	return c
}
