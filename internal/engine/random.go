package engine

import "math/rand/v2"

// RandomSource supplies confidence jitter. Float64 returns a value in [0, 1).
// *rand.Rand satisfies it; tests substitute a fixed source.
type RandomSource interface {
	Float64() float64
}

// globalRandom draws from the process-wide generator, which is safe for
// concurrent use.
type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
