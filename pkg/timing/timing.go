// Package timing produces the per-character delay schedule for typewriter
// animation: evenly paced with bounded jitter, converging on a fixed total
// duration. Randomness and the clock are injected capabilities so callers
// can run deterministically in tests.
package timing

import (
	"math/rand"
	"time"
)

const (
	// MinTotalDuration is the floor applied to the total typing time.
	MinTotalDuration = 100 * time.Millisecond

	// MinCharDelay is the floor applied to any single character delay.
	MinCharDelay = 10 * time.Millisecond
)

// Rand supplies uniform random numbers in [0, 1).
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded Rand backed by math/rand.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Schedule computes one delay per character such that the delays sum to
// total. Each delay except the last is base +/- noise*base, floored at
// MinCharDelay; the last absorbs accumulated jitter so the cumulative
// duration converges on total regardless of the random draw. noise is
// clamped to [0, 1] and total to MinTotalDuration. A zero count yields nil.
func Schedule(total time.Duration, noise float64, count int, rng Rand) []time.Duration {
	if count <= 0 {
		return nil
	}
	if total < MinTotalDuration {
		total = MinTotalDuration
	}
	if noise < 0 {
		noise = 0
	} else if noise > 1 {
		noise = 1
	}

	base := total / time.Duration(count)
	delays := make([]time.Duration, count)
	var spent time.Duration
	for i := 0; i < count-1; i++ {
		jitter := (rng.Float64()*2 - 1) * noise * float64(base)
		d := base + time.Duration(jitter)
		if d < MinCharDelay {
			d = MinCharDelay
		}
		delays[i] = d
		spent += d
	}

	last := total - spent
	if last < MinCharDelay {
		last = MinCharDelay
	}
	delays[count-1] = last
	return delays
}
