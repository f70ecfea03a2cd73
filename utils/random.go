package utils

import (
	"math"

	"golang.org/x/exp/rand"
)

// Random is a uniform random source. Implementations need not be safe for concurrent use.
type Random interface {
	// IntRange returns a uniform integer in [min, max].
	IntRange(min, max int) int
	// Float64Range returns a uniform float in [min, max).
	Float64Range(min, max float64) float64
}

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a seeded PCG-backed source.
func NewRandom(seed uint64) Random {
	return &pcgRandom{r: rand.New(rand.NewSource(seed))}
}

func (p *pcgRandom) IntRange(min, max int) int {
	if max < min {
		panic("max must not be less than min")
	}
	return min + p.r.Intn(max-min+1)
}

func (p *pcgRandom) Float64Range(min, max float64) float64 {
	if max < min {
		panic("max must not be less than min")
	}
	return min + p.r.Float64()*(max-min)
}

// Fork draws a seed from r and returns an independent source, so that workers never share
// generator state.
func Fork(r Random) Random {
	return NewRandom(uint64(r.IntRange(0, math.MaxInt32)))
}
