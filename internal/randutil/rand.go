// Package randutil centralises RNG construction and the small sampling
// helpers used by the betting policy's randomized branches. Injecting a
// *rand.Rand built here keeps every decision path reproducible under a
// fixed seed.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by
// rand/v2 so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Pick returns a uniformly random element of choices. Repeating an element
// in choices weights it accordingly, which is how the bet-sizing mixes
// express their skew.
func Pick[T any](rng *rand.Rand, choices ...T) T {
	return choices[rng.IntN(len(choices))]
}

// Chance returns true with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
