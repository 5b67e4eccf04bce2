// Package randutil provides the seeded permutation sources used to shuffle
// cards. Nothing in the module touches the global random generator; every
// shuffle goes through a Source handed in by the caller.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source produces uniform random permutations. *rand.Rand satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so that every call site gets
// the same reproducible sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed resolves a user-supplied seed: zero means "pick one from the clock".
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Derive returns the seed for the n-th independent stream under a master seed.
func Derive(master int64, n int) int64 {
	return int64(mix(uint64(master) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
