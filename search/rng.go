// Package search - RNG utilities shared by strategies and problems.
//
// Goals:
//   - Determinism: same seed ⇒ identical search trajectories.
//   - Explicit threading: the random source is always passed in by the caller;
//     nothing here keeps global state.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use DeriveRNG to create independent streams for parallel restarts.
package search

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// NewRNG returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// splitmix64 is the SplitMix64 output function.
func splitmix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return x ^ (x >> 31)
}

// DeriveRNG returns the random stream of one parallel trial. The parent seed
// is drawn once from base (defaultRNGSeed when base is nil), and stream
// selects the trial, so equal (base state, stream) pairs give equal streams.
func DeriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultRNGSeed
	if base != nil {
		parent = base.Int63()
	}
	seed := splitmix64(uint64(parent) + (stream+1)*0x9e3779b97f4a7c15)

	return rand.New(rand.NewSource(int64(seed)))
}
