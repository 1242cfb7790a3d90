// Package testutil provides testing utilities for pairq.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random number generator so that randomized
// queue tests replay deterministically.
//
// # Reproducible Randomness
//
//	rng := testutil.NewRNG(4711)
//	keys := rng.Ints(1000, 100) // 1000 ints in [0, 100)
//	rng.Reset()                 // replay the same sequence
//
// Re-running a failing test with the same seed reproduces the exact
// operation sequence that triggered the failure.
package testutil
