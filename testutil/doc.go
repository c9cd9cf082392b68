// Package testutil provides testing utilities for the series indexes.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible random series and for
// computing exact answers by brute force.
//
// # Random Series Generation
//
//	rng := testutil.NewRNG(seed)
//	walks := rng.RandomWalks(10_000, 256)   // z-normalized
//	long := rng.RandomWalk(100_000)         // raw
//
// # Ground Truth
//
//	matches := testutil.ExactKNN(src, query, k)
//	ids := testutil.ExactRange(src, query, epsilon)
package testutil
