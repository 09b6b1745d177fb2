// Package testutil provides testing utilities for hwt.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random features and computing exact
// ground truth by linear scan.
//
// # Random Feature Generation
//
//	rng := testutil.NewRNG(seed)
//	space := rng.Features(100_000)
//	near := rng.Perturb(space[0], 3) // flip 3 random bits
//
// # Exact Search (Ground Truth)
//
//	d := testutil.MinDistance(query, space)
//	within := testutil.ExactRadius(query, space, 8)
package testutil
