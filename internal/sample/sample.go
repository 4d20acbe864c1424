// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sample provides size-safe random selection over slices.
//
// Picking "one random element of N options" degenerates when N <= 1; One
// guards that case by returning the input unchanged instead of sampling.
package sample

import "math/rand/v2"

// One returns xs unchanged when it has zero or one elements; otherwise it
// returns a one-element slice holding a uniformly random element of xs.
// A nil rng falls back to the shared global source.
func One[T any](rng *rand.Rand, xs []T) []T {
	if len(xs) <= 1 {
		return xs
	}
	i := intN(rng, len(xs))
	return xs[i : i+1]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
