// Package searchrand provides the package-level random source used by
// determinization and search. Grounded on internal/bot/rand.go's
// botRng pattern: a nil source delegates to math/rand's global default,
// while SeedSearchRng installs a deterministic source for reproducible
// self-play and tests.
package searchrand

import "math/rand"

var searchRng *rand.Rand

// SeedSearchRng sets a deterministic random source for reproducible search.
func SeedSearchRng(seed int64) {
	searchRng = rand.New(rand.NewSource(seed))
}

// ResetSearchRng reverts to the default (non-deterministic) global source.
func ResetSearchRng() {
	searchRng = nil
}

// Source returns the package-level *rand.Rand set by SeedSearchRng, or,
// when none is set, a new *rand.Rand seeded from math/rand's global
// source on every call (nothing is installed). The result is suitable
// for passing directly to hitler.Transition's rng parameter.
func Source() *rand.Rand {
	if searchRng != nil {
		return searchRng
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

func Float64() float64 {
	if searchRng != nil {
		return searchRng.Float64()
	}
	return rand.Float64()
}

func Intn(n int) int {
	if searchRng != nil {
		return searchRng.Intn(n)
	}
	return rand.Intn(n)
}

func Perm(n int) []int {
	if searchRng != nil {
		return searchRng.Perm(n)
	}
	return rand.Perm(n)
}

func Shuffle(n int, swap func(i, j int)) {
	if searchRng != nil {
		searchRng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
