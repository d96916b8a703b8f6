// Package gear builds the fixed witness set Q (C3): the first K primes,
// exposed both as the full ordered set and as the odd-filtered set
// callers use for witness search (spec.md §4.3 — n-q is only possibly
// prime for odd q, since n is even).
package gear

import "github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/sieve"

// Gear is the immutable ordered set of odd primes used as witnesses.
// Created once at startup and never mutated afterward.
type Gear struct {
	All  []int64 // first K primes, including 2 if K >= 1
	Odd  []int64 // All filtered to q != 2
	QMin int64   // smallest element of Odd
	QMax int64   // largest element of Odd
}

// Build returns the Gear for the first K primes. upper is a safe
// overestimate of the K-th prime; callers size it generously (a few
// thousand comfortably covers K<=500, per spec.md §4.3) and Build grows
// it if the initial guess came up short.
func Build(k int, upper int64) *Gear {
	if k <= 0 {
		return &Gear{}
	}
	if upper < 2 {
		upper = 2
	}
	var all []int64
	for {
		base := sieve.Base(sieve.IsqrtCeil(upper) + 1)
		all = sieve.Collect(2, upper, base, 0)
		if int64(len(all)) >= int64(k) {
			all = all[:k]
			break
		}
		upper *= 2
	}

	g := &Gear{All: all}
	for _, p := range all {
		if p != 2 {
			g.Odd = append(g.Odd, p)
		}
	}
	if len(g.Odd) > 0 {
		g.QMin = g.Odd[0]
		g.QMax = g.Odd[len(g.Odd)-1]
	}
	return g
}
