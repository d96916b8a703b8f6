// Package worker implements the sieve-mode segment worker (C6) and the
// MR-mode window worker (C7): the two ways an even is checked against
// the fixed gear, sharing the MR64 primitive but not a code path, per
// spec.md §4.9's note that the regimes may be two independent
// algorithms rather than a common interface.
package worker

import (
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/primality"
)

// FindWitness searches g's odd gear for a q with n-q prime, returning
// the first witness pair found. This is the HasWitnessMR primitive
// spec.md §4.6/§4.7 both describe: the MR64 small-prime wheel is
// already folded into primality.IsPrime, so the prefilter step from
// spec.md's prose is simply IsPrime's own early trial-division.
func FindWitness(n int64, g *gear.Gear) (p, q int64, ok bool) {
	for _, qq := range g.Odd {
		pp := n - qq
		if pp <= 1 {
			continue
		}
		if primality.IsPrime(uint64(pp)) {
			return pp, qq, true
		}
	}
	return 0, 0, false
}

// HasWitness reports whether FindWitness would succeed for n.
func HasWitness(n int64, g *gear.Gear) bool {
	_, _, ok := FindWitness(n, g)
	return ok
}
