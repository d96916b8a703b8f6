// Package primality implements the deterministic 64-bit Miller-Rabin
// test (C4): a fixed small-prime wheel followed by a witness set known
// sufficient for every n < 2^64.
//
// spec.md §9 notes the source relies on an arbitrary-precision helper
// for a*b mod m; a systems-language port substitutes a 128-bit widening
// multiply. This implementation uses math/bits.Mul64/Div64, the
// hardware-backed widening multiply/divide pair the Go standard library
// exposes for exactly this purpose — see DESIGN.md for why no
// third-party big-integer or modexp library from the example pack
// replaces this (math/big.ProbablyPrime, used elsewhere in the pack by
// other_examples/memes-pi__big_prime.go, is a different, allocation-heavy,
// variable-round probabilistic test, not this fixed deterministic one).
package primality

import "math/bits"

// smallPrimes is the fixed small-prime wheel S from spec.md §4.4 step 1.
var smallPrimes = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// witnesses is the base set A from spec.md §4.4 step 3, sufficient to
// decide primality deterministically for every n < 2^64. {2,3,5,7,11,13,17}
// alone is not enough — 341550071728321 is a strong pseudoprime to
// exactly that set — so the full Jaeschke/Pomerance base set is used.
var witnesses = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime reports whether n is prime, deterministically, for every
// n in [0, 2^64).
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, s := range smallPrimes {
		if n == s {
			return true
		}
		if n%s == 0 {
			return false
		}
	}

	d := n - 1
	s := 0
	for d&1 == 0 {
		d >>= 1
		s++
	}

	for _, a := range witnesses {
		if a%n == 0 {
			continue
		}
		if !passesWitness(n, d, s, a) {
			return false
		}
	}
	return true
}

// passesWitness runs one Miller-Rabin round with base a against
// n-1 = d*2^s.
func passesWitness(n, d uint64, s int, a uint64) bool {
	x := modPow(a, d, n)
	if x == 1 || x == n-1 {
		return true
	}
	for i := 0; i < s-1; i++ {
		x = mulMod(x, x, n)
		if x == n-1 {
			return true
		}
	}
	return false
}

// modPow computes base^exp mod m via right-to-left binary exponentiation.
func modPow(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		base = mulMod(base, base, m)
		exp >>= 1
	}
	return result
}

// mulMod computes a*b mod m without overflow by widening the product to
// 128 bits (via the hardware-backed Mul64) before reducing it (via Div64).
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}
