// Package sieve provides the base Sieve of Eratosthenes (C1) and a
// segmented prime enumerator over an arbitrary [lo, hi] window (C2).
//
// The block-segmented enumerator is grounded on the odd-composite marking
// loop in other_examples/anisomorphic-Parallel-Prime-Sieve's
// ArrayPrimes/GenSegment split, adapted to operate over any window
// (not just [2, max]) and to stream results through a callback instead
// of a channel, since callers here drive a static partition rather than
// a fan-in pipeline.
package sieve

// DefaultBlock is the inner sieve block length B from spec.md §4.2.
const DefaultBlock = 32_000_000

// Base returns the ordered primes <= limit using composite marking on
// indices [2, limit]. limit < 2 yields an empty slice.
func Base(limit int64) []int64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	var primes []int64
	for i := int64(2); i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// Enumerate yields, via fn, every prime in [lo, hi] in ascending order.
// basePrimes must cover [2, ceil(sqrt(hi))]. Enumeration proceeds in
// fixed-length blocks of size block (DefaultBlock when block <= 0) so
// memory use is O(block) per block rather than O(hi-lo).
//
// fn may return false to stop enumeration early.
func Enumerate(lo, hi int64, basePrimes []int64, block int64, fn func(p int64) bool) {
	if hi < lo {
		return
	}
	if block <= 0 {
		block = DefaultBlock
	}
	for bLo := lo; bLo <= hi; bLo += block {
		bHi := bLo + block - 1
		if bHi > hi {
			bHi = hi
		}
		if !enumerateBlock(bLo, bHi, basePrimes, fn) {
			return
		}
	}
}

// enumerateBlock sieves [bLo, bHi] against basePrimes and reports the
// survivors through fn. It returns false if fn asked to stop.
func enumerateBlock(bLo, bHi int64, basePrimes []int64, fn func(p int64) bool) bool {
	n := bHi - bLo + 1
	mark := make([]bool, n)
	for _, p := range basePrimes {
		if p*p > bHi {
			break
		}
		start := p * p
		if start < bLo {
			start = ((bLo + p - 1) / p) * p
			if start < p*p {
				start = p * p
			}
		}
		for m := start; m <= bHi; m += p {
			mark[m-bLo] = true
		}
	}
	for i := int64(0); i < n; i++ {
		v := bLo + i
		if v < 2 {
			continue
		}
		if !mark[i] {
			if !fn(v) {
				return false
			}
		}
	}
	return true
}

// Collect materializes Enumerate's output into a slice, as required by
// the segment worker which needs an indexable, ordered segPrimes list
// for static partition across threads (spec.md §4.6).
func Collect(lo, hi int64, basePrimes []int64, block int64) []int64 {
	var out []int64
	Enumerate(lo, hi, basePrimes, block, func(p int64) bool {
		out = append(out, p)
		return true
	})
	return out
}

// IsqrtCeil returns ceil(sqrt(n)) for n >= 0, using integer Newton
// refinement to stay exact at the boundary (avoids the float64 rounding
// errors math.Sqrt would introduce near perfect squares at this scale).
func IsqrtCeil(n int64) int64 {
	if n < 2 {
		return n
	}
	x := isqrtFloor(n)
	if x*x < n {
		x++
	}
	return x
}

func isqrtFloor(n int64) int64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
