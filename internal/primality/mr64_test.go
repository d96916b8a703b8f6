package primality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrimeSmallValues(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 13, 97, 7919}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d should be prime", p)
	}
	composites := []uint64{0, 1, 4, 6, 8, 9, 15, 100, 7920}
	for _, c := range composites {
		assert.False(t, IsPrime(c), "%d should not be prime", c)
	}
}

// TestIsPrimeStrongPseudoprimeCorners covers the classic strong
// pseudoprime bases that a weaker/truncated witness set lets through;
// the fixed {2,...,37} witness set rejects all of them, including the
// last two, which pass every base in {2,3,5,7,11,13,17}.
func TestIsPrimeStrongPseudoprimeCorners(t *testing.T) {
	composites := []uint64{
		2047,               // strong pseudoprime to base 2
		1373653,            // strong pseudoprime to bases 2,3
		25326001,           // strong pseudoprime to bases 2,3,5
		3215031751,         // strong pseudoprime to bases 2,3,5,7
		3474749660383,      // strong pseudoprime to bases 2..11
		341550071728321,    // strong pseudoprime to bases 2..17 (smallest spsp to exactly {2,3,5,7,11,13,17})
		3825123056546413051, // strong pseudoprime to bases 2..23
	}
	for _, c := range composites {
		assert.False(t, IsPrime(c), "%d is composite but a weak test would accept it", c)
	}
}

func TestIsPrimeNear64BitBoundary(t *testing.T) {
	// 2^64-59 is prime.
	const n = 18446744073709551557
	assert.True(t, IsPrime(n))
	// 2^64-1 is composite (divisible by 3, among others).
	assert.False(t, IsPrime(18446744073709551615))
}

func TestModPowAgainstBruteForce(t *testing.T) {
	for _, m := range []uint64{7, 97, 1009} {
		for base := uint64(1); base < m; base++ {
			want := uint64(1)
			for e := uint64(0); e < 5; e++ {
				got := modPow(base, e, m)
				assert.Equal(t, want, got)
				want = (want * base) % m
			}
		}
	}
}

func TestMulModAgainstBruteForce(t *testing.T) {
	m := uint64(1_000_000_007)
	cases := []struct{ a, b uint64 }{
		{0, 0}, {1, 1}, {m - 1, m - 1}, {123456789, 987654321},
	}
	for _, c := range cases {
		want := (c.a % m) * (c.b % m) % m
		assert.Equal(t, want, mulMod(c.a, c.b, m))
	}
}
