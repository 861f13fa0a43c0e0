// Package secrand draws uniform random values from the operating system's
// secure random source. Every random choice in zalias goes through here;
// there is no seeded generator and no state between calls.
package secrand

import (
	"crypto/rand"
	"math/big"
)

// Intn returns a cryptographically random int in [0, n).
// It panics if n <= 0.
func Intn(n int) int {
	if n <= 0 {
		panic("secrand: invalid argument to Intn")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// Range returns a cryptographically random int in [lo, hi].
func Range(lo, hi int) int {
	return lo + Intn(hi-lo+1)
}

// Pick returns a random element of s. It panics on an empty slice.
func Pick[T any](s []T) T {
	return s[Intn(len(s))]
}

// Byte returns a random byte from alphabet.
func Byte(alphabet string) byte {
	return alphabet[Intn(len(alphabet))]
}

// String returns n bytes drawn independently from alphabet.
func String(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = Byte(alphabet)
	}
	return string(buf)
}
