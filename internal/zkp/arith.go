package zkp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// ErrEmptyRange is returned by RandomInRange when high <= low.
var ErrEmptyRange = errors.New("zkp: empty random range")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// ModPow returns base^exponent mod modulus, always in [0, modulus).
//
// The modulus must be at least 1 and the exponent nonnegative; violating
// either is a programming error and panics, the same way math/big does on
// division by zero. A modulus of 1 yields 0. Negative bases are normalized
// before exponentiation.
func ModPow(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Sign() <= 0 {
		panic("zkp: modulus must be positive")
	}
	if exponent.Sign() < 0 {
		panic("zkp: negative exponent")
	}
	if modulus.Cmp(one) == 0 {
		return new(big.Int)
	}
	b := ModNormalize(base, modulus)
	return b.Exp(b, exponent, modulus)
}

// ModNormalize maps any integer, negative ones included, into [0, modulus).
func ModNormalize(value, modulus *big.Int) *big.Int {
	// big.Int.Mod is the Euclidean modulus, which is exactly
	// ((value % m) + m) % m for m > 0.
	return new(big.Int).Mod(value, modulus)
}

// RandomInRange returns a uniformly random integer in [low, high) read
// from r, which should be crypto/rand.Reader outside of tests.
func RandomInRange(r io.Reader, low, high *big.Int) (*big.Int, error) {
	width := new(big.Int).Sub(high, low)
	if width.Sign() <= 0 {
		return nil, ErrEmptyRange
	}
	n, err := rand.Int(r, width)
	if err != nil {
		return nil, err
	}
	return n.Add(n, low), nil
}
