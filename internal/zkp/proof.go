package zkp

import (
	"io"
	"math/big"
)

// RegistrationValues computes the public verification values for secret x:
// y1 = g^x and y2 = h^x (mod p).
func RegistrationValues(pp *Parameters, x *big.Int) (y1, y2 *big.Int) {
	return ModPow(pp.g, x, pp.p), ModPow(pp.h, x, pp.p)
}

// Commitment computes r1 = g^k and r2 = h^k (mod p) for a one-time nonce k.
func Commitment(pp *Parameters, k *big.Int) (r1, r2 *big.Int) {
	return ModPow(pp.g, k, pp.p), ModPow(pp.h, k, pp.p)
}

// NewNonce samples the prover's nonce k from [2, q-2). The nonce must stay
// on the client and be used for a single login attempt.
func NewNonce(pp *Parameters, r io.Reader) (*big.Int, error) {
	return RandomInRange(r, two, new(big.Int).Sub(pp.q, two))
}

// NewChallenge samples the verifier's challenge c from [2, q-1).
func NewChallenge(pp *Parameters, r io.Reader) (*big.Int, error) {
	return RandomInRange(r, two, new(big.Int).Sub(pp.q, one))
}

// Response computes s = k - c*x (mod q). The subtraction is done at full
// precision and only then reduced, so a negative intermediate is handled.
func Response(k, c, x, q *big.Int) *big.Int {
	cx := new(big.Int).Mul(c, x)
	return ModNormalize(cx.Sub(k, cx), q)
}

// Verify checks both Chaum–Pedersen equations:
//
//	g^s * y1^c == r1 (mod p)
//	h^s * y2^c == r2 (mod p)
//
// Any nil argument makes the proof fail.
func Verify(pp *Parameters, y1, y2, r1, r2, c, s *big.Int) bool {
	for _, v := range []*big.Int{y1, y2, r1, r2, c, s} {
		if v == nil {
			return false
		}
	}

	part1 := new(big.Int).Mul(ModPow(pp.g, s, pp.p), ModPow(y1, c, pp.p))
	part1 = ModNormalize(part1, pp.p)

	part2 := new(big.Int).Mul(ModPow(pp.h, s, pp.p), ModPow(y2, c, pp.p))
	part2 = ModNormalize(part2, pp.p)

	return part1.Cmp(r1) == 0 && part2.Cmp(r2) == 0
}
