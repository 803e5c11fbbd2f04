package zkp

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidParameters is wrapped by NewParameters for every rejected group.
var ErrInvalidParameters = errors.New("zkp: invalid group parameters")

// rfc5054Group2048 is the 2048-bit safe prime of RFC 5054 Appendix A.
// With p = 2q + 1, every quadratic residue other than 1 generates the
// order-q subgroup; 4 = 2^2 and 9 = 3^2 are used as g and h, so nobody
// knows log_g(h).
const rfc5054Group2048 = "AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050" +
	"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50" +
	"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8" +
	"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B" +
	"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748" +
	"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6" +
	"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6" +
	"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73"

// Parameters is the immutable public parameter set (p, q, g, h). Accessors
// return copies, so a *Parameters can be shared freely between goroutines.
type Parameters struct {
	p, q, g, h *big.Int
}

// NewParameters validates and wraps a group description:
// p and q probable primes, q | p-1, g and h distinct elements of order q.
func NewParameters(p, q, g, h *big.Int) (*Parameters, error) {
	if p == nil || q == nil || g == nil || h == nil {
		return nil, fmt.Errorf("%w: missing value", ErrInvalidParameters)
	}
	if p.Cmp(big.NewInt(3)) <= 0 || q.Cmp(big.NewInt(3)) <= 0 {
		return nil, fmt.Errorf("%w: p and q must be greater than 3", ErrInvalidParameters)
	}
	if !p.ProbablyPrime(20) || !q.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: p and q must be prime", ErrInvalidParameters)
	}
	pMinus1 := new(big.Int).Sub(p, one)
	if new(big.Int).Mod(pMinus1, q).Sign() != 0 {
		return nil, fmt.Errorf("%w: q does not divide p-1", ErrInvalidParameters)
	}

	pp := &Parameters{
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
		g: new(big.Int).Set(g),
		h: new(big.Int).Set(h),
	}
	if !pp.InGroup(g) || g.Cmp(one) == 0 {
		return nil, fmt.Errorf("%w: g is not a generator of the order-q subgroup", ErrInvalidParameters)
	}
	if !pp.InGroup(h) || h.Cmp(one) == 0 {
		return nil, fmt.Errorf("%w: h is not a generator of the order-q subgroup", ErrInvalidParameters)
	}
	if g.Cmp(h) == 0 {
		return nil, fmt.Errorf("%w: g and h must differ", ErrInvalidParameters)
	}
	return pp, nil
}

// DefaultParameters returns the production group: the RFC 5054 2048-bit
// safe prime with g = 4 and h = 9.
func DefaultParameters() *Parameters {
	p, _ := new(big.Int).SetString(rfc5054Group2048, 16)
	q := new(big.Int).Rsh(new(big.Int).Sub(p, one), 1)
	pp, err := NewParameters(p, q, big.NewInt(4), big.NewInt(9))
	if err != nil {
		panic(err)
	}
	return pp
}

func (pp *Parameters) P() *big.Int { return new(big.Int).Set(pp.p) }
func (pp *Parameters) Q() *big.Int { return new(big.Int).Set(pp.q) }
func (pp *Parameters) G() *big.Int { return new(big.Int).Set(pp.g) }
func (pp *Parameters) H() *big.Int { return new(big.Int).Set(pp.h) }

// InGroup reports whether v lies in the order-q subgroup: 1 <= v < p and
// v^q == 1 (mod p). Values failing this are never valid public keys or
// commitments.
func (pp *Parameters) InGroup(v *big.Int) bool {
	if v == nil || v.Sign() <= 0 || v.Cmp(pp.p) >= 0 {
		return false
	}
	return new(big.Int).Exp(v, pp.q, pp.p).Cmp(one) == 0
}

// ValidResponse reports whether s is a reduced response, 0 <= s < q.
func (pp *Parameters) ValidResponse(s *big.Int) bool {
	return s != nil && s.Sign() >= 0 && s.Cmp(pp.q) < 0
}

// String prints the group sizes, not the values.
func (pp *Parameters) String() string {
	return fmt.Sprintf("zkp group (p: %d bits, q: %d bits)", pp.p.BitLen(), pp.q.BitLen())
}
