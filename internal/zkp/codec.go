package zkp

import (
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/common"
)

// MaxEncodedLen bounds the length of a hex-encoded integer accepted by
// DecodeInt; 2048 hex digits comfortably fit a 4096-bit modulus.
const MaxEncodedLen = 2048

// EncodeInt renders v as lowercase hex without prefix or sign.
func EncodeInt(v *big.Int) string {
	return v.Text(16)
}

// DecodeInt parses a hex string produced by EncodeInt. Empty strings, signs,
// prefixes and non-hex characters yield common.ErrMalformedInput.
func DecodeInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty integer", common.ErrMalformedInput)
	}
	if len(s) > MaxEncodedLen {
		return nil, fmt.Errorf("%w: integer too long (%d hex digits)", common.ErrMalformedInput, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, fmt.Errorf("%w: invalid hex digit %q", common.ErrMalformedInput, s[i])
		}
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%w: invalid hex integer", common.ErrMalformedInput)
	}
	return v, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
