package zkp

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"golang.org/x/crypto/blake2b"
)

// SecretFromPassword decodes the raw password bytes as a little-endian
// unsigned integer. No stretching is applied. A password that decodes to
// zero (empty or all NUL bytes) is rejected.
func SecretFromPassword(password []byte) (*big.Int, error) {
	be := slices.Clone(password)
	slices.Reverse(be)
	x := new(big.Int).SetBytes(be)
	common.WipeByteArray(be)

	if x.Sign() == 0 {
		return nil, fmt.Errorf("%w: empty password", common.ErrMalformedInput)
	}
	return x, nil
}

// IdentityID maps a username to its registry key: the lowercase hex of
// BLAKE2b-256(username).
func IdentityID(username string) string {
	sum := blake2b.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])
}
