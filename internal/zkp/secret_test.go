package zkp

import (
	"testing"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretFromPassword_LittleEndian(t *testing.T) {
	x, err := SecretFromPassword([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, int64(0x0201), x.Int64())
}

func TestSecretFromPassword_DoesNotModifyInput(t *testing.T) {
	pw := []byte("secret")
	_, err := SecretFromPassword(pw)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
}

func TestSecretFromPassword_RejectsZero(t *testing.T) {
	for _, pw := range [][]byte{nil, {}, {0, 0, 0}} {
		_, err := SecretFromPassword(pw)
		assert.ErrorIs(t, err, common.ErrMalformedInput)
	}
}

func TestIdentityID(t *testing.T) {
	id := IdentityID("alice")
	assert.Len(t, id, 64)
	assert.Equal(t, id, IdentityID("alice"))
	assert.NotEqual(t, id, IdentityID("Alice"))
	assert.Regexp(t, "^[0-9a-f]{64}$", id)
}
