package services

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/identities"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/pending"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constReader yields the same byte forever. With the toy group, 0x01 makes
// NewChallenge return c = 3.
type constReader byte

func (r constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

func toyParams(t *testing.T) *zkp.Parameters {
	t.Helper()
	pp, err := zkp.NewParameters(big.NewInt(23), big.NewInt(11), big.NewInt(4), big.NewInt(9))
	require.NoError(t, err)
	return pp
}

type fixture struct {
	coord   *Coordinator
	ids     *identities.MemoryRepository
	pending *pending.MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ids := identities.NewMemoryRepository()
	pend, err := pending.NewMemoryRepository(16)
	require.NoError(t, err)

	c := NewCoordinator(toyParams(t), NewIdentityRegistry(ids), pend, 16, logging.NopLogger{})
	c.rand = constReader(0x01)
	return &fixture{coord: c, ids: ids, pending: pend}
}

func n(v int64) *big.Int { return big.NewInt(v) }

func TestCoordinator_ToyScenarioAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))

	ch, err := f.coord.BeginChallenge(ctx, "alice", n(8), n(4))
	require.NoError(t, err)
	require.Equal(t, ChallengeIssued, ch.Status)
	assert.Equal(t, zkp.IdentityID("alice"), ch.AuthID)
	assert.Equal(t, int64(3), ch.C.Int64())

	res, err := f.coord.Verify(ctx, ch.AuthID, n(0))
	require.NoError(t, err)
	assert.Equal(t, VerifyAccepted, res.Status)
	assert.Len(t, res.SessionToken, 32)

	_, err = f.coord.Verify(ctx, ch.AuthID, n(0))
	assert.ErrorIs(t, err, common.ErrNoPendingChallenge)
}

func TestCoordinator_WrongResponseRejectedAndConsumed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))
	ch, err := f.coord.BeginChallenge(ctx, "alice", n(8), n(4))
	require.NoError(t, err)

	// s computed with x' = 5.
	res, err := f.coord.Verify(ctx, ch.AuthID, n(3))
	require.NoError(t, err)
	assert.Equal(t, VerifyRejected, res.Status)
	assert.Empty(t, res.SessionToken)

	_, err = f.coord.Verify(ctx, ch.AuthID, n(0))
	assert.ErrorIs(t, err, common.ErrNoPendingChallenge)
}

func TestCoordinator_NewChallengeReplacesOld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))
	_, err := f.coord.BeginChallenge(ctx, "alice", n(2), n(3))
	require.NoError(t, err)
	ch, err := f.coord.BeginChallenge(ctx, "alice", n(8), n(4))
	require.NoError(t, err)
	assert.Equal(t, 1, f.pending.Len())

	res, err := f.coord.Verify(ctx, ch.AuthID, n(0))
	require.NoError(t, err)
	assert.Equal(t, VerifyAccepted, res.Status)
}

func TestCoordinator_RegisterIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := NewIdentityRegistry(f.ids)

	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))
	require.NoError(t, f.coord.Register(ctx, "alice", n(4), n(9)))

	y1, y2, found, err := reg.Get(ctx, zkp.IdentityID("alice"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2), y1.Int64())
	assert.Equal(t, int64(3), y2.Int64())
}

func TestCoordinator_UnregisteredFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ch, err := f.coord.BeginChallenge(ctx, "mallory", n(8), n(4))
	require.NoError(t, err)
	assert.Equal(t, ChallengeNotRegistered, ch.Status)
	assert.Empty(t, ch.AuthID)
	assert.Nil(t, ch.C)
	assert.Equal(t, 0, f.pending.Len())

	_, err = f.coord.Verify(ctx, zkp.IdentityID("mallory"), n(0))
	assert.ErrorIs(t, err, common.ErrUnknownIdentity)

	_, err = f.coord.Verify(ctx, "not-an-id", n(0))
	assert.ErrorIs(t, err, common.ErrUnknownIdentity)
}

func TestCoordinator_VerifyWithoutChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))

	_, err := f.coord.Verify(ctx, zkp.IdentityID("alice"), n(0))
	assert.ErrorIs(t, err, common.ErrNoPendingChallenge)
}

func TestCoordinator_MalformedInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))

	tests := []struct {
		name string
		call func() error
	}{
		{"register empty username", func() error { return f.coord.Register(ctx, "", n(2), n(3)) }},
		{"register y1 not in group", func() error { return f.coord.Register(ctx, "bob", n(5), n(3)) }},
		{"register y2 zero", func() error { return f.coord.Register(ctx, "bob", n(2), n(0)) }},
		{"register nil", func() error { return f.coord.Register(ctx, "bob", nil, n(3)) }},
		{"challenge r1 too large", func() error {
			_, err := f.coord.BeginChallenge(ctx, "alice", n(31), n(4))
			return err
		}},
		{"challenge empty username", func() error {
			_, err := f.coord.BeginChallenge(ctx, "", n(8), n(4))
			return err
		}},
		{"verify s equals q", func() error {
			_, err := f.coord.Verify(ctx, zkp.IdentityID("alice"), n(11))
			return err
		}},
		{"verify negative s", func() error {
			_, err := f.coord.Verify(ctx, zkp.IdentityID("alice"), n(-1))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), common.ErrMalformedInput)
		})
	}

	ok, err := f.ids.Exists(ctx, zkp.IdentityID("bob"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCoordinator_MalformedResponseLeavesChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))
	ch, err := f.coord.BeginChallenge(ctx, "alice", n(8), n(4))
	require.NoError(t, err)

	_, err = f.coord.Verify(ctx, ch.AuthID, n(11))
	require.ErrorIs(t, err, common.ErrMalformedInput)

	res, err := f.coord.Verify(ctx, ch.AuthID, n(0))
	require.NoError(t, err)
	assert.Equal(t, VerifyAccepted, res.Status)
}

func TestCoordinator_CorruptPendingState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.coord.Register(ctx, "alice", n(2), n(3)))

	id := zkp.IdentityID("alice")
	require.NoError(t, f.pending.Put(ctx, &models.PendingAuth{ID: id, R1: "8", R2: "4", C: "zz"}))

	_, err := f.coord.Verify(ctx, id, n(0))
	assert.ErrorIs(t, err, common.ErrStorageFailure)
	assert.NotErrorIs(t, err, common.ErrMalformedInput)
}

// ---- failing repositories ----

var errDB = errors.New("db down")

type failingIdentities struct {
	identities.Repository
}

func (failingIdentities) Exists(context.Context, string) (bool, error) { return false, errDB }
func (failingIdentities) PutIfAbsent(context.Context, *models.Identity) (bool, error) {
	return false, errDB
}
func (failingIdentities) Get(context.Context, string) (*models.Identity, error) { return nil, errDB }

type failingPending struct {
	pending.Repository
}

func (failingPending) Put(context.Context, *models.PendingAuth) error { return errDB }
func (failingPending) Take(context.Context, string) (*models.PendingAuth, error) {
	return nil, errDB
}

func TestCoordinator_IdentityStorageFailure(t *testing.T) {
	pend, err := pending.NewMemoryRepository(4)
	require.NoError(t, err)
	c := NewCoordinator(toyParams(t), NewIdentityRegistry(failingIdentities{}), pend, 16, logging.NopLogger{})
	ctx := context.Background()

	err = c.Register(ctx, "alice", n(2), n(3))
	assert.ErrorIs(t, err, common.ErrStorageFailure)
	assert.ErrorIs(t, err, errDB)

	_, err = c.BeginChallenge(ctx, "alice", n(8), n(4))
	assert.ErrorIs(t, err, common.ErrStorageFailure)

	_, err = c.Verify(ctx, zkp.IdentityID("alice"), n(0))
	assert.ErrorIs(t, err, common.ErrStorageFailure)
}

func TestCoordinator_PendingStorageFailure(t *testing.T) {
	ids := identities.NewMemoryRepository()
	c := NewCoordinator(toyParams(t), NewIdentityRegistry(ids), failingPending{}, 16, logging.NopLogger{})
	c.rand = constReader(0x01)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "alice", n(2), n(3)))

	_, err := c.BeginChallenge(ctx, "alice", n(8), n(4))
	assert.ErrorIs(t, err, common.ErrStorageFailure)

	_, err = c.Verify(ctx, zkp.IdentityID("alice"), n(0))
	assert.ErrorIs(t, err, common.ErrStorageFailure)
}

func TestCoordinator_DefaultParametersEndToEnd(t *testing.T) {
	ids := identities.NewMemoryRepository()
	pend, err := pending.NewMemoryRepository(4)
	require.NoError(t, err)
	pp := zkp.DefaultParameters()
	c := NewCoordinator(pp, NewIdentityRegistry(ids), pend, 32, logging.NopLogger{})
	ctx := context.Background()

	x, err := zkp.SecretFromPassword([]byte("hunter2"))
	require.NoError(t, err)
	y1, y2 := zkp.RegistrationValues(pp, x)
	require.NoError(t, c.Register(ctx, "carol", y1, y2))

	k, err := zkp.NewNonce(pp, c.rand)
	require.NoError(t, err)
	r1, r2 := zkp.Commitment(pp, k)

	ch, err := c.BeginChallenge(ctx, "carol", r1, r2)
	require.NoError(t, err)
	require.Equal(t, ChallengeIssued, ch.Status)

	res, err := c.Verify(ctx, ch.AuthID, zkp.Response(k, ch.C, x, pp.Q()))
	require.NoError(t, err)
	assert.Equal(t, VerifyAccepted, res.Status)
	assert.Len(t, res.SessionToken, 64)
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "issued", ChallengeIssued.String())
	assert.Equal(t, "not_registered", ChallengeNotRegistered.String())
	assert.Equal(t, "accepted", VerifyAccepted.String())
	assert.Equal(t, "rejected", VerifyRejected.String())
	assert.Equal(t, "VerifyStatus(0)", VerifyStatus(0).String())
}
