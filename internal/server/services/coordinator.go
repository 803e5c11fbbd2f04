// Package services contains the server-side protocol logic: the identity
// registry and the session coordinator that drives register, challenge and
// verify over the repositories.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/pending"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

// ChallengeStatus is the outcome of BeginChallenge.
type ChallengeStatus int

const (
	ChallengeIssued ChallengeStatus = iota + 1
	ChallengeNotRegistered
)

func (s ChallengeStatus) String() string {
	switch s {
	case ChallengeIssued:
		return "issued"
	case ChallengeNotRegistered:
		return "not_registered"
	default:
		return fmt.Sprintf("ChallengeStatus(%d)", int(s))
	}
}

// ChallengeResult carries the auth id and challenge when Status is
// ChallengeIssued; both are zero otherwise.
type ChallengeResult struct {
	Status ChallengeStatus
	AuthID string
	C      *big.Int
}

// VerifyStatus is the outcome of Verify.
type VerifyStatus int

const (
	VerifyAccepted VerifyStatus = iota + 1
	VerifyRejected
)

func (s VerifyStatus) String() string {
	switch s {
	case VerifyAccepted:
		return "accepted"
	case VerifyRejected:
		return "rejected"
	default:
		return fmt.Sprintf("VerifyStatus(%d)", int(s))
	}
}

// VerifyResult carries a fresh session token when Status is VerifyAccepted.
type VerifyResult struct {
	Status       VerifyStatus
	SessionToken string
}

// Coordinator runs the server side of the protocol for every identity:
// registration, challenge issuance and single-use verification.
type Coordinator struct {
	params    *zkp.Parameters
	registry  *IdentityRegistry
	pending   pending.Repository
	tokenSize int
	rand      io.Reader
	logger    logging.Logger
}

// NewCoordinator wires a coordinator over the given repositories. tokenSize
// is the number of random bytes in a session token.
func NewCoordinator(pp *zkp.Parameters, registry *IdentityRegistry, p pending.Repository, tokenSize int, l logging.Logger) *Coordinator {
	return &Coordinator{
		params:    pp,
		registry:  registry,
		pending:   p,
		tokenSize: tokenSize,
		rand:      rand.Reader,
		logger:    l.With("module", "coordinator"),
	}
}

// Register records (y1, y2) for username. An existing registration is kept
// as is; the caller cannot tell the two cases apart.
func (c *Coordinator) Register(ctx context.Context, username string, y1, y2 *big.Int) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", common.ErrMalformedInput)
	}
	if !c.params.InGroup(y1) || !c.params.InGroup(y2) {
		return fmt.Errorf("%w: registration values outside the group", common.ErrMalformedInput)
	}

	id := zkp.IdentityID(username)
	created, err := c.registry.Put(ctx, id, y1, y2)
	if err != nil {
		return err
	}

	if created {
		c.logger.Info(ctx, "identity registered", "id", id)
	} else {
		c.logger.Info(ctx, "identity already registered, keeping existing values", "id", id)
	}
	return nil
}

// BeginChallenge stores the commitment (r1, r2) and issues a fresh challenge.
// Any earlier unanswered challenge for the same identity is replaced.
func (c *Coordinator) BeginChallenge(ctx context.Context, username string, r1, r2 *big.Int) (*ChallengeResult, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", common.ErrMalformedInput)
	}
	if !c.params.InGroup(r1) || !c.params.InGroup(r2) {
		return nil, fmt.Errorf("%w: commitment outside the group", common.ErrMalformedInput)
	}

	id := zkp.IdentityID(username)
	ok, err := c.registry.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.logger.Info(ctx, "challenge requested for unknown identity", "id", id)
		return &ChallengeResult{Status: ChallengeNotRegistered}, nil
	}

	ch, err := zkp.NewChallenge(c.params, c.rand)
	if err != nil {
		return nil, fmt.Errorf("sample challenge: %w", err)
	}

	err = c.pending.Put(ctx, &models.PendingAuth{
		ID: id,
		R1: zkp.EncodeInt(r1),
		R2: zkp.EncodeInt(r2),
		C:  zkp.EncodeInt(ch),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
	}

	c.logger.Debug(ctx, "challenge issued", "id", id)
	return &ChallengeResult{Status: ChallengeIssued, AuthID: id, C: ch}, nil
}

// Verify checks the response s against the pending challenge for authID.
// The pending state is consumed before the proof is checked, so each
// challenge can be answered once.
func (c *Coordinator) Verify(ctx context.Context, authID string, s *big.Int) (*VerifyResult, error) {
	if !c.params.ValidResponse(s) {
		return nil, fmt.Errorf("%w: response out of range", common.ErrMalformedInput)
	}

	y1, y2, found, err := c.registry.Get(ctx, authID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownIdentity, authID)
	}

	p, err := c.pending.Take(ctx, authID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrNoPendingChallenge, authID)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
	}

	r1, r2, ch, err := decodePending(p)
	if err != nil {
		return nil, err
	}

	if !zkp.Verify(c.params, y1, y2, r1, r2, ch, s) {
		c.logger.Info(ctx, "proof rejected", "id", authID)
		return &VerifyResult{Status: VerifyRejected}, nil
	}

	token, err := common.MakeRandHexString(c.tokenSize)
	if err != nil {
		return nil, fmt.Errorf("session token: %w", err)
	}

	c.logger.Info(ctx, "proof accepted", "id", authID)
	return &VerifyResult{Status: VerifyAccepted, SessionToken: token}, nil
}

func decodePending(p *models.PendingAuth) (r1, r2, ch *big.Int, err error) {
	if r1, err = zkp.DecodeInt(p.R1); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: pending %s r1: %v", common.ErrStorageFailure, p.ID, err)
	}
	if r2, err = zkp.DecodeInt(p.R2); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: pending %s r2: %v", common.ErrStorageFailure, p.ID, err)
	}
	if ch, err = zkp.DecodeInt(p.C); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: pending %s c: %v", common.ErrStorageFailure, p.ID, err)
	}
	return r1, r2, ch, nil
}
