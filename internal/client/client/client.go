package client

import (
	"context"
	"math/big"
)

// Challenge is the server's reply to a commitment. AuthID and C are set
// only when Registered is true.
type Challenge struct {
	Registered bool
	AuthID     string
	C          *big.Int
}

// Answer is the server's verdict on a response. SessionID is set only when
// Accepted is true.
type Answer struct {
	Accepted  bool
	SessionID string
}

type Client interface {
	Close() error
	Register(ctx context.Context, username string, y1, y2 *big.Int) error
	CreateChallenge(ctx context.Context, username string, r1, r2 *big.Int) (*Challenge, error)
	Verify(ctx context.Context, authID string, s *big.Int) (*Answer, error)
}
