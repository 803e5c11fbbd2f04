// Package services contains application services for the zkpauth client.
// This file defines the authentication service: registration, the
// three-message login, and the locally cached session.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/client/client"
	"github.com/dmitrijs2005/zkpauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/dbx"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

// ErrNoSession is returned by CurrentSession when nobody is logged in.
var ErrNoSession = errors.New("no active session")

const (
	keyUsername   = "session.username"
	keyAuthID     = "session.auth_id"
	keyToken      = "session.token"
	keyLoggedInAt = "session.logged_in_at"
)

// Session is the result of a successful login, as cached locally.
type Session struct {
	Username   string
	AuthID     string
	Token      string
	LoggedInAt time.Time
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: derive (y1, y2) from the password and send them.
//   - Login: prove knowledge of the password and cache the session.
//   - CurrentSession / Logout: read or drop the cached session.
//   - Params: the group parameters in use.
//   - Close: release underlying client resources.
//
// Passwords never leave the process; only group elements and the response
// are sent.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*Session, error)
	CurrentSession(ctx context.Context) (*Session, error)
	Logout(ctx context.Context) error
	Params() *zkp.Parameters
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	params *zkp.Parameters
	rand   io.Reader
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client,
// local DB and group parameters.
func NewAuthService(c client.Client, db *sql.DB, pp *zkp.Parameters) AuthService {
	return &authService{client: c, db: db, params: pp, rand: rand.Reader, now: time.Now}
}

func (a *authService) Params() *zkp.Parameters {
	return a.params
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	x, err := zkp.SecretFromPassword(password)
	if err != nil {
		return err
	}
	defer x.SetInt64(0)

	y1, y2 := zkp.RegistrationValues(a.params, x)
	if err := a.client.Register(ctx, username, y1, y2); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login runs commitment, challenge and response. An unregistered username
// yields common.ErrUnknownIdentity and a wrong password
// common.ErrProofMismatch.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	x, err := zkp.SecretFromPassword(password)
	if err != nil {
		return nil, err
	}
	defer x.SetInt64(0)

	k, err := zkp.NewNonce(a.params, a.rand)
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	defer k.SetInt64(0)

	r1, r2 := zkp.Commitment(a.params, k)

	ch, err := a.client.CreateChallenge(ctx, username, r1, r2)
	if err != nil {
		return nil, fmt.Errorf("challenge error: %w", err)
	}
	if !ch.Registered {
		return nil, common.ErrUnknownIdentity
	}

	s := zkp.Response(k, ch.C, x, a.params.Q())

	ans, err := a.client.Verify(ctx, ch.AuthID, s)
	if err != nil {
		return nil, fmt.Errorf("verify error: %w", err)
	}
	if !ans.Accepted {
		return nil, common.ErrProofMismatch
	}

	session := &Session{
		Username:   username,
		AuthID:     ch.AuthID,
		Token:      ans.SessionID,
		LoggedInAt: a.now().UTC().Truncate(time.Second),
	}
	if err := a.saveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return session, nil
}

// saveSession replaces the cached session in a single transaction.
func (a *authService) saveSession(ctx context.Context, s *Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		values := [][2]string{
			{keyUsername, s.Username},
			{keyAuthID, s.AuthID},
			{keyToken, s.Token},
			{keyLoggedInAt, s.LoggedInAt.Format(time.RFC3339)},
		}
		for _, kv := range values {
			if err := repo.Set(ctx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) CurrentSession(ctx context.Context) (*Session, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	s := &Session{Token: token}
	if s.Username, err = repo.Get(ctx, keyUsername); err != nil {
		return nil, fmt.Errorf("session username: %w", err)
	}
	if s.AuthID, err = repo.Get(ctx, keyAuthID); err != nil {
		return nil, fmt.Errorf("session auth id: %w", err)
	}
	ts, err := repo.Get(ctx, keyLoggedInAt)
	if err != nil {
		return nil, fmt.Errorf("session time: %w", err)
	}
	if s.LoggedInAt, err = time.Parse(time.RFC3339, ts); err != nil {
		return nil, fmt.Errorf("session time: %w", err)
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return metadata.NewSQLiteRepository(a.db).Delete(ctx, keyUsername, keyAuthID, keyToken, keyLoggedInAt)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
