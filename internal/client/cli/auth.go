package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readCredentials prompts for a username and a password. The caller owns
// the password and must wipe it.
func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for credentials and enrols the username. Registering an
// existing username is silently accepted by the server and leaves the
// existing record in place.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		printFail(a.out, err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		printFail(a.out, err)
		return err
	}

	printOK(a.out, "Registered %s", userName)
	return nil
}

// Login prompts for credentials and runs the proof exchange. On success the
// new session replaces any previous one.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		printFail(a.out, err)
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		printFail(a.out, err)
		return err
	}

	a.session = s
	printOK(a.out, "Login successful")
	printField(a.out, "session", s.Token)
	return nil
}

// ShowSession prints the cached session.
func (a *App) ShowSession(ctx context.Context) error {
	s, err := a.authService.CurrentSession(ctx)
	if err != nil {
		printFail(a.out, err)
		return err
	}
	printField(a.out, "user", s.Username)
	printField(a.out, "auth id", s.AuthID)
	printField(a.out, "session", s.Token)
	printField(a.out, "since", s.LoggedInAt.Local().Format(time.DateTime))
	return nil
}

// Logout drops the cached session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		printFail(a.out, err)
		return err
	}
	a.session = nil
	printOK(a.out, "Logged out")
	return nil
}

// ShowParams prints the group parameters in use.
func (a *App) ShowParams(ctx context.Context) error {
	pp := a.authService.Params()
	printField(a.out, "p bits", strconv.Itoa(pp.P().BitLen()))
	printField(a.out, "q bits", strconv.Itoa(pp.Q().BitLen()))
	printField(a.out, "g", pp.G().String())
	printField(a.out, "h", pp.H().String())
	return nil
}
