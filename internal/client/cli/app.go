package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/zkpauth/internal/client/client"
	"github.com/dmitrijs2005/zkpauth/internal/client/config"
	"github.com/dmitrijs2005/zkpauth/internal/client/services"
	"github.com/dmitrijs2005/zkpauth/internal/filex"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	session     *services.Session
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp creates the directory for and opens the local session store, connects the API client and builds
// the auth service with the default group parameters.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if _, err := filex.EnsureParentDir(c.LocalDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, zkp.DefaultParameters())

	app := newApp(c, as, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, as services.AuthService, in io.Reader, out io.Writer) *App {
	return &App{config: c, authService: as, reader: bufio.NewReader(in), out: out}
}

// Run restores a cached session, if any, and blocks in the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "zkpauth CLI (type 'help' for commands)")
	fmt.Fprintln(a.out, colorFaint("server: "+a.config.ServerEndpointAddr))

	s, err := a.authService.CurrentSession(ctx)
	switch {
	case err == nil:
		a.session = s
		printOK(a.out, "Restored session for %s", s.Username)
	case !errors.Is(err, services.ErrNoSession):
		printFail(a.out, err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return "(" + a.session.Username + ")"
}
