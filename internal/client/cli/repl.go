package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ShowSession(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowParams(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:  help, register, login, params, exit
//	Logged in:      help, session, logout, login, params, exit
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "zkp %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: session, logout, login, params, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, params, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "session":
			_ = a.ShowSession(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "params":
			_ = a.ShowParams(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
