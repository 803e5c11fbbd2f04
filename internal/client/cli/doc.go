// Package cli provides the interactive zkpauth command-line client.
//
// It wires configuration, the local session store, the gRPC API client and
// an interactive REPL. Passwords are read from the terminal without echo and
// wiped once the proof has been computed.
//
// Commands:
//   - register / login: enrol or authenticate a username
//   - session / logout: show or drop the cached session
//   - params: print the group parameters
//   - help / exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
