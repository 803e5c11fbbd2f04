package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server
//	-t int      request timeout in seconds
//	-f string   local SQLite file
//
// Unknown flags are dropped by flagx.FilterArgs before parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-f"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LocalDBPath, "f", cfg.LocalDBPath, "local session database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
