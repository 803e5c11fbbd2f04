package config

import (
	"flag"

	"github.com/dmitrijs2005/zkpauth/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-b string   storage backend (postgres|memory)
//	-d string   PostgreSQL DSN
//	-n int      pending challenge capacity (memory backend)
//	-s int      session token size, bytes
//	-l string   log level
//
// args are first filtered with flagx.FilterArgs so flags meant for other
// parsers (such as -c) do not cause errors here.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-d", "-n", "-s", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (postgres|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.PendingCapacity, "n", config.PendingCapacity, "max outstanding challenges (memory backend)")
	fs.IntVar(&config.SessionTokenSize, "s", config.SessionTokenSize, "session token size in bytes")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug|info|warn|error)")

	return fs.Parse(args)
}
