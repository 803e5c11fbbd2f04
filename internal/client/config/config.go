package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds runtime settings for the zkpauth CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: deadline applied to each RPC.
//   - LocalDBPath: SQLite file that caches the current session.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	LocalDBPath        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.LocalDBPath = "zkpauth.db"
}

func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return errors.New("config: server address is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.LocalDBPath == "" {
		return errors.New("config: local db path is required")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args exclude the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
