package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/zkpauth/internal/flagx"
)

// JsonConfig is the on-disk form of Config. Absent or zero fields leave the
// current value alone.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	StorageBackend   string `json:"storage_backend"`
	DatabaseDSN      string `json:"database_dsn"`
	PendingCapacity  int    `json:"pending_capacity"`
	SessionTokenSize int    `json:"session_token_size"`
	LogLevel         string `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.StorageBackend != "" {
		config.StorageBackend = c.StorageBackend
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.PendingCapacity != 0 {
		config.PendingCapacity = c.PendingCapacity
	}
	if c.SessionTokenSize != 0 {
		config.SessionTokenSize = c.SessionTokenSize
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	return nil
}
