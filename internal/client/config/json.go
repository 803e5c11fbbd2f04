package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/zkpauth/internal/flagx"
	"github.com/dmitrijs2005/zkpauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// is a timex.Duration so it can be written as "10s" or as nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	LocalDBPath        string         `json:"local_db_path"`
}

// parseJson overlays Config with values loaded from the file named by
// -c/-config. Absent fields keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	return nil
}
