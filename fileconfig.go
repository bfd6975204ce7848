package ollamaclient

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig is the on-disk TOML shape of a client configuration.
type fileConfig struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ConfigFromFile reads a client configuration from a TOML file.
// Fields absent from the file keep their defaults, so a minimal file like
//
//	model = "llama3.1:8b"
//
// is valid.
func ConfigFromFile(path string) (*Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("ollamaclient: load config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	return cfg, nil
}
