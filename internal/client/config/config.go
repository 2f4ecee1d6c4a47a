// Package config handles configuration for the client binary, including
// defaults, JSON overlay, .env overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the fintrack client.
//
// Fields:
//   - ServerURL: base URL of the records service (scheme included).
//   - RequestTimeout: per-request timeout for HTTP calls.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3001"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), a .env file (if present), and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
