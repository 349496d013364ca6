// Package config holds gateway configuration.
//
// Precedence, lowest to highest: built-in defaults, YAML config file,
// environment variables, command-line flags (bound in cmd/server).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the FleetGate server.
type ServerConfig struct {
	Addr          string `yaml:"addr"`           // listen address (default ":8080")
	LogLevel      string `yaml:"log_level"`      // debug, info, warn, error
	LogFormat     string `yaml:"log_format"`     // text, json
	DBPath        string `yaml:"db_path"`        // SQLite database path (":memory:" for testing)
	APIBaseURL    string `yaml:"api_base_url"`   // rental platform API root
	SessionSecret string `yaml:"session_secret"` // HMAC key for the session cookie JWT
	SecureCookies bool   `yaml:"secure_cookies"` // set Secure on session cookies (HTTPS deployments)

	// Login rate limiting, per client IP.
	LoginRatePerMinute int `yaml:"login_rate_per_minute"`
	LoginBurst         int `yaml:"login_burst"`
}

// Default returns sensible defaults.
func Default() ServerConfig {
	return ServerConfig{
		Addr:               ":8080",
		LogLevel:           "info",
		LogFormat:          "text",
		LoginRatePerMinute: 10,
		LoginBurst:         5,
	}
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides. An empty path skips the file.
func Load(path string) (ServerConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides fields from FLEETGATE_* environment variables.
func (c *ServerConfig) applyEnv() {
	if v := os.Getenv("FLEETGATE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("FLEETGATE_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("FLEETGATE_SESSION_SECRET"); v != "" {
		c.SessionSecret = v
	}
	if v := os.Getenv("FLEETGATE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FLEETGATE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that required fields are present before the server starts.
func (c *ServerConfig) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required (or set FLEETGATE_API_URL)")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("session_secret is required (or set FLEETGATE_SESSION_SECRET)")
	}
	return nil
}
