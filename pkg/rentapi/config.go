// Package rentapi provides a Go client for the rental platform's REST API
// (authentication, user management, fleet, bookings, and dashboard data).
package rentapi

import "time"

// DefaultBaseURL is the production rental platform API endpoint.
const DefaultBaseURL = "https://api.rental.example.com"

// Token lifecycle constants. AccessTokenTTL and RefreshTokenTTL mirror the
// platform's own token policy; the client applies them when computing local
// expiry timestamps.
const (
	// AccessTokenTTL is the lifetime of an access token from time of mint.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL bounds how long a refresh token may be used before
	// the user must re-authenticate with credentials.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RenewMargin is the proactive buffer before access-token expiry within
	// which renewal is triggered preemptively.
	RenewMargin = 60 * time.Second
)

// DefaultTimeout bounds each HTTP request made by the client.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the rental platform API client.
type Config struct {
	// BaseURL is the root of the rental platform API.
	BaseURL string

	// Timeout is the HTTP client timeout for each request.
	Timeout time.Duration
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(u string) Config {
	c.BaseURL = u
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}
