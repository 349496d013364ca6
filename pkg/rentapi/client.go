package rentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/me/fleetgate/pkg/model"
)

// Client talks to the rental platform REST API.
//
// The client is stateless with respect to authentication: the bearer token
// is supplied per call, so one Client serves every session in the process.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the configured platform endpoint.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With("component", "rentapi"),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON sends a request with an optional JSON body and bearer token, and
// returns the raw response body for 2xx responses. Non-2xx responses become
// *HTTPError.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("upstream call", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
	}

	return respBody, nil
}

// get is a convenience wrapper for authorized GET requests.
func (c *Client) get(ctx context.Context, path, token string) ([]byte, error) {
	return c.doJSON(ctx, http.MethodGet, path, token, nil)
}

// listQuery renders ListOptions as an upstream query string.
func listQuery(opts model.ListOptions) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(opts.Limit))
	q.Set("offset", strconv.Itoa(opts.Offset))
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	return "?" + q.Encode()
}

// decodeList decodes an upstream list envelope, requiring the items field.
func decodeList[T any](op string, data []byte) ([]T, int, error) {
	var env listEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, 0, &DecodeError{Op: op, Err: err}
	}
	if env.Items == nil {
		return nil, 0, &DecodeError{Op: op, Field: "items"}
	}
	return env.Items, env.Total, nil
}
