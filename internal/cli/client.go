package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

// sessionCookieName mirrors the cookie the gateway sets on login.
const sessionCookieName = "fleetgate_session"

// Client is an HTTP client for the FleetGate API. Authenticated calls
// attach the stored session cookie.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a FleetGate API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// apiResponse is the parsed envelope.
type apiResponse struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

// do performs an HTTP request and returns the parsed envelope plus the raw
// response, so login can read the session cookie.
func (c *Client) do(method, path string, body any) (*apiResponse, *http.Response, error) {
	url := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session := LoadSession(); session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}

	c.Logger.Debug("HTTP request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "body", string(respBody))

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, nil, fmt.Errorf("parse response (status %d): %w\nbody: %s", resp.StatusCode, err, string(respBody))
	}

	if apiResp.Status == "error" && apiResp.Error != nil {
		return &apiResp, resp, apiResp.Error
	}

	return &apiResp, resp, nil
}

// Get performs a GET request.
func (c *Client) Get(path string) (*apiResponse, error) {
	resp, _, err := c.do("GET", path, nil)
	return resp, err
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(path string, body any) (*apiResponse, error) {
	resp, _, err := c.do("POST", path, body)
	return resp, err
}

// Put performs a PUT request.
func (c *Client) Put(path string, body any) (*apiResponse, error) {
	resp, _, err := c.do("PUT", path, body)
	return resp, err
}

// Login exchanges credentials for a session and returns the envelope plus
// the session cookie value.
func (c *Client) Login(email, password string) (*apiResponse, string, error) {
	apiResp, resp, err := c.do("POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return apiResp, "", err
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			return apiResp, cookie.Value, nil
		}
	}
	return apiResp, "", fmt.Errorf("server set no session cookie")
}
