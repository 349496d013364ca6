package rentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Auth endpoints. Neither takes a bearer token: login carries credentials,
// refresh carries the refresh token in the body.
const (
	loginPath   = "/api/auth/login"
	refreshPath = "/api/auth/refresh"
)

// Login exchanges an email/password pair for a token pair.
// A non-success status maps to ErrInvalidCredentials regardless of cause so
// the caller cannot distinguish unknown users from wrong passwords.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	data, err := c.doJSON(ctx, http.MethodPost, loginPath, "", body)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			c.logger.Debug("login rejected", "status", httpErr.StatusCode)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return decodeLoginResult(data)
}

// Refresh exchanges a refresh token for a new access token.
// Any non-success status maps to ErrRenewalFailed; the caller is expected to
// invalidate the session holding this refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	body := map[string]string{"refreshToken": refreshToken}

	data, err := c.doJSON(ctx, http.MethodPost, refreshPath, "", body)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			c.logger.Debug("refresh rejected", "status", httpErr.StatusCode)
			return nil, ErrRenewalFailed
		}
		return nil, err
	}

	return decodeRefreshResult(data)
}

// decodeLoginResult validates the login payload shape.
func decodeLoginResult(data []byte) (*LoginResult, error) {
	const op = "login"

	var res LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	switch {
	case res.Token == "":
		return nil, &DecodeError{Op: op, Field: "token"}
	case res.RefreshToken == "":
		return nil, &DecodeError{Op: op, Field: "refreshToken"}
	case res.UserID == 0:
		return nil, &DecodeError{Op: op, Field: "userId"}
	case res.Role == "":
		return nil, &DecodeError{Op: op, Field: "role"}
	}
	return &res, nil
}

// decodeRefreshResult validates the refresh payload shape.
func decodeRefreshResult(data []byte) (*RefreshResult, error) {
	const op = "refresh"

	var res RefreshResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	if res.Token == "" {
		return nil, &DecodeError{Op: op, Field: "token"}
	}
	return &res, nil
}
