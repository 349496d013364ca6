package rentapi

import (
	"errors"
	"fmt"
)

// Error types for the session lifecycle. All are terminal for the calling
// operation; nothing in this package retries.
var (
	// ErrInvalidCredentials indicates the login endpoint rejected the
	// email/password pair. Unknown user and wrong password are not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInsufficientPrivilege indicates the credentials were accepted but
	// the account does not hold the ADMIN role.
	ErrInsufficientPrivilege = errors.New("account lacks administrative privilege")

	// ErrProfileFetch indicates login succeeded but the follow-up profile
	// lookup failed. No session may be created from a partial login.
	ErrProfileFetch = errors.New("profile fetch failed")

	// ErrRenewalFailed indicates the refresh endpoint rejected or errored.
	// The session holding the refresh token must be invalidated.
	ErrRenewalFailed = errors.New("token renewal failed")
)

// HTTPError represents a non-success HTTP response from the platform.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// DecodeError indicates a response payload failed shape validation.
// It carries the first offending field so callers can log a precise cause;
// no partially decoded value is ever returned alongside it.
type DecodeError struct {
	Op    string // operation whose response failed to decode
	Field string // first missing or malformed field
	Err   error  // underlying unmarshal error, if any
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: response missing or invalid field %q", e.Op, e.Field)
	}
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether the error is a credential or privilege failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInsufficientPrivilege)
}
