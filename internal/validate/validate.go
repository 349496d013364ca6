// Package validate provides login-input validation for the gateway.
// Validation happens before any upstream call so malformed input fails fast.
package validate

import (
	"net/mail"
	"unicode/utf8"

	"github.com/me/fleetgate/pkg/model"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Credentials validates a login email/password pair.
// Returns nil when both are acceptable, otherwise a validation APIError
// listing every failing field.
func Credentials(email, password string) *model.APIError {
	var details []model.FieldError

	if err := Email(email); err != nil {
		details = append(details, model.FieldError{Field: "email", Message: err.Error()})
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		details = append(details, model.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(details) > 0 {
		return model.NewValidationError("Invalid login request", details...)
	}
	return nil
}

// Email checks that the address parses as a bare RFC 5322 address.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errInvalidEmail
	}
	// Reject display-name forms like "Ada <ada@example.com>".
	if addr.Address != email {
		return errInvalidEmail
	}
	return nil
}

type emailError struct{}

func (emailError) Error() string { return "must be a valid email address" }

var errInvalidEmail = emailError{}
