package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/fleetgate/pkg/model"
)

// CookieName is the name of the session cookie.
const CookieName = "fleetgate_session"

// ErrBadCookie is returned when the session cookie fails signature or
// claims verification.
var ErrBadCookie = errors.New("invalid session cookie")

// CookieCodec signs and verifies the browser-facing session cookie.
//
// The cookie carries a signed JWT whose subject is the session ID; the
// access and refresh tokens never leave the server.
type CookieCodec struct {
	secret []byte
	secure bool
}

// NewCookieCodec creates a codec signing with the given HMAC secret.
func NewCookieCodec(secret string, secure bool) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), secure: secure}
}

// Mint produces a signed cookie token for the session. The token expires at
// the session's hard ceiling.
func (c *CookieCodec) Mint(sess *model.Session) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.SessionExpiresAt),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify checks the cookie token's signature and expiry and returns the
// session ID it names.
func (c *CookieCodec) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadCookie, err)
	}
	if claims.Subject == "" {
		return "", ErrBadCookie
	}
	return claims.Subject, nil
}

// SessionIDFromRequest extracts and verifies the session ID from the
// request cookie. Returns "" with no error when the cookie is absent.
func (c *CookieCodec) SessionIDFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", nil // no cookie, no session
	}
	return c.Verify(cookie.Value)
}

// SetCookie sets the session cookie on the response.
func (c *CookieCodec) SetCookie(w http.ResponseWriter, sess *model.Session, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  sess.SessionExpiresAt,
	})
}

// ClearCookie removes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
