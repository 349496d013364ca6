package model

import "time"

// Session represents an authenticated administrator session.
//
// Profile fields are a snapshot captured at login time; they are not kept
// live and only change through a full login or an explicit profile refresh.
// Tokens are never serialized into API responses.
type Session struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	AvatarURL        *string   `json:"avatar_url"`
	Role             Role      `json:"role"`
	ProfileCreatedAt time.Time `json:"profile_created_at"`
	AccessToken      string    `json:"-"` // bearer token for upstream calls
	RefreshToken     string    `json:"-"` // only ever sent to the refresh endpoint
	ExpiresAt        time.Time `json:"-"` // access-token expiry
	CreatedAt        time.Time `json:"created_at"`
	SessionExpiresAt time.Time `json:"session_expires_at"` // hard ceiling; re-login required after
}

// IsExpired reports whether the access token has expired.
// The boundary is inclusive: a token expiring exactly now is expired.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NeedsRenewal reports whether the access token is expired or within
// margin of expiring.
func (s *Session) NeedsRenewal(now time.Time, margin time.Duration) bool {
	return s.ExpiresAt.Sub(now) < margin
}

// IsCeilingReached reports whether the session ceiling has passed, after
// which the refresh token may no longer be used and a full login is required.
func (s *Session) IsCeilingReached(now time.Time) bool {
	return !s.SessionExpiresAt.After(now)
}

// IsAdmin reports whether the session holds the admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ProfileUpdate carries fields merged into a session by the trusted
// profile-refresh path. Nil pointers leave the current value untouched.
type ProfileUpdate struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	AvatarURL   *string `json:"avatar_url"`
}

// Apply merges the update into the session in place.
func (u ProfileUpdate) Apply(s *Session) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		s.PhoneNumber = *u.PhoneNumber
	}
	if u.AvatarURL != nil {
		s.AvatarURL = u.AvatarURL
	}
}
