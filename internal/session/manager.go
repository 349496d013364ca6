// Package session implements the administrator session lifecycle:
// credential exchange against the rental platform, access-token renewal,
// and the session store update path.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/me/fleetgate/internal/metrics"
	"github.com/me/fleetgate/internal/store"
	"github.com/me/fleetgate/internal/validate"
	"github.com/me/fleetgate/pkg/model"
	"github.com/me/fleetgate/pkg/rentapi"
)

// API abstracts the rental platform calls the session lifecycle needs.
// *rentapi.Client satisfies it.
type API interface {
	Login(ctx context.Context, email, password string) (*rentapi.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*rentapi.RefreshResult, error)
	GetUser(ctx context.Context, token string, userID int64) (*rentapi.UserProfile, error)
}

// Manager owns session creation, renewal, mutation, and teardown.
// Sessions are values loaded from the store per request; the manager holds
// no ambient session state.
type Manager struct {
	store   store.Store
	api     API
	logger  *slog.Logger
	metrics *metrics.Collector

	// renewals deduplicates concurrent refresh calls per session ID so at
	// most one renewal is in flight per logical session.
	renewals singleflight.Group
}

// NewManager creates a session manager.
func NewManager(st store.Store, api API, logger *slog.Logger, collector *metrics.Collector) *Manager {
	return &Manager{
		store:   st,
		api:     api,
		logger:  logger.With("component", "session"),
		metrics: collector,
	}
}

// Login performs the credential exchange: validate input, trade credentials
// for a token pair, gate on the ADMIN role, fetch the profile snapshot, and
// persist the new session.
//
// A returned session always has role ADMIN and a fresh access-token expiry.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if apiErr := validate.Credentials(email, password); apiErr != nil {
		m.recordLoginFailure("validation")
		return nil, apiErr
	}

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.recordLoginFailure("credentials")
		m.logger.Warn("login rejected", "email", email)
		return nil, err
	}

	// Authorization gate, not a shape check: valid credentials without the
	// ADMIN role never produce a session and never trigger a profile fetch.
	if model.Role(res.Role) != model.RoleAdmin {
		m.recordLoginFailure("privilege")
		m.logger.Warn("non-admin login refused", "email", email, "user_id", res.UserID, "role", res.Role)
		return nil, rentapi.ErrInsufficientPrivilege
	}

	profile, err := m.api.GetUser(ctx, res.Token, res.UserID)
	if err != nil {
		m.recordLoginFailure("profile")
		m.logger.Error("profile fetch after login failed", "user_id", res.UserID, "error", err)
		return nil, fmt.Errorf("%w: %w", rentapi.ErrProfileFetch, err)
	}

	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now().UTC()
	sess := &model.Session{
		ID:               id,
		UserID:           profile.ID,
		Name:             profile.FullName,
		Email:            profile.Email,
		PhoneNumber:      profile.PhoneNumber,
		AvatarURL:        profile.AvatarURL,
		Role:             model.Role(res.Role),
		ProfileCreatedAt: profile.CreatedAt,
		AccessToken:      res.Token,
		RefreshToken:     res.RefreshToken,
		ExpiresAt:        now.Add(rentapi.AccessTokenTTL),
		CreatedAt:        now,
		SessionExpiresAt: now.Add(rentapi.RefreshTokenTTL),
	}

	if err := m.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if m.metrics != nil {
		m.metrics.RecordLoginSuccess()
	}
	m.logger.Info("administrator logged in", "user_id", sess.UserID, "session", sess.ID)
	return sess, nil
}

// EnsureFresh returns a session whose access token is valid for at least the
// renewal margin, renewing it via the refresh endpoint when needed.
//
// The fresh case makes zero network calls. The stale case performs one
// renewal shared across concurrent callers; if renewal fails the session is
// deleted and (nil, ErrRenewalFailed) is returned so the caller forces a
// re-login. No retries.
func (m *Manager) EnsureFresh(ctx context.Context, sess *model.Session) (*model.Session, error) {
	now := time.Now().UTC()

	if !sess.NeedsRenewal(now, rentapi.RenewMargin) {
		return sess, nil
	}

	if sess.IsCeilingReached(now) {
		m.logger.Info("session ceiling reached", "session", sess.ID, "user_id", sess.UserID)
		if err := m.store.DeleteSession(context.WithoutCancel(ctx), sess.ID); err != nil {
			m.logger.Error("delete ceiling-expired session", "session", sess.ID, "error", err)
		}
		return nil, rentapi.ErrRenewalFailed
	}

	// The flight runs detached from the initiating request: a caller
	// disconnecting mid-renewal must not fail the renewal for the other
	// callers sharing it.
	renewCtx := context.WithoutCancel(ctx)
	v, err, shared := m.renewals.Do(sess.ID, func() (any, error) {
		return m.renew(renewCtx, sess)
	})
	if shared && m.metrics != nil {
		m.metrics.RecordRenewalShared()
	}
	if err != nil {
		return nil, err
	}
	return v.(*model.Session), nil
}

// renew exchanges the refresh token for a new access token and persists the
// result. Only AccessToken and ExpiresAt change; the refresh token and
// profile snapshot stay as they were.
func (m *Manager) renew(ctx context.Context, sess *model.Session) (*model.Session, error) {
	res, err := m.api.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		if m.metrics != nil {
			m.metrics.RecordRenewalFailure()
		}
		m.logger.Warn("renewal failed, invalidating session", "session", sess.ID, "error", err)
		if derr := m.store.DeleteSession(ctx, sess.ID); derr != nil {
			m.logger.Error("delete session after failed renewal", "session", sess.ID, "error", derr)
		}
		if errors.Is(err, rentapi.ErrRenewalFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", rentapi.ErrRenewalFailed, err)
	}

	updated := *sess
	updated.AccessToken = res.Token
	updated.ExpiresAt = time.Now().UTC().Add(rentapi.AccessTokenTTL)

	if err := m.store.UpdateSession(ctx, &updated); err != nil {
		return nil, fmt.Errorf("store renewed session: %w", err)
	}

	if m.metrics != nil {
		m.metrics.RecordRenewalSuccess()
	}
	m.logger.Debug("access token renewed", "session", sess.ID, "expires_at", updated.ExpiresAt)
	return &updated, nil
}

// Get loads a session by ID. Returns nil, nil when no session exists.
func (m *Manager) Get(ctx context.Context, id string) (*model.Session, error) {
	return m.store.GetSession(ctx, id)
}

// ApplyUpdate merges profile fields into the session and persists it.
// The caller is trusted; no validation is performed on the merged fields.
func (m *Manager) ApplyUpdate(ctx context.Context, sess *model.Session, upd model.ProfileUpdate) (*model.Session, error) {
	upd.Apply(sess)
	if err := m.store.UpdateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store updated session: %w", err)
	}
	return sess, nil
}

// Logout deletes the session. Invalidation is local only; the upstream
// refresh token is not revoked here.
func (m *Manager) Logout(ctx context.Context, id string) error {
	return m.store.DeleteSession(ctx, id)
}

// CleanupExpired removes sessions past their hard ceiling.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpiredSessions(ctx)
}

func (m *Manager) recordLoginFailure(reason string) {
	if m.metrics != nil {
		m.metrics.RecordLoginFailure(reason)
	}
}

// generateSessionID generates a cryptographically secure random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}
