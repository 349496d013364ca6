package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/me/fleetgate/internal/session"
	"github.com/me/fleetgate/pkg/model"
	"github.com/me/fleetgate/pkg/rentapi"
)

const ctxKeySession ctxKey = "session"

// SessionFromContext returns the authenticated session stored by
// requireSession, or nil outside the protected route group.
func SessionFromContext(ctx context.Context) *model.Session {
	if sess, ok := ctx.Value(ctxKeySession).(*model.Session); ok {
		return sess
	}
	return nil
}

// requireSession authenticates the request from the session cookie and
// guarantees the session it stores in context has a usable access token.
//
// The renewal happens here, before the handler runs, so handlers never see
// a stale token. Any failure clears the cookie and returns 401; the client
// is expected to go back through login.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := RequestIDFromContext(r.Context())

		id, err := s.cookies.SessionIDFromRequest(r)
		if err != nil {
			session.ClearCookie(w)
			respondError(w, reqID, http.StatusUnauthorized,
				model.NewUnauthorizedError("invalid session cookie"))
			return
		}
		if id == "" {
			respondError(w, reqID, http.StatusUnauthorized,
				model.NewUnauthorizedError("authentication required"))
			return
		}

		sess, err := s.sessions.Get(r.Context(), id)
		if err != nil {
			respondError(w, reqID, http.StatusInternalServerError,
				&model.APIError{Code: model.ErrInternal, Message: err.Error()})
			return
		}
		if sess == nil {
			session.ClearCookie(w)
			respondError(w, reqID, http.StatusUnauthorized,
				model.NewUnauthorizedError("session not found"))
			return
		}

		sess, err = s.sessions.EnsureFresh(r.Context(), sess)
		if err != nil {
			if errors.Is(err, rentapi.ErrRenewalFailed) {
				session.ClearCookie(w)
				respondError(w, reqID, http.StatusUnauthorized,
					model.NewUnauthorizedError("session expired, log in again"))
				return
			}
			respondError(w, reqID, http.StatusInternalServerError,
				&model.APIError{Code: model.ErrInternal, Message: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
