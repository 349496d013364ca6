package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/me/fleetgate/internal/session"
	"github.com/me/fleetgate/pkg/model"
	"github.com/me/fleetgate/pkg/rentapi"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	sess, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *model.APIError
		var decErr *rentapi.DecodeError
		switch {
		case errors.As(err, &apiErr):
			respondError(w, reqID, http.StatusBadRequest, apiErr)
		case rentapi.IsAuthError(err):
			// Wrong password and missing privilege are indistinguishable
			// to the caller.
			respondError(w, reqID, http.StatusUnauthorized,
				model.NewUnauthorizedError("invalid credentials"))
		case errors.Is(err, rentapi.ErrProfileFetch), errors.As(err, &decErr):
			// Malformed platform responses are upstream failures, not
			// gateway internals.
			respondUpstreamError(w, reqID, err)
		default:
			respondError(w, reqID, http.StatusInternalServerError,
				&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		}
		return
	}

	token, err := s.cookies.Mint(sess)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	s.cookies.SetCookie(w, sess, token)

	respondCreated(w, reqID, sess)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	if err := s.sessions.Logout(r.Context(), sess.ID); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	session.ClearCookie(w)

	respondOK(w, reqID, map[string]any{"logged_out": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, SessionFromContext(r.Context()))
}

// handleUpdateProfile merges caller-provided profile fields into the session
// snapshot. The session holder is trusted; fields are applied as given.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var upd model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	updated, err := s.sessions.ApplyUpdate(r.Context(), sess, upd)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondOK(w, reqID, updated)
}
