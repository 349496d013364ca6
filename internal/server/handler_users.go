package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())
	opts := listOptions(r)

	users, total, err := s.api.ListUsers(r.Context(), sess.AccessToken, opts)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondList(w, reqID, users, pagination(opts, total))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	user, err := s.api.GetUser(r.Context(), sess.AccessToken, id)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, user)
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if !model.Role(req.Role).Valid() {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid role",
				model.FieldError{Field: "role", Message: "role must be USER or ADMIN"}))
		return
	}

	user, err := s.api.UpdateUserRole(r.Context(), sess.AccessToken, id, req.Role)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	// Deleting the account behind the current session would strand it.
	if id == sess.UserID {
		respondError(w, reqID, http.StatusConflict, &model.APIError{
			Code:    model.ErrValidation,
			Message: "cannot delete the currently authenticated account",
		})
		return
	}

	if err := s.api.DeleteUser(r.Context(), sess.AccessToken, id); err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": id})
}
