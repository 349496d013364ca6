package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())
	opts := listOptions(r)

	notifications, total, err := s.api.ListNotifications(r.Context(), sess.AccessToken, opts)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondList(w, reqID, notifications, pagination(opts, total))
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	if err := s.api.MarkNotificationRead(r.Context(), sess.AccessToken, id); err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, map[string]any{"read": id})
}

func (s *Server) handleBroadcastNotification(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if req.Title == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("missing required field",
				model.FieldError{Field: "title", Message: "title is required"}))
		return
	}

	if err := s.api.BroadcastNotification(r.Context(), sess.AccessToken, req.Title, req.Body); err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	s.logger.Info("notification broadcast", "title", req.Title, "by", sess.UserID)
	respondCreated(w, reqID, map[string]any{"broadcast": true})
}
