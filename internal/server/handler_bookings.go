package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

// bookingStatuses are the statuses an administrator may set.
var bookingStatuses = map[string]bool{
	"PENDING":   true,
	"CONFIRMED": true,
	"ACTIVE":    true,
	"COMPLETED": true,
	"CANCELLED": true,
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())
	opts := listOptions(r)

	bookings, total, err := s.api.ListBookings(r.Context(), sess.AccessToken, opts)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondList(w, reqID, bookings, pagination(opts, total))
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	booking, err := s.api.GetBooking(r.Context(), sess.AccessToken, id)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, booking)
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badIDError(w, reqID, "id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if !bookingStatuses[req.Status] {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid status",
				model.FieldError{Field: "status", Message: "unknown booking status " + req.Status}))
		return
	}

	booking, err := s.api.UpdateBookingStatus(r.Context(), sess.AccessToken, id, req.Status)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	s.logger.Info("booking status updated", "booking_id", id, "status", req.Status, "by", sess.UserID)
	respondOK(w, reqID, booking)
}
