package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/me/fleetgate/pkg/model"
	"github.com/me/fleetgate/pkg/rentapi"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil, nil)
}

// respondCreated writes a 201 response with the standard envelope.
func respondCreated(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusCreated, reqID, data, nil, nil)
}

// respondList writes a success response with pagination.
func respondList(w http.ResponseWriter, reqID string, data any, pg *model.Pagination) {
	respondJSON(w, http.StatusOK, reqID, data, pg, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	respondJSON(w, status, reqID, nil, nil, apiErr)
}

// respondUpstreamError maps a rental platform API error onto the envelope.
// Upstream 404s pass through as not-found; everything else is reported as an
// upstream failure without leaking the raw response body.
func respondUpstreamError(w http.ResponseWriter, reqID string, err error) {
	var httpErr *rentapi.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusNotFound {
			respondError(w, reqID, http.StatusNotFound, &model.APIError{
				Code:    model.ErrNotFound,
				Message: "resource not found upstream",
			})
			return
		}
		respondError(w, reqID, http.StatusBadGateway, model.NewUpstreamError(httpErr.Status))
		return
	}

	var decErr *rentapi.DecodeError
	if errors.As(err, &decErr) {
		respondError(w, reqID, http.StatusBadGateway, model.NewUpstreamError(decErr.Error()))
		return
	}

	respondError(w, reqID, http.StatusBadGateway, model.NewUpstreamError(err.Error()))
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, pg *model.Pagination, apiErr *model.APIError) {
	resp := model.Response{
		RequestID:  reqID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pg,
		Error:      apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
