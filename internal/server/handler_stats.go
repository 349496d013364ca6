package server

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	stats, err := s.api.GetDashboardStats(r.Context(), sess.AccessToken)
	if err != nil {
		respondUpstreamError(w, reqID, err)
		return
	}
	respondOK(w, reqID, stats)
}
