package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/me/fleetgate/pkg/model"
)

// pathID parses a numeric URL parameter. Returns 0 and false when absent
// or malformed.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// listOptions builds clamped list options from query parameters.
func listOptions(r *http.Request) model.ListOptions {
	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		opts.Offset = v
	}
	opts.Search = q.Get("search")
	opts.Clamp()
	return opts
}

func badIDError(w http.ResponseWriter, reqID, name string) {
	respondError(w, reqID, http.StatusBadRequest,
		model.NewValidationError("invalid path parameter",
			model.FieldError{Field: name, Message: name + " must be a positive integer"}))
}

func pagination(opts model.ListOptions, total int) *model.Pagination {
	return &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+opts.Limit < total,
	}
}
