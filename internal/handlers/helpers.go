package handlers

import (
	"net/http"
	"strconv"

	"board-backend/internal/middleware"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pagination reads limit/offset query parameters with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// mustAuth pulls the auth context installed by the middleware. Routes
// behind Authenticate always have one; a miss is a wiring bug.
func mustAuth(w http.ResponseWriter, r *http.Request) (*middleware.AuthContext, bool) {
	ac, ok := middleware.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return ac, true
}
