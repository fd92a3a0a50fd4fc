package shared

import (
	"math"
	"net/http"
	"strconv"
)

type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page/limit query params. Bad values fall back to the
// defaults rather than failing the request.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := 1
	limit := defaultLimit
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// Keeps Offset within int64.
	page = min(page, math.MaxInt32)
	limit = min(limit, math.MaxInt32)
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
