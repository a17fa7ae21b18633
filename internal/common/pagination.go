package common

import (
	"net/http"
	"strconv"
)

const maxPerPage = 100

// Pagination is the metadata block attached to paged list responses.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
}

// ParsePagination reads "page" and "limit" query parameters, falling back to
// page 1 and the given default page size. The page size is capped so one
// request cannot drag an unbounded result set out of the database.
func ParsePagination(r *http.Request, defaultPerPage int) (page, perPage int) {
	page = queryInt(r, "page", 1)
	perPage = queryInt(r, "limit", defaultPerPage)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
