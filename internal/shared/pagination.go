package shared

import (
	"net/http"
	"strconv"
)

// ListFilters represents standard list endpoint filters.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	IsActive   *bool
	CategoryID *int64
	SellerID   *int64
	Role       string
}

// ParseListFilters extracts common list filters from query parameters.
func ParseListFilters(r *http.Request) ListFilters {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	filters := ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  q.Get("search"),
		SortBy:  q.Get("sort"),
		SortDir: q.Get("dir"),
		Role:    q.Get("role"),
	}

	if q.Get("category_id") != "" {
		if id, err := strconv.ParseInt(q.Get("category_id"), 10, 64); err == nil {
			filters.CategoryID = &id
		}
	}
	if q.Get("seller_id") != "" {
		if id, err := strconv.ParseInt(q.Get("seller_id"), 10, 64); err == nil {
			filters.SellerID = &id
		}
	}
	if q.Get("is_active") != "" {
		isActive := q.Get("is_active") == "true"
		filters.IsActive = &isActive
	}

	return filters
}

// Offset returns the row offset for the current page.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}

// ListResponse is the standard paginated list envelope.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
