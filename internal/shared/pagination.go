package shared

import "math"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata. The page is clamped to
// [1, total pages] so a stale page link never slices out of range.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Slice returns the [low, high) bounds of the current page over a list of
// Total items. An empty result yields low == high.
func (p Pagination) Slice() (int, int) {
	if p.Total == 0 {
		return 0, 0
	}
	low := (p.Page - 1) * p.PerPage
	if low > p.Total {
		low = p.Total
	}
	high := low + p.PerPage
	if high > p.Total {
		high = p.Total
	}
	return low, high
}

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
