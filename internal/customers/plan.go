package customers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pawan-gold/goldcrest/internal/backend"
)

// Query is every predicate the listing page accepts.
type Query struct {
	Search    string
	PurposeID *int64
	StaffID   *int64
	StartDate string
	Page      int
}

// QuerySuffix renders the non-page predicates as URL parameters so
// pagination links keep the active filters.
func (q Query) QuerySuffix() string {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.PurposeID != nil {
		params.Set("purpose", strconv.FormatInt(*q.PurposeID, 10))
	}
	if q.StaffID != nil {
		params.Set("staff", strconv.FormatInt(*q.StaffID, 10))
	}
	if q.StartDate != "" {
		params.Set("from", q.StartDate)
	}
	if len(params) == 0 {
		return ""
	}
	return "&" + params.Encode()
}

// Fetch sizes for the two listing strategies. The filter endpoint narrows
// the set server-side, so a larger batch is affordable there.
const (
	pageSize          = 10
	plainFetchLimit   = 200
	filteredBatchSize = 500
)

// queryPlan decides which endpoint serves a query and what stays local.
type queryPlan struct {
	filter     backend.CustomerFilter
	fetchLimit int
}

// plan maps the active predicates onto a fetch strategy. Purpose, staff and
// the date floor are pushed to the backend when present; free-text search is
// always local, and the date floor is re-checked locally as well.
func plan(q Query) queryPlan {
	p := queryPlan{
		filter: backend.CustomerFilter{
			PurposeID: q.PurposeID,
			StaffID:   q.StaffID,
			StartDate: q.StartDate,
		},
	}
	if p.filter.Empty() {
		p.fetchLimit = plainFetchLimit
	} else {
		p.fetchLimit = filteredBatchSize
	}
	return p
}

// matchesLocal applies the predicates the backend cannot be trusted with.
// Dates compare lexicographically, which is exact for ISO dates.
func matchesLocal(c backend.Customer, q Query) bool {
	if q.StartDate != "" && c.JoiningDate < q.StartDate {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.MobNo), needle) ||
		strings.Contains(strings.ToLower(c.Address), needle)
}
