//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultPageLimit is the page size used when none is requested.
	DefaultPageLimit = 10
	// MaxPageLimit caps page sizes sent to the backend.
	MaxPageLimit = 100
)

// Pagination is the backend's paging metadata for list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// ShowingFrom is the 1-based index of the first item on the page, or 0 when empty.
func (p Pagination) ShowingFrom() int {
	if p.Total <= 0 || p.Page < 1 || p.Limit < 1 {
		return 0
	}
	from := (p.Page-1)*p.Limit + 1
	if from > p.Total {
		return 0
	}
	return from
}

// ShowingTo is the 1-based index of the last item on the page, or 0 when empty.
func (p Pagination) ShowingTo() int {
	if p.ShowingFrom() == 0 {
		return 0
	}
	return min(p.Page*p.Limit, p.Total)
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists, as decided by the backend.
func (p Pagination) HasNext() bool { return p.HasMore }

// Summary renders the "Showing F to T of N" line.
func (p Pagination) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d", p.ShowingFrom(), p.ShowingTo(), max(p.Total, 0))
}

// Page is the list envelope returned by paginated endpoints.
type Page[T any] struct {
	Items      []T            `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Stats      map[string]any `json:"stats,omitempty"`
}

// ListQuery carries paging, search, and filters for a list endpoint.
type ListQuery struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// Normalize clamps paging to sane bounds and trims empty filters.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	if len(q.Filters) > 0 {
		clean := make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			if v = strings.TrimSpace(v); v != "" {
				clean[k] = v
			}
		}
		q.Filters = clean
	}
	return q
}

// Values encodes the query the way the backend expects it.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, q.Filters[k])
	}
	return v
}
