package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/service"
)

// ListFetcher loads one page of T for the caller.
type ListFetcher[T any] func(ctx context.Context, c service.Caller, q model.ListQuery) (model.Page[T], error)

// ListHandlerOpts configures HandleList.
type ListHandlerOpts[T any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	Fetch   ListFetcher[T]
	// Filters names the query parameters forwarded to the backend as filters.
	Filters []string
	// BasePath is the path used for pagination links, e.g. "/dashboard/loads".
	BasePath string
	PageMeta PageMeta
	// ItemsKey is the template data key for the items, e.g. "Loads".
	ItemsKey string
	// Op names the operation for error toasts.
	Op string
	// Enrich adds page-specific data after a successful fetch.
	Enrich func(b *TemplateDataBuilder, page model.Page[T])
}

// parseListQuery reads page, limit, search and the named filters from q.
func parseListQuery(q url.Values, filters []string) model.ListQuery {
	lq := model.ListQuery{
		Page:   atoiOr(q.Get("page"), 1),
		Limit:  atoiOr(q.Get("limit"), model.DefaultPageLimit),
		Search: strings.TrimSpace(q.Get("search")),
	}
	for _, key := range filters {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			if lq.Filters == nil {
				lq.Filters = map[string]string{}
			}
			lq.Filters[key] = v
		}
	}
	return lq.Normalize()
}

func atoiOr(s string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return def
}

// HandleList serves a paginated backend list. Browser callers get the page
// (a partial for htmx); API callers get the page as JSON.
func HandleList[T any](opts ListHandlerOpts[T]) {
	if opts.W == nil || opts.R == nil || opts.Handler == nil || opts.Fetch == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return
	}
	h, w, r := opts.Handler, opts.W, opts.R
	q := parseListQuery(r.URL.Query(), opts.Filters)

	page, err := fetchPage(r, q, opts.Fetch)
	if !IsBrowserRequest(r) {
		if err != nil {
			writeAppError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, page)
		return
	}

	b := h.NewTemplateData(r, opts.PageMeta).
		With("Query", q).
		With("Filters", q.Filters)
	if err != nil {
		if h.endSessionIfRejected(w, r, err) {
			return
		}
		h.reportFailure(w, r, opts.Op, err)
		b.With(opts.ItemsKey, []T{}).
			WithPagination(model.Pagination{Page: q.Page, Limit: q.Limit}, opts.BasePath).
			WithError(errorMessage(err))
		h.renderDashboardPage(w, r, b.Build())
		return
	}

	b.With(opts.ItemsKey, page.Items).
		With("PageStats", page.Stats).
		WithPagination(page.Pagination, opts.BasePath)
	if opts.Enrich != nil {
		opts.Enrich(b, page)
	}
	h.renderDashboardPage(w, r, b.Build())
}

func fetchPage[T any](r *http.Request, q model.ListQuery, fetch ListFetcher[T]) (model.Page[T], error) {
	c, err := service.CallerFrom(SessionFromContext(r.Context()))
	if err != nil {
		return model.Page[T]{}, err
	}
	return fetch(r.Context(), c, q)
}
