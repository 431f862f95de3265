package httpx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/http/ui/viewmodel"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a builder seeded with the page's layout data.
func (h *UIHandlers) NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: h.basePageData(r, meta), r: r}
}

// WithPagination adds the backend's paging metadata and Prev/Next links
// rooted at basePath that keep the current query string.
func (b *TemplateDataBuilder) WithPagination(p model.Pagination, basePath string) *TemplateDataBuilder {
	vm := viewmodel.Pagination{
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   p.Total,
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		Summary: p.Summary(),
	}
	if vm.HasPrev {
		vm.PrevURL = buildPageURL(basePath, b.r.URL.Query(), p.Page-1, p.Limit)
	}
	if vm.HasNext {
		vm.NextURL = buildPageURL(basePath, b.r.URL.Query(), p.Page+1, p.Limit)
	}
	b.data["Pagination"] = vm
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	markPageError(b.data, msg)
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildPageURL returns basePath with q's parameters and the given page and limit.
func buildPageURL(basePath string, q url.Values, page, limit int) string {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	out.Set("page", strconv.Itoa(page))
	out.Set("limit", strconv.Itoa(limit))
	return basePath + "?" + out.Encode()
}
