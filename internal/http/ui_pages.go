package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/service"
)

// Dashboard renders the overview: statistics when the role may see them and
// the most recent loads when it may open the loads list.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "HaulMatch Admin - Dashboard", PageTitle: "Dashboard", CurrentPage: PageDashboard},
		Op:   "Load dashboard",
		Fetch: func(ctx context.Context, c service.Caller, data map[string]any) error {
			ov, err := h.Marketplace.Overview(ctx, c)
			if err != nil {
				return err
			}
			data["Overview"] = ov
			data["Loads"] = ov.RecentLoads
			data["StatsKinds"] = append([]model.StatsKind{model.StatsOverview}, model.StatsKinds()...)
			return nil
		},
	})
}

// Users lists transporters and truckers.
func (h *UIHandlers) Users(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.User]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetch:    h.Marketplace.ListUsers,
		Filters:  []string{"userType", "isVerified"},
		BasePath: access.RouteUsers,
		PageMeta: PageMeta{Title: "HaulMatch Admin - Users", PageTitle: "Users", CurrentPage: PageUsers},
		ItemsKey: "Users",
		Op:       "Load users",
	})
}

// UserDetail shows one marketplace account.
func (h *UIHandlers) UserDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "HaulMatch Admin - User", PageTitle: "User details", CurrentPage: PageUserDetail},
		Op:   "Load user",
		Fetch: func(ctx context.Context, c service.Caller, data map[string]any) error {
			u, err := h.Marketplace.GetUser(ctx, c, id)
			if err != nil {
				return err
			}
			data["Entity"] = u
			return nil
		},
	})
}

// Loads lists posted loads, optionally filtered by status.
func (h *UIHandlers) Loads(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Load]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetch:    h.Marketplace.ListLoads,
		Filters:  []string{"status"},
		BasePath: access.RouteLoads,
		PageMeta: PageMeta{Title: "HaulMatch Admin - Loads", PageTitle: "Loads", CurrentPage: PageLoads},
		ItemsKey: "Loads",
		Op:       "Load loads",
		Enrich: func(b *TemplateDataBuilder, _ model.Page[model.Load]) {
			b.With("LoadStatuses", model.LoadStatuses())
		},
	})
}

// Trucks lists registered trucks.
func (h *UIHandlers) Trucks(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Truck]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetch:    h.Marketplace.ListTrucks,
		Filters:  []string{"isVerified", "isAvailable"},
		BasePath: access.RouteTrucks,
		PageMeta: PageMeta{Title: "HaulMatch Admin - Trucks", PageTitle: "Trucks", CurrentPage: PageTrucks},
		ItemsKey: "Trucks",
		Op:       "Load trucks",
	})
}

// Bids lists load bids and truck requests.
func (h *UIHandlers) Bids(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Bid]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetch:    h.Marketplace.ListBids,
		Filters:  []string{"type", "status"},
		BasePath: access.RouteBids,
		PageMeta: PageMeta{Title: "HaulMatch Admin - Bids", PageTitle: "Bids", CurrentPage: PageBids},
		ItemsKey: "Bids",
		Op:       "Load bids",
	})
}

// AdminUsers lists console operators.
func (h *UIHandlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.AdminUser]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetch:    h.Marketplace.ListAdmins,
		BasePath: access.RouteAdminUsers,
		PageMeta: PageMeta{Title: "HaulMatch Admin - Admin users", PageTitle: "Admin users", CurrentPage: PageAdminUsers},
		ItemsKey: "Admins",
		Op:       "Load admin users",
	})
}

// Search runs a search against one entity kind. An empty query renders the
// form only.
func (h *UIHandlers) Search(w http.ResponseWriter, r *http.Request) {
	kind := model.SearchKind(strings.TrimSpace(r.URL.Query().Get("kind")))
	if !kind.Valid() {
		kind = model.SearchUsers
	}
	q := parseListQuery(r.URL.Query(), nil)
	if q.Search == "" {
		q.Search = strings.TrimSpace(r.URL.Query().Get("q"))
	}

	meta := PageMeta{Title: "HaulMatch Admin - Search", PageTitle: "Search", CurrentPage: PageSearch}
	if q.Search == "" {
		data := h.basePageData(r, meta)
		data["Kind"] = kind
		data["Query"] = q
		h.renderDashboardPage(w, r, data)
		return
	}
	r = withSearchQuery(r, q.Search)

	switch kind {
	case model.SearchLoads:
		HandleList(searchOpts(h, w, r, meta, "Loads", h.Marketplace.SearchLoads, kind))
	case model.SearchTrucks:
		HandleList(searchOpts(h, w, r, meta, "Trucks", h.Marketplace.SearchTrucks, kind))
	default:
		HandleList(searchOpts(h, w, r, meta, "Users", h.Marketplace.SearchUsers, kind))
	}
}

func searchOpts[T any](
	h *UIHandlers,
	w http.ResponseWriter,
	r *http.Request,
	meta PageMeta,
	itemsKey string,
	fetch ListFetcher[T],
	kind model.SearchKind,
) ListHandlerOpts[T] {
	return ListHandlerOpts[T]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetch:    fetch,
		BasePath: access.RouteSearch,
		PageMeta: meta,
		ItemsKey: itemsKey,
		Op:       "Search",
		Enrich: func(b *TemplateDataBuilder, _ model.Page[T]) {
			b.With("Kind", kind).With("Searched", true)
		},
	}
}

// withSearchQuery normalizes the "q" alias to the "search" parameter so
// pagination links carry one search key.
func withSearchQuery(r *http.Request, search string) *http.Request {
	q := r.URL.Query()
	q.Del("q")
	q.Set("search", search)
	r2 := r.Clone(r.Context())
	r2.URL.RawQuery = q.Encode()
	return r2
}

// Stats shows one statistics block.
func (h *UIHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	kind := model.StatsKind(strings.TrimSpace(r.URL.Query().Get("kind")))
	if !kind.Valid() {
		kind = model.StatsOverview
	}
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "HaulMatch Admin - Statistics", PageTitle: "Statistics", CurrentPage: PageStats},
		Op:   "Load statistics",
		Fetch: func(ctx context.Context, c service.Caller, data map[string]any) error {
			data["Kind"] = kind
			data["Kinds"] = append([]model.StatsKind{model.StatsOverview}, model.StatsKinds()...)
			st, err := h.Marketplace.Stats(ctx, c, kind)
			if err != nil {
				return err
			}
			data["Metrics"] = st.Metrics()
			return nil
		},
	})
}

// Profile shows the signed-in operator and what their token says about itself.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, PageMeta{Title: "HaulMatch Admin - Profile", PageTitle: "My profile", CurrentPage: PageProfile})
	s := SessionFromContext(r.Context())
	if s.Admin != nil {
		data["Admin"] = *s.Admin
	}
	if info, err := service.DescribeToken(s.Token); err == nil {
		data["Token"] = info
	}
	h.renderDashboardPage(w, r, data)
}
