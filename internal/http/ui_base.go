package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	"github.com/haulmatch/admin-console/internal/domain/access"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/http/ui/viewmodel"
	"github.com/haulmatch/admin-console/internal/service"
)

const (
	errMsgFixBelow  = "Please fix the errors below."
	errMsgFallback  = "Something went wrong. Please try again."
	msgSessionEnded = "Your session has ended. Please sign in again."
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T           *TemplateRenderer
	Login       *service.LoginService
	Marketplace *service.MarketplaceService
	Access      *access.Evaluator
	IsDev       bool
	Logger      *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

//nolint:gochecknoglobals // static navigation order
var navEntries = []viewmodel.NavItem{
	{Label: "Dashboard", Href: access.RouteDashboard, Page: PageDashboard},
	{Label: "Users", Href: access.RouteUsers, Page: PageUsers},
	{Label: "Loads", Href: access.RouteLoads, Page: PageLoads},
	{Label: "Trucks", Href: access.RouteTrucks, Page: PageTrucks},
	{Label: "Bids", Href: access.RouteBids, Page: PageBids},
	{Label: "Search", Href: access.RouteSearch, Page: PageSearch},
	{Label: "Statistics", Href: access.RouteStats, Page: PageStats},
	{Label: "Admin users", Href: access.RouteAdminUsers, Page: PageAdminUsers},
	{Label: "Profile", Href: access.RouteProfile, Page: PageProfile},
}

// buildLayout constructs shared layout metadata from the request's session.
// Navigation lists only routes the role may open; Can lists granted features.
func (h *UIHandlers) buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Can:         map[string]bool{},
		Routes:      map[string]bool{},
	}
	if layout.PageTitle == "" {
		layout.PageTitle = meta.Title
	}

	s := SessionFromContext(r.Context())
	role, ok := s.Role()
	if !ok {
		return layout
	}
	layout.IsAuthenticated = true
	layout.User = &viewmodel.User{
		ID:       s.Admin.ID,
		Username: s.Admin.Username,
		Role:     role.String(),
		Level:    int(role),
	}
	if h.Access == nil {
		return layout
	}
	for _, item := range navEntries {
		if h.Access.CheckRouteAccess(item.Href, role) {
			item.Active = item.Page == meta.CurrentPage
			layout.Nav = append(layout.Nav, item)
		}
	}
	for _, f := range h.Access.Features() {
		layout.Can[f.Key] = f.Allows(role)
	}
	for _, p := range h.Access.Routes() {
		layout.Routes[p.Key] = p.Allows(role)
	}
	return layout
}

// basePageData constructs the common page data map.
func (h *UIHandlers) basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := h.buildLayout(r, meta)
	return map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"CSRFToken":       layout.CSRFToken,
		"IsAuthenticated": layout.IsAuthenticated,
		"User":            layout.User,
		"Nav":             layout.Nav,
		"Can":             layout.Can,
		"Routes":          layout.Routes,
		"Errors":          map[string]string{},
		"Values":          map[string]string{},
	}
}

// caller builds the backend caller for the request's session.
func (h *UIHandlers) caller(r *http.Request) (service.Caller, error) {
	return service.CallerFrom(SessionFromContext(r.Context()))
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta PageMeta
	// Op names the operation for error toasts, e.g. "Load trucks".
	Op    string
	Fetch func(ctx context.Context, c service.Caller, data map[string]any) error
}

// Page builds base data, fetches content data, and renders. A rejected
// session signs the client out; other failures render the page with an error
// banner and a toast.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := h.basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		c, err := h.caller(r)
		if err == nil {
			err = spec.Fetch(r.Context(), c, data)
		}
		if err != nil {
			if h.endSessionIfRejected(w, r, err) {
				return
			}
			h.reportFailure(w, r, spec.Op, err)
			markPageError(data, errorMessage(err))
		}
	}
	h.renderDashboardPage(w, r, data)
}

// endSessionIfRejected logs the client out and redirects to login when err
// says the backend no longer accepts the token. It reports whether it responded.
func (h *UIHandlers) endSessionIfRejected(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apperrors.IsUnauthenticated(err) {
		return false
	}
	target := access.RouteLogin
	if m, ok := ManagerFromContext(r.Context()); ok {
		target = m.Logout(r.Context())
	}
	h.logger().InfoContext(r.Context(), "backend rejected session, signed out", "path", r.URL.Path)
	if !IsBrowserRequest(r) {
		writeAppError(w, err)
		return true
	}
	HTMX(w).Toast(msgSessionEnded, ToastInfo)
	redirect(w, r, target)
	return true
}

// reportFailure logs err and queues an error toast naming op.
func (h *UIHandlers) reportFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger().WarnContext(r.Context(), "request failed",
		"op", op,
		"path", r.URL.Path,
		"code", string(apperrors.GetCode(err)),
		"error", err,
	)
	msg := errorMessage(err)
	if op != "" {
		msg = op + " failed: " + msg
	}
	HTMX(w).Toast(msg, ToastError)
}

func markPageError(data map[string]any, msg string) {
	data["Error"] = true
	if msg == "" {
		msg = errMsgFallback
	}
	data["ErrorMessage"] = msg
}

// renderDashboardPage renders the full layout, or for htmx requests the
// content plus out-of-band title updates.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXPushURL(w, r.URL.RequestURI())

	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	current, _ := data["CurrentPage"].(string)

	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}
	if err := h.T.ExecuteNamed(w, ContentTemplateFor(current), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<pre class="template-error">` + html.EscapeString(context+": "+err.Error()) + `</pre>`))
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func errorMessage(err error) string {
	return apperrors.GetMessage(err, errMsgFallback)
}
