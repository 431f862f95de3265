package httpx

// Page identifiers used by templates and navigation.
const (
	PageDashboard     = "dashboard"
	PageUsers         = "users"
	PageUserDetail    = "user-detail"
	PageLoads         = "loads"
	PageLoadEdit      = "load-edit"
	PageTrucks        = "trucks"
	PageTruckEdit     = "truck-edit"
	PageBids          = "bids"
	PageSearch        = "search"
	PageStats         = "stats"
	PageAdminUsers    = "admin-users"
	PageAdminUserForm = "admin-user-form"
	PageProfile       = "profile"
	PageLogin         = "login"
	PageVerifyOTP     = "verify-otp"
	PageUnauthorized  = "unauthorized"
	PageNotFound      = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeEdit   FormMode = "edit"
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup
var contentTemplates = map[string]string{
	PageDashboard:     "dashboard-content",
	PageUsers:         "users-content",
	PageUserDetail:    "user-detail-content",
	PageLoads:         "loads-content",
	PageLoadEdit:      "load-edit-content",
	PageTrucks:        "trucks-content",
	PageTruckEdit:     "truck-edit-content",
	PageBids:          "bids-content",
	PageSearch:        "search-content",
	PageStats:         "stats-content",
	PageAdminUsers:    "admin-users-content",
	PageAdminUserForm: "admin-user-form-content",
	PageProfile:       "profile-content",
	PageLogin:         "login-content",
	PageVerifyOTP:     "verify-otp-content",
	PageUnauthorized:  "unauthorized-content",
	PageNotFound:      "not-found-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the dashboard.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
