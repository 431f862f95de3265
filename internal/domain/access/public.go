package access

import "strings"

// Screens reachable without a session.
const (
	RouteLogin        = "/login"
	RouteVerifyOTP    = "/verify-otp"
	RouteUnauthorized = "/unauthorized"
	RouteLogout       = "/logout"
	RouteHealth       = "/healthz"
	RouteAuthStatus   = "/auth/status"
	StaticPrefix      = "/static/"
)

var loginOnly = map[string]struct{}{
	RouteLogin:     {},
	RouteVerifyOTP: {},
}

var public = map[string]struct{}{
	"/":               {},
	RouteLogin:        {},
	RouteVerifyOTP:    {},
	RouteUnauthorized: {},
	RouteLogout:       {},
	RouteHealth:       {},
	RouteAuthStatus:   {},
}

// IsPublic reports whether path can be served without authentication.
func IsPublic(path string) bool {
	if strings.HasPrefix(path, StaticPrefix) {
		return true
	}
	_, ok := public[normalizePath(path)]
	return ok
}

// IsLoginOnly reports whether path is a sign-in screen that an authenticated
// admin should be sent away from.
func IsLoginOnly(path string) bool {
	_, ok := loginOnly[normalizePath(path)]
	return ok
}
