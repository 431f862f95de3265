package auth

// Package auth contains domain-level types for admin authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RoleLevel is the backend's numeric admin role.
// Levels form a closed set and carry no ordering: access is decided by
// explicit membership in a policy's allowed set, never by comparison.
type RoleLevel int

const (
	RoleEntryLevel RoleLevel = 1
	RoleTech       RoleLevel = 2
	RoleSupport    RoleLevel = 3
	RoleFinance    RoleLevel = 4
	RoleOperations RoleLevel = 5
	RoleMarketing  RoleLevel = 6
	RoleSuperAdmin RoleLevel = 10
)

var roleNames = map[RoleLevel]string{
	RoleEntryLevel: "Entry Level",
	RoleTech:       "Tech",
	RoleSupport:    "Support",
	RoleFinance:    "Finance",
	RoleOperations: "Operations",
	RoleMarketing:  "Marketing",
	RoleSuperAdmin: "Super Admin",
}

// AllRoleLevels returns every defined role level in ascending numeric order.
func AllRoleLevels() []RoleLevel {
	out := make([]RoleLevel, 0, len(roleNames))
	for r := range roleNames {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether r is one of the defined role levels.
func (r RoleLevel) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r RoleLevel) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RoleLevel(%d)", int(r))
}

// ParseRoleLevel accepts either the numeric level ("10") or the display name
// ("super admin", "super_admin"), case-insensitively.
func ParseRoleLevel(s string) (RoleLevel, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		r := RoleLevel(n)
		if !r.Valid() {
			return 0, fmt.Errorf("unknown role level %d", n)
		}
		return r, nil
	}
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(v))
	for r, name := range roleNames {
		if strings.ToLower(name) == norm {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Admin is the identity of an authenticated console operator as returned by
// the backend profile endpoint.
type Admin struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Phone    string    `json:"phone,omitempty"`
	Role     RoleLevel `json:"role"`
}

// Validate checks the fields a session needs to make access decisions.
func (a Admin) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("admin username is required")
	}
	if !a.Role.Valid() {
		return fmt.Errorf("admin role %d is not a known role level", int(a.Role))
	}
	return nil
}

// Session is a point-in-time snapshot of one client's authentication state.
// Admin is non-nil exactly when IsAuthenticated is true.
type Session struct {
	Token           string `json:"-"`
	Admin           *Admin `json:"admin,omitempty"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsLoading       bool   `json:"is_loading"`
}

// Role returns the session's role level and whether the session is authenticated.
func (s Session) Role() (RoleLevel, bool) {
	if !s.IsAuthenticated || s.Admin == nil {
		return 0, false
	}
	return s.Admin.Role, true
}
