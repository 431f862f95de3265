package access

import (
	"fmt"
	"sort"
	"strings"
)

// ProtectedPrefix is the path prefix under which every reachable route must carry a policy.
const ProtectedPrefix = "/dashboard"

// UncoveredRoutesError lists reachable protected routes that have no policy.
type UncoveredRoutesError struct {
	Paths []string
}

func (e *UncoveredRoutesError) Error() string {
	return fmt.Sprintf("routes without an access policy: %s", strings.Join(e.Paths, ", "))
}

// Audit checks that every reachable path under ProtectedPrefix resolves to a policy.
// Reachable entries may be concrete paths or {param} patterns as registered on the router;
// a leading "METHOD " is ignored.
func (e *Evaluator) Audit(reachable []string) error {
	seen := make(map[string]struct{})
	var missing []string
	for _, r := range reachable {
		path := stripMethod(r)
		if !IsProtected(path) {
			continue
		}
		if _, ok := e.routes.lookupPath(path); ok {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		missing = append(missing, path)
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &UncoveredRoutesError{Paths: missing}
}

// IsProtected reports whether path lies under ProtectedPrefix.
func IsProtected(path string) bool {
	path = normalizePath(path)
	return path == ProtectedPrefix || strings.HasPrefix(path, ProtectedPrefix+"/")
}

func stripMethod(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		return strings.TrimSpace(pattern[i+1:])
	}
	return pattern
}
