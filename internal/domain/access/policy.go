// Package access decides which admin roles may reach a console route or use a feature.
//
// Policies are static tables keyed by route path or feature id. Role levels are
// compared by set membership only; there is no role hierarchy.
package access

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

// RoleSet is an immutable set of role levels.
type RoleSet struct {
	levels map[domainauth.RoleLevel]struct{}
}

// Roles builds a RoleSet from the given levels.
func Roles(levels ...domainauth.RoleLevel) RoleSet {
	m := make(map[domainauth.RoleLevel]struct{}, len(levels))
	for _, l := range levels {
		m[l] = struct{}{}
	}
	return RoleSet{levels: m}
}

// AllRoles is the set of every defined role level.
func AllRoles() RoleSet { return Roles(domainauth.AllRoleLevels()...) }

// Contains reports whether role is an explicit member of the set.
func (s RoleSet) Contains(role domainauth.RoleLevel) bool {
	_, ok := s.levels[role]
	return ok
}

// Levels returns the members in ascending numeric order.
func (s RoleSet) Levels() []domainauth.RoleLevel {
	out := make([]domainauth.RoleLevel, 0, len(s.levels))
	for l := range s.levels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of members.
func (s RoleSet) Len() int { return len(s.levels) }

// Policy grants a key to an explicit set of roles.
type Policy struct {
	Key          string
	AllowedRoles RoleSet
	Description  string
}

// Allows reports whether role is granted by the policy.
func (p Policy) Allows(role domainauth.RoleLevel) bool { return p.AllowedRoles.Contains(role) }

// ErrDuplicateKey is returned when a table defines the same key twice.
var ErrDuplicateKey = errors.New("duplicate policy key")

// table is a keyed policy lookup. Route tables may hold {param} pattern keys.
type table struct {
	exact    map[string]Policy
	patterns []pattern
	order    []string
}

type pattern struct {
	segments []string
	policy   Policy
}

func newTable(kind string, policies []Policy, allowPatterns bool) (table, error) {
	t := table{exact: make(map[string]Policy, len(policies))}
	var errs []error
	for _, p := range policies {
		key := p.Key
		if allowPatterns {
			key = normalizePath(key)
		}
		p.Key = key
		switch {
		case strings.TrimSpace(key) == "":
			errs = append(errs, fmt.Errorf("%s policy with empty key", kind))
			continue
		case p.AllowedRoles.Len() == 0:
			errs = append(errs, fmt.Errorf("%s policy %q allows no roles", kind, key))
			continue
		}
		for _, l := range p.AllowedRoles.Levels() {
			if !l.Valid() {
				errs = append(errs, fmt.Errorf("%s policy %q references unknown role level %d", kind, key, int(l)))
			}
		}
		if _, dup := t.exact[key]; dup {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrDuplicateKey, kind, key))
			continue
		}
		t.exact[key] = p
		t.order = append(t.order, key)
		if allowPatterns && strings.Contains(key, "{") {
			t.patterns = append(t.patterns, pattern{segments: splitPath(key), policy: p})
		}
	}
	if len(errs) > 0 {
		return table{}, errors.Join(errs...)
	}
	return t, nil
}

func (t table) lookup(key string) (Policy, bool) {
	p, ok := t.exact[key]
	return p, ok
}

// lookupPath tries an exact match first, then the {param} patterns in definition order.
func (t table) lookupPath(path string) (Policy, bool) {
	path = normalizePath(path)
	if p, ok := t.exact[path]; ok {
		return p, true
	}
	segs := splitPath(path)
	for _, pat := range t.patterns {
		if matchSegments(pat.segments, segs) {
			return pat.policy, true
		}
	}
	return Policy{}, false
}

func (t table) all() []Policy {
	out := make([]Policy, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.exact[k])
	}
	return out
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func matchSegments(pat, segs []string) bool {
	if len(pat) != len(segs) {
		return false
	}
	for i, s := range pat {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if s != segs[i] {
			return false
		}
	}
	return true
}
