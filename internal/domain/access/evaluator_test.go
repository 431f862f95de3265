package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewDefaultEvaluator()
	require.NoError(t, err)
	return e
}

func TestCheckRouteAccess_AdminUsers(t *testing.T) {
	e := newTestEvaluator(t)

	assert.False(t, e.CheckRouteAccess("/dashboard/admin-users", domainauth.RoleEntryLevel))
	assert.True(t, e.CheckRouteAccess("/dashboard/admin-users", domainauth.RoleSuperAdmin))
	assert.False(t, e.CheckRouteAccess("/dashboard/admin-users", domainauth.RoleFinance))
	for _, r := range []domainauth.RoleLevel{2, 3, 5, 6} {
		assert.True(t, e.CheckRouteAccess("/dashboard/admin-users/", r), "role %d", r)
	}
}

func TestCheckFeatureAccess_CreateUser(t *testing.T) {
	e := newTestEvaluator(t)

	assert.False(t, e.CheckFeatureAccess(FeatureCreateUser, domainauth.RoleSupport))
	assert.True(t, e.CheckFeatureAccess(FeatureCreateUser, domainauth.RoleSuperAdmin))
}

func TestCheckRouteAccess_UnknownRouteIsGranted(t *testing.T) {
	e := newTestEvaluator(t)
	for _, r := range domainauth.AllRoleLevels() {
		assert.True(t, e.CheckRouteAccess("/dashboard/not-a-page", r))
	}
	assert.True(t, e.CheckRouteAccess("/dashboard/not-a-page", domainauth.RoleLevel(99)))
}

func TestCheckFeatureAccess_UnknownFeatureIsDenied(t *testing.T) {
	e := newTestEvaluator(t)
	for _, r := range domainauth.AllRoleLevels() {
		assert.False(t, e.CheckFeatureAccess("DELETE_EVERYTHING", r))
	}
}

func TestCheckAccess_MatchesMembershipForEveryPolicy(t *testing.T) {
	e := newTestEvaluator(t)
	roles := append(domainauth.AllRoleLevels(), 0, 7, 99)

	for _, p := range e.Routes() {
		for _, r := range roles {
			assert.Equal(t, p.AllowedRoles.Contains(r), e.CheckRouteAccess(p.Key, r), "route %s role %d", p.Key, r)
		}
	}
	for _, p := range e.Features() {
		for _, r := range roles {
			assert.Equal(t, p.AllowedRoles.Contains(r), e.CheckFeatureAccess(p.Key, r), "feature %s role %d", p.Key, r)
		}
	}
}

func TestCheckRouteAccess_NoHierarchy(t *testing.T) {
	e, err := NewEvaluator([]Policy{{Key: "/dashboard/x", AllowedRoles: Roles(domainauth.RoleSupport)}}, nil)
	require.NoError(t, err)

	assert.True(t, e.CheckRouteAccess("/dashboard/x", domainauth.RoleSupport))
	assert.False(t, e.CheckRouteAccess("/dashboard/x", domainauth.RoleSuperAdmin))
	assert.False(t, e.CheckRouteAccess("/dashboard/x", domainauth.RoleOperations))
}

func TestCheckRouteAccess_Patterns(t *testing.T) {
	e := newTestEvaluator(t)

	assert.True(t, e.CheckRouteAccess("/dashboard/loads/abc123/edit", domainauth.RoleOperations))
	assert.False(t, e.CheckRouteAccess("/dashboard/loads/abc123/edit", domainauth.RoleSupport))
	assert.False(t, e.CheckRouteAccess("/dashboard/admin-users/42/edit?tab=role", domainauth.RoleTech))

	p, ok := e.RoutePolicy("/dashboard/admin-users/new")
	require.True(t, ok)
	assert.Equal(t, RouteAdminUserCreate, p.Key)
}

func TestNewEvaluator_RejectsInvalidTables(t *testing.T) {
	_, err := NewEvaluator([]Policy{
		{Key: "/dashboard/a", AllowedRoles: Roles(domainauth.RoleTech)},
		{Key: "/dashboard/a/", AllowedRoles: Roles(domainauth.RoleSupport)},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	_, err = NewEvaluator(nil, []Policy{{Key: "X", AllowedRoles: Roles(domainauth.RoleLevel(8))}})
	require.Error(t, err)

	_, err = NewEvaluator(nil, []Policy{{Key: "X"}})
	require.Error(t, err)

	_, err = NewEvaluator([]Policy{{Key: " ", AllowedRoles: AllRoles()}}, nil)
	require.Error(t, err)
}

func TestRoleSet_Levels(t *testing.T) {
	s := Roles(domainauth.RoleSuperAdmin, domainauth.RoleTech, domainauth.RoleTech)
	assert.Equal(t, []domainauth.RoleLevel{2, 10}, s.Levels())
	assert.Equal(t, 2, s.Len())
}
