package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit_DefaultTablesCoverConsoleRoutes(t *testing.T) {
	e := newTestEvaluator(t)
	reachable := []string{
		"GET /dashboard",
		"GET /dashboard/users",
		"GET /dashboard/users/{userID}",
		"GET /dashboard/loads/{id}/edit",
		"POST /dashboard/loads/{id}/edit",
		"POST /dashboard/trucks/{id}/verify",
		"GET /dashboard/admin-users/new",
		"GET /login",
		"GET /static/",
	}
	require.NoError(t, e.Audit(reachable))
}

func TestAudit_ReportsUncoveredRoutes(t *testing.T) {
	e := newTestEvaluator(t)
	err := e.Audit([]string{
		"GET /dashboard/reports",
		"POST /dashboard/reports",
		"GET /dashboard/exports/{id}",
		"GET /login",
	})
	require.Error(t, err)

	var uncovered *UncoveredRoutesError
	require.True(t, errors.As(err, &uncovered))
	assert.Equal(t, []string{"/dashboard/exports/{id}", "/dashboard/reports"}, uncovered.Paths)
}

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected("/dashboard"))
	assert.True(t, IsProtected("/dashboard/"))
	assert.True(t, IsProtected("/dashboard/users"))
	assert.False(t, IsProtected("/dashboards"))
	assert.False(t, IsProtected("/login"))
}
