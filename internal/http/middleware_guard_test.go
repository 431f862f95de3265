package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/service"
)

type resolverFunc func(ctx context.Context, clientID, location string) (*service.Manager, string, error)

func (f resolverFunc) Resolve(ctx context.Context, clientID, location string) (*service.Manager, string, error) {
	return f(ctx, clientID, location)
}

func TestGuard_SignedOutClientIsSentToLogin(t *testing.T) {
	h := newHarness(t)
	b := h.newBrowser()

	res := b.get(access.RouteLoads)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, access.RouteLogin, res.Header.Get("Location"))

	res = b.get(access.RouteLoads, asHTMX)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, access.RouteLogin, res.Header.Get("Hx-Redirect"))

	res = b.get(access.RouteLoads, asAPI)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "authentication_required", body["error"])
}

func TestGuard_PublicPathsNeedNoSession(t *testing.T) {
	h := newHarness(t)
	b := h.newBrowser()

	for _, path := range []string{access.RouteLogin, access.RouteHealth, "/static/css/app.css", access.RouteUnauthorized} {
		res := b.get(path)
		res.Body.Close()
		assert.NotEqual(t, http.StatusSeeOther, res.StatusCode, path)
		assert.Empty(t, res.Header.Get("Location"), path)
	}
}

func TestGuard_RoleWithoutPolicyAccessIsSentToUnauthorized(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testEntryAdmin)

	res := b.get(access.RouteStats)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, access.RouteUnauthorized, res.Header.Get("Location"))

	res = b.get("/dashboard/admin-users/a-3/edit", asAPI)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "insufficient_permissions", body["error"])

	res = b.post("/dashboard/trucks/t-1/verify", nil, asHTMX)
	res.Body.Close()
	assert.Equal(t, access.RouteUnauthorized, res.Header.Get("Hx-Redirect"))
}

func TestGuard_SignedInAdminSkipsLoginScreens(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)

	for _, path := range []string{access.RouteLogin, access.RouteVerifyOTP} {
		res := b.get(path)
		res.Body.Close()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode, path)
		assert.Equal(t, access.RouteDashboard, res.Header.Get("Location"), path)
	}
}

func TestGuard_ResolveFailure(t *testing.T) {
	eval, err := access.NewDefaultEvaluator()
	require.NoError(t, err)
	guard := Guard(GuardConfig{
		Sessions: resolverFunc(func(context.Context, string, string) (*service.Manager, string, error) {
			return nil, "", errors.New("registry closed")
		}),
		Access: eval,
	})
	h := guard(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, access.RouteDashboard, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	req := httptest.NewRequest(http.MethodGet, access.RouteDashboard, nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "session_unavailable")
}

func TestGuard_StaticAndHealthBypass(t *testing.T) {
	eval, err := access.NewDefaultEvaluator()
	require.NoError(t, err)
	guard := Guard(GuardConfig{
		Sessions: resolverFunc(func(context.Context, string, string) (*service.Manager, string, error) {
			t.Fatal("resolver must not be consulted")
			return nil, "", nil
		}),
		Access: eval,
	})
	h := guard(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	for _, path := range []string{access.RouteHealth, "/static/js/app.js"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
