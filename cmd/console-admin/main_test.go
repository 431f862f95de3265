package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulmatch/admin-console/config"
)

type fakeBackend struct {
	mu      sync.Mutex
	admins  map[string]map[string]any // username -> admin
	tokens  map[string]string         // token -> username
	queries []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		admins: map[string]map[string]any{
			"root":   {"id": "a-10", "username": "root", "phone": "9000000010", "role": 10},
			"intern": {"id": "a-1", "username": "intern", "phone": "9000000001", "role": 1},
		},
		tokens: map[string]string{},
	}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	var body map[string]string
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	switch r.URL.Path {
	case "/api/admin/login":
		if _, ok := fb.admins[body["username"]]; !ok || body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "OTP sent", "phone": "10"})
		return
	case "/api/admin/verify-otp":
		if body["otp"] != "123456" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid OTP"})
			return
		}
		token := "tok-" + body["username"]
		fb.tokens[token] = body["username"]
		writeJSON(w, http.StatusOK, map[string]any{"token": token, "admin": fb.admins[body["username"]]})
		return
	}

	user, ok := fb.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid token"})
		return
	}
	switch r.URL.Path {
	case "/api/admin/profile":
		writeJSON(w, http.StatusOK, map[string]any{"admin": fb.admins[user]})
	case "/api/admin/users", "/api/admin/search/users":
		fb.queries = append(fb.queries, r.URL.Path+"?"+r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"id": "u1", "name": "Asha Transport", "phone": "9876543210", "userType": "transporter"},
				{"id": "u2", "name": "Ravi", "phone": "9123456780", "userType": "trucker", "isVerified": true},
			},
			"pagination": map[string]any{"total": 2, "page": 1, "limit": 10},
		})
	case "/api/admin/stats/loads":
		writeJSON(w, http.StatusOK, map[string]any{"stats": map[string]any{"open": 4, "delivered": 9}})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	}
}

func testContext(t *testing.T, backendURL, stdin string) (*commandContext, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := config.AppConfig{
		Backend: config.BackendConfig{URL: backendURL + "/api", RequestTimeout: 2 * time.Second, ValidateTimeout: time.Second},
		Auth:    config.AuthConfig{TokenTTL: time.Hour, PendingTTL: 5 * time.Minute},
		CLI:     config.CLIConfig{StateDir: t.TempDir()},
	}
	return &commandContext{
		Ctx:    context.Background(),
		Config: cfg,
		In:     bufio.NewReader(strings.NewReader(stdin)),
		Out:    out,
	}, out
}

// withStateDir reuses the token files of an earlier command.
func withStateDir(t *testing.T, prev *commandContext, backendURL, stdin string) (*commandContext, *bytes.Buffer) {
	t.Helper()
	c, out := testContext(t, backendURL, stdin)
	c.Config.CLI.StateDir = prev.Config.CLI.StateDir
	return c, out
}

func signIn(t *testing.T, backendURL, username string) *commandContext {
	t.Helper()
	c, out := testContext(t, backendURL, "secret\n123456\n")
	require.NoError(t, runLogin(c, []string{"--username", username}))
	require.Contains(t, out.String(), "Signed in as "+username)
	return c
}

func TestPrintUsage_ListsEveryCommandSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	for name := range commands() {
		assert.Contains(t, out, "  "+name)
	}
	assert.Less(t, strings.Index(out, "admins"), strings.Index(out, "whoami"))
}

func TestLogin_PromptsAndPersistsSession(t *testing.T) {
	_, srv := newFakeBackend(t)
	c, out := testContext(t, srv.URL, "root\nsecret\n123456\n")

	require.NoError(t, runLogin(c, nil))
	assert.Contains(t, out.String(), "phone ending 10")
	assert.Contains(t, out.String(), "Signed in as root (Super Admin)")

	who, whoOut := withStateDir(t, c, srv.URL, "")
	require.NoError(t, runWhoami(who, nil))
	assert.Contains(t, whoOut.String(), "Role:      Super Admin (level 10)")
	assert.Contains(t, whoOut.String(), "90******10")
	assert.Contains(t, whoOut.String(), "VIEW_PHONE_NUMBERS")
}

func TestLogin_WrongOTPKeepsSignedOut(t *testing.T) {
	_, srv := newFakeBackend(t)
	c, _ := testContext(t, srv.URL, "secret\n000000\n")

	require.Error(t, runLogin(c, []string{"--username", "root"}))

	who, _ := withStateDir(t, c, srv.URL, "")
	assert.ErrorIs(t, runWhoami(who, nil), errNotSignedIn)
}

func TestLogout_ForgetsToken(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := signIn(t, srv.URL, "root")

	out, buf := withStateDir(t, c, srv.URL, "")
	require.NoError(t, runLogout(out, nil))
	assert.Contains(t, buf.String(), "Signed out.")

	who, _ := withStateDir(t, c, srv.URL, "")
	assert.ErrorIs(t, runWhoami(who, nil), errNotSignedIn)
}

func TestWhoami_JSON(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := signIn(t, srv.URL, "intern")

	who, out := withStateDir(t, c, srv.URL, "")
	require.NoError(t, runWhoami(who, []string{"--json"}))

	var view whoamiView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, "intern", view.Username)
	assert.Equal(t, 1, view.Level)
	assert.Empty(t, view.Features)
}

func TestUsers_MasksPhonesWithoutFeature(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := signIn(t, srv.URL, "intern")

	list, out := withStateDir(t, c, srv.URL, "")
	require.NoError(t, runUsers(list, nil))

	assert.Contains(t, out.String(), "98******10")
	assert.NotContains(t, out.String(), "9876543210")
	assert.Contains(t, out.String(), "Showing 1 to 2 of 2")
}

func TestUsers_SearchFiltersAndQuery(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := signIn(t, srv.URL, "root")

	list, out := withStateDir(t, c, srv.URL, "")
	require.NoError(t, runUsers(list, []string{
		"--search", "ravi", "--filter", "userType=trucker", "--limit", "5",
		"--query", "items[?isVerified].name",
	}))

	var names []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &names))
	assert.Equal(t, []string{"Ravi"}, names)

	require.Len(t, fb.queries, 1)
	assert.True(t, strings.HasPrefix(fb.queries[0], "/api/admin/search/users?"))
	assert.Contains(t, fb.queries[0], "userType=trucker")
	assert.Contains(t, fb.queries[0], "limit=5")
}

func TestUsers_RejectsBadFilter(t *testing.T) {
	c, _ := testContext(t, "http://backend.invalid", "")
	assert.Error(t, runUsers(c, []string{"--filter", "novalue"}))
}

func TestBids_RouteDeniedForEntryLevel(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := signIn(t, srv.URL, "intern")

	list, _ := withStateDir(t, c, srv.URL, "")
	err := runBids(list, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "may not view bids")
}

func TestStats_RequiresFeature(t *testing.T) {
	_, srv := newFakeBackend(t)

	root := signIn(t, srv.URL, "root")
	c, out := withStateDir(t, root, srv.URL, "")
	require.NoError(t, runStats(c, []string{"--kind", "loads"}))
	assert.Contains(t, out.String(), "delivered")
	assert.Contains(t, out.String(), "9")

	intern := signIn(t, srv.URL, "intern")
	c, _ = withStateDir(t, intern, srv.URL, "")
	assert.Error(t, runStats(c, []string{"--kind", "loads"}))
}

func TestPolicy_TableAndJSON(t *testing.T) {
	c, out := testContext(t, "http://backend.invalid", "")
	require.NoError(t, runPolicy(c, nil))
	assert.Contains(t, out.String(), "/dashboard/admin-users/new")
	assert.Contains(t, out.String(), "VIEW_STATS")

	c, out = testContext(t, "http://backend.invalid", "")
	require.NoError(t, runPolicy(c, []string{"--query", "features[?key=='CREATE_USER'].roles[]"}))
	var roles []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &roles))
	assert.Equal(t, []string{"Super Admin"}, roles)
}

func TestAudit_PassesForBuiltInRoutes(t *testing.T) {
	c, out := testContext(t, "http://backend.invalid", "")
	require.NoError(t, runAudit(c, nil))
	assert.Contains(t, out.String(), "have an access policy")
}

func TestCheckRoute(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed bool
		output  string
	}{
		{"super admin creates admins", []string{"--role", "10", "/dashboard/admin-users/new"}, true, "allowed for Super Admin"},
		{"entry level cannot", []string{"--role", "entry level", "/dashboard/admin-users/new"}, false, "denied"},
		{"pattern route", []string{"--role", "operations", "/dashboard/loads/L-9/edit"}, true, "allowed"},
		{"unknown path", []string{"--role", "1", "/dashboard/reports"}, true, "(no policy)"},
		{"public path", []string{"--role", "1", "/login"}, true, "allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := testContext(t, "http://backend.invalid", "")
			err := runCheckRoute(c, tt.args)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errDenied)
			}
			assert.Contains(t, out.String(), tt.output)
		})
	}
}

func TestCheckFeature(t *testing.T) {
	c, out := testContext(t, "http://backend.invalid", "")
	require.NoError(t, runCheckFeature(c, []string{"--role", "support", "VERIFY_TRUCK"}))
	assert.Contains(t, out.String(), "VERIFY_TRUCK: allowed")

	c, out = testContext(t, "http://backend.invalid", "")
	require.ErrorIs(t, runCheckFeature(c, []string{"--role", "support", "EXPORT_ALL"}), errDenied)
	assert.Contains(t, out.String(), "(no policy)")

	c, _ = testContext(t, "http://backend.invalid", "")
	assert.Error(t, runCheckFeature(c, []string{"--role", "99", "VIEW_STATS"}))
	assert.Error(t, runCheckFeature(c, []string{"--role", "1"}))
}

func TestCheckFeature_UsesSignedInRole(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := signIn(t, srv.URL, "intern")

	check, out := withStateDir(t, c, srv.URL, "")
	require.ErrorIs(t, runCheckFeature(check, []string{"VIEW_STATS"}), errDenied)
	assert.Contains(t, out.String(), "Entry Level (level 1)")
}
