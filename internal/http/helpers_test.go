package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/haulmatch/admin-console/internal/adapters/backend"
	"github.com/haulmatch/admin-console/internal/adapters/memory"
	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/mocks"
	authmocks "github.com/haulmatch/admin-console/internal/mocks/auth"
	"github.com/haulmatch/admin-console/internal/service"
)

var (
	testSuperAdmin = domainauth.Admin{ID: "a-10", Username: "root", Phone: "9000000010", Role: domainauth.RoleSuperAdmin}
	testEntryAdmin = domainauth.Admin{ID: "a-1", Username: "intern", Phone: "9000000001", Role: domainauth.RoleEntryLevel}
	testFinance    = domainauth.Admin{ID: "a-4", Username: "ledger", Phone: "9000000004", Role: domainauth.RoleFinance}
	testOperations = domainauth.Admin{ID: "a-5", Username: "ops", Phone: "9000000005", Role: domainauth.RoleOperations}
)

const (
	testPassword = "correct-horse"
	testOTP      = "123456"
)

// harness runs the full console router against a gomock backend and
// in-memory token stores.
type harness struct {
	t         *testing.T
	api       *mocks.MockMarketplaceAPI
	validator *authmocks.StubValidator
	authn     *authmocks.StubAuthenticator
	registry  *service.Registry
	access    *access.Evaluator
	server    *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMarketplaceAPI(ctrl)
	evaluator, err := access.NewDefaultEvaluator()
	require.NoError(t, err)

	validator := authmocks.NewStubValidator(nil)
	authn := &authmocks.StubAuthenticator{Password: testPassword, OTP: testOTP, Phone: "10"}
	registry := service.NewRegistry(service.RegistryOptions{Deps: service.SessionDeps{
		Tokens: service.NewPersistence(service.PersistenceOptions{
			Primary:  memory.NewTokenStore(),
			Fallback: memory.NewTokenStore(),
		}),
		Pending:   memory.NewTokenStore(),
		Validator: validator,
	}})

	h := &harness{t: t, api: api, validator: validator, authn: authn, registry: registry, access: evaluator}
	handler, err := NewRouter(h.routerServices())
	require.NoError(t, err)

	h.server = httptest.NewServer(handler)
	t.Cleanup(h.server.Close)
	return h
}

func (h *harness) routerServices() RouterServices {
	hashKey, blockKey, _ := ClientCookieKeys("test-hash-secret", "test-block-secret")
	return RouterServices{
		Sessions:    h.registry,
		Access:      h.access,
		Login:       service.NewLoginService(service.LoginServiceOptions{Authenticator: h.authn}),
		Marketplace: service.NewMarketplaceService(service.MarketplaceServiceOptions{API: h.api, Access: h.access}),
		ClientStore: NewClientCookieStore(hashKey, blockKey, ""),
		TemplateFS:  os.DirFS(TemplatePathFromTest),
	}
}

// browser is a cookie-keeping client that does not follow redirects.
type browser struct {
	t      *testing.T
	client *http.Client
	base   *url.URL
}

func (h *harness) newBrowser() *browser {
	h.t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(h.t, err)
	base, err := url.Parse(h.server.URL)
	require.NoError(h.t, err)
	return &browser{
		t:    h.t,
		base: base,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// signIn runs the password and OTP steps as admin and returns the browser.
func (h *harness) signIn(admin domainauth.Admin) *browser {
	h.t.Helper()
	token := "tok-" + admin.Username
	h.authn.Username = admin.Username
	h.authn.Admin = admin
	h.authn.Token = token
	h.validator.Allow(token, admin)

	b := h.newBrowser()
	b.get(access.RouteLogin).Body.Close()

	res := b.post(access.RouteLogin, url.Values{"username": {admin.Username}, "password": {testPassword}})
	res.Body.Close()
	require.Equal(h.t, http.StatusSeeOther, res.StatusCode)

	res = b.post(access.RouteVerifyOTP, url.Values{"otp": {testOTP}})
	res.Body.Close()
	require.Equal(h.t, http.StatusSeeOther, res.StatusCode)
	require.Equal(h.t, access.RouteDashboard, res.Header.Get("Location"))
	return b
}

type header func(*http.Request)

func asHTMX(r *http.Request) { r.Header.Set("Hx-Request", "true") }

func asAPI(r *http.Request) { r.Header.Set("Accept", "application/json") }

func (b *browser) do(method, path string, body io.Reader, hdrs ...header) *http.Response {
	b.t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, b.base.String()+path, body)
	require.NoError(b.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, h := range hdrs {
		h(req)
	}
	res, err := b.client.Do(req)
	require.NoError(b.t, err)
	return res
}

func (b *browser) get(path string, hdrs ...header) *http.Response {
	b.t.Helper()
	return b.do(http.MethodGet, path, nil, hdrs...)
}

// post submits form with the browser's CSRF token attached.
func (b *browser) post(path string, form url.Values, hdrs ...header) *http.Response {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, b.cookie(DefaultCSRFCookieName))
	return b.do(http.MethodPost, path, strings.NewReader(form.Encode()), hdrs...)
}

func (b *browser) cookie(name string) string {
	for _, c := range b.client.Jar.Cookies(b.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func testSupportAdmin() domainauth.Admin {
	return domainauth.Admin{ID: "a-3", Username: "helpdesk", Phone: "9000000003", Role: domainauth.RoleSupport}
}

// backendErr builds the error the backend client returns for a JSON error
// response carrying msg.
func backendErr(status int, msg string) *backend.APIError {
	e := &backend.APIError{Op: "test", Status: status}
	if msg != "" {
		e.Message = msg
		e.Body = map[string]any{"message": msg}
	}
	return e
}

func testMarketingAdmin() domainauth.Admin {
	return domainauth.Admin{ID: "a-6", Username: "promo", Phone: "9000000006", Role: domainauth.RoleMarketing}
}
