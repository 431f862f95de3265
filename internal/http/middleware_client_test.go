package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func clientIdentityHandler(t *testing.T, seen *string) http.Handler {
	t.Helper()
	hashKey, blockKey, random := ClientCookieKeys("hash", "block")
	if random {
		t.Fatal("configured secrets must not produce random keys")
	}
	store := NewClientCookieStore(hashKey, blockKey, "")
	return ClientIdentity(ClientIdentityConfig{Store: store})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = ClientIDFromContext(r.Context())
	}))
}

func TestClientIdentity_IssuesAndKeepsID(t *testing.T) {
	var seen string
	handler := clientIdentityHandler(t, &seen)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	res := rec.Result()
	t.Cleanup(func() { _ = res.Body.Close() })

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a uuid client id, got %q", seen)
	}
	cookie := findCookie(res, DefaultClientCookieName)
	if cookie == nil {
		t.Fatal("client cookie not issued")
	}
	if !cookie.HttpOnly {
		t.Error("client cookie must be HttpOnly")
	}
	first := seen

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	res2 := rec.Result()
	t.Cleanup(func() { _ = res2.Body.Close() })

	if seen != first {
		t.Fatalf("client id changed: %q then %q", first, seen)
	}
	if findCookie(res2, DefaultClientCookieName) != nil {
		t.Error("a valid cookie should not be re-issued")
	}
}

func TestClientIdentity_TamperedCookieStartsFresh(t *testing.T) {
	var seen string
	handler := clientIdentityHandler(t, &seen)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: DefaultClientCookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	res := rec.Result()
	t.Cleanup(func() { _ = res.Body.Close() })

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
	if findCookie(res, DefaultClientCookieName) == nil {
		t.Error("expected a replacement cookie")
	}
}

func TestClientCookieKeys(t *testing.T) {
	h1, b1, random := ClientCookieKeys("a", "")
	if random || b1 != nil {
		t.Fatal("hash secret only: expected deterministic key and no encryption")
	}
	h2, _, _ := ClientCookieKeys("a", "")
	if string(h1) != string(h2) {
		t.Error("same secret must derive the same key")
	}
	if _, _, random := ClientCookieKeys("", ""); !random {
		t.Error("empty secret must yield a random key")
	}
}
