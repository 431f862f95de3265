package httpx

import (
	"crypto/sha256"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	// DefaultClientCookieName names the signed cookie carrying the client id.
	DefaultClientCookieName = "hm_client"
	clientIDValue           = "cid"
	clientCookieMaxAge      = 365 * 24 * 60 * 60
)

// ClientCookieKeys derives the cookie signing and encryption keys from the
// configured secrets. An empty hash secret yields a random key, so cookies do
// not survive a restart. An empty block secret disables encryption.
func ClientCookieKeys(hashSecret, blockSecret string) (hashKey, blockKey []byte, random bool) {
	if hashSecret == "" {
		hashKey = securecookie.GenerateRandomKey(64)
		random = true
	} else {
		h := sha256.Sum256([]byte("auth:" + hashSecret))
		hashKey = h[:]
	}
	if blockSecret != "" {
		b := sha256.Sum256([]byte("enc:" + blockSecret))
		blockKey = b[:]
	}
	return hashKey, blockKey, random
}

// NewClientCookieStore builds the cookie store that holds client ids.
func NewClientCookieStore(hashKey, blockKey []byte, domain string) *sessions.CookieStore {
	var pairs [][]byte
	if blockKey != nil {
		pairs = [][]byte{hashKey, blockKey}
	} else {
		pairs = [][]byte{hashKey}
	}
	store := sessions.NewCookieStore(pairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   clientCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// ClientIdentityConfig configures ClientIdentity.
type ClientIdentityConfig struct {
	Store      sessions.Store // Required
	CookieName string
	Logger     *slog.Logger
}

// ClientIdentity gives every browser a stable client id kept in a signed
// cookie and puts it in the request context. A missing or tampered cookie is
// replaced with a fresh id, which starts a signed-out session.
func ClientIdentity(cfg ClientIdentityConfig) Middleware {
	if cfg.Store == nil {
		panic("ClientIdentity: cookie store is required")
	}
	name := cfg.CookieName
	if name == "" {
		name = DefaultClientCookieName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := cfg.Store.Get(r, name)
			if err != nil {
				logger.DebugContext(r.Context(), "client cookie rejected", "error", err)
			}
			if sess == nil {
				http.Error(w, "unable to establish client session", http.StatusInternalServerError)
				return
			}
			id, _ := sess.Values[clientIDValue].(string)
			if _, perr := uuid.Parse(id); perr != nil {
				id = uuid.NewString()
				sess.Values[clientIDValue] = id
				if sess.Options != nil {
					opts := *sess.Options
					opts.Secure = r.TLS != nil || isForwardedHTTPS(r)
					sess.Options = &opts
				}
				if err := sess.Save(r, w); err != nil {
					logger.ErrorContext(r.Context(), "issue client cookie", "error", err)
					http.Error(w, "unable to establish client session", http.StatusInternalServerError)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
		})
	}
}
