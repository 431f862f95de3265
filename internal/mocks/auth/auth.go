// Package auth contains hand-written test doubles for the session ports.
// They are safe for concurrent use so registry and guard tests can share them.
package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/ports"
)

var (
	_ ports.IdentityValidator  = (*StubValidator)(nil)
	_ ports.TokenStore         = (*FlakyTokenStore)(nil)
	_ ports.AdminAuthenticator = (*StubAuthenticator)(nil)
)

// ErrInvalidToken is returned by StubValidator for tokens it does not know.
var ErrInvalidToken = errors.New("invalid token")

// ErrInjected is the default failure returned by FlakyTokenStore.
var ErrInjected = errors.New("injected store failure")

// StubValidator resolves tokens from a fixed table.
type StubValidator struct {
	mu     sync.Mutex
	admins map[string]domainauth.Admin
	calls  atomic.Int64

	// Delay is applied before answering; the wait honors ctx.
	Delay time.Duration
	// Gate, when set, blocks every call until it is closed or ctx ends.
	Gate chan struct{}
}

// NewStubValidator returns a validator that accepts exactly the given tokens.
func NewStubValidator(admins map[string]domainauth.Admin) *StubValidator {
	v := &StubValidator{admins: make(map[string]domainauth.Admin, len(admins))}
	for tok, a := range admins {
		v.admins[tok] = a
	}
	return v
}

// Allow registers token as valid for admin.
func (v *StubValidator) Allow(token string, admin domainauth.Admin) {
	v.mu.Lock()
	v.admins[token] = admin
	v.mu.Unlock()
}

// Revoke makes token invalid.
func (v *StubValidator) Revoke(token string) {
	v.mu.Lock()
	delete(v.admins, token)
	v.mu.Unlock()
}

// Calls reports how many times Profile was invoked.
func (v *StubValidator) Calls() int { return int(v.calls.Load()) }

func (v *StubValidator) Profile(ctx context.Context, token string) (domainauth.Admin, error) {
	v.calls.Add(1)
	if v.Gate != nil {
		select {
		case <-v.Gate:
		case <-ctx.Done():
			return domainauth.Admin{}, ctx.Err()
		}
	}
	if v.Delay > 0 {
		t := time.NewTimer(v.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return domainauth.Admin{}, ctx.Err()
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	a, ok := v.admins[token]
	if !ok {
		return domainauth.Admin{}, ErrInvalidToken
	}
	return a, nil
}

// FlakyTokenStore is an in-memory TokenStore whose operations can be made to fail.
type FlakyTokenStore struct {
	mu        sync.Mutex
	values    map[string]string
	ttls      map[string]time.Duration
	failLoad  error
	failSave  error
	failDel   error
	saveCalls int
}

// NewFlakyTokenStore returns an empty store that succeeds until told otherwise.
func NewFlakyTokenStore() *FlakyTokenStore {
	return &FlakyTokenStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

// FailLoad makes Load return err. A nil err restores normal behavior.
func (s *FlakyTokenStore) FailLoad(err error) { s.set(&s.failLoad, err) }

// FailSave makes Save return err.
func (s *FlakyTokenStore) FailSave(err error) { s.set(&s.failSave, err) }

// FailDelete makes Delete return err.
func (s *FlakyTokenStore) FailDelete(err error) { s.set(&s.failDel, err) }

func (s *FlakyTokenStore) set(dst *error, err error) {
	s.mu.Lock()
	*dst = err
	s.mu.Unlock()
}

// Put seeds key without going through Save.
func (s *FlakyTokenStore) Put(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// Get returns the raw stored value.
func (s *FlakyTokenStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// TTL returns the ttl passed to the last successful Save of key.
func (s *FlakyTokenStore) TTL(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttls[key]
}

// SaveCalls counts Save invocations, failed ones included.
func (s *FlakyTokenStore) SaveCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCalls
}

func (s *FlakyTokenStore) Load(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLoad != nil {
		return "", s.failLoad
	}
	v, ok := s.values[key]
	if !ok {
		return "", ports.ErrTokenNotFound
	}
	return v, nil
}

func (s *FlakyTokenStore) Save(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.failSave != nil {
		return s.failSave
	}
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *FlakyTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel != nil {
		return s.failDel
	}
	delete(s.values, key)
	delete(s.ttls, key)
	return nil
}

// StubAuthenticator answers the password and OTP steps from fixed credentials.
type StubAuthenticator struct {
	Username string
	Password string
	OTP      string
	Token    string
	Admin    domainauth.Admin
	Phone    string

	// Err, when set, is returned by both steps.
	Err error
}

func (a *StubAuthenticator) Login(_ context.Context, username, password string) (model.LoginChallenge, error) {
	if a.Err != nil {
		return model.LoginChallenge{}, a.Err
	}
	if username != a.Username || password != a.Password {
		return model.LoginChallenge{}, ErrInvalidToken
	}
	return model.LoginChallenge{Message: "OTP sent", PhoneSuffix: a.Phone}, nil
}

func (a *StubAuthenticator) VerifyOTP(_ context.Context, username, otp string) (model.VerifiedLogin, error) {
	if a.Err != nil {
		return model.VerifiedLogin{}, a.Err
	}
	if username != a.Username || otp != a.OTP {
		return model.VerifiedLogin{}, ErrInvalidToken
	}
	admin := a.Admin
	return model.VerifiedLogin{Token: a.Token, Admin: admin}, nil
}
