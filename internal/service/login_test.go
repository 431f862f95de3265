package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/haulmatch/admin-console/internal/domain/model"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/mocks"
	authmocks "github.com/haulmatch/admin-console/internal/mocks/auth"
	"github.com/haulmatch/admin-console/internal/observability/metrics"
	"github.com/haulmatch/admin-console/internal/observability/statsd"
)

// statusErr mimics the backend client's error for classification tests.
type statusErr struct {
	status int
	msg    string
}

func (e *statusErr) Error() string         { return http.StatusText(e.status) }
func (e *statusErr) HTTPStatus() int       { return e.status }
func (e *statusErr) ServerMessage() string { return e.msg }

func TestLoginService_FullFlow(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)
	m := f.manager("c1")
	m.Initialize(ctx, "/login")

	rec := &statsd.Recorder{}
	svc := NewLoginService(LoginServiceOptions{
		Authenticator: &authmocks.StubAuthenticator{
			Username: "root", Password: "s3cret-pass", OTP: "123456",
			Token: "issued", Admin: superAdmin, Phone: "**10",
		},
		Metrics: metrics.NewSessionMetrics(rec),
	})

	challenge, err := svc.Begin(ctx, m, " root ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "**10", challenge.PhoneSuffix)
	u, ok := m.PendingUsername(ctx)
	require.True(t, ok)
	assert.Equal(t, "root", u)

	admin, err := svc.Verify(ctx, m, "123456")
	require.NoError(t, err)
	assert.Equal(t, superAdmin, admin)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "issued", m.Token())
	_, ok = m.PendingUsername(ctx)
	assert.False(t, ok)
	assert.Len(t, rec.Named("session.login"), 2)
}

func TestLoginService_BeginValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAdminAuthenticator(ctrl)
	svc := NewLoginService(LoginServiceOptions{Authenticator: auth})
	m := newSessionFixture(t).manager("c1")

	_, err := svc.Begin(context.Background(), m, "", "x")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "username", apperrors.GetField(err))

	_, err = svc.Begin(context.Background(), m, "root", "")
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestLoginService_BeginBackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAdminAuthenticator(ctrl)
	svc := NewLoginService(LoginServiceOptions{Authenticator: auth})
	ctx := context.Background()
	m := newSessionFixture(t).manager("c1")

	auth.EXPECT().Login(gomock.Any(), "root", "wrong").
		Return(model.LoginChallenge{}, &statusErr{status: http.StatusUnauthorized, msg: "Invalid credentials"})
	_, err := svc.Begin(ctx, m, "root", "wrong")
	assert.True(t, apperrors.IsUnauthenticated(err))
	assert.Equal(t, "Invalid credentials", apperrors.GetMessage(err, ""))

	auth.EXPECT().Login(gomock.Any(), "root", "pw").
		Return(model.LoginChallenge{}, &statusErr{status: http.StatusBadGateway})
	_, err = svc.Begin(ctx, m, "root", "pw")
	assert.True(t, apperrors.IsBackend(err))
	assert.Equal(t, "Login failed", apperrors.GetMessage(err, ""))

	_, pending := m.PendingUsername(ctx)
	assert.False(t, pending)
}

func TestLoginService_VerifyRequiresPendingUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewLoginService(LoginServiceOptions{Authenticator: mocks.NewMockAdminAuthenticator(ctrl)})
	m := newSessionFixture(t).manager("c1")

	_, err := svc.Verify(context.Background(), m, "123456")
	assert.True(t, apperrors.IsUnauthenticated(err))
}

func TestLoginService_VerifyRejectsMalformedOTP(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	svc := NewLoginService(LoginServiceOptions{Authenticator: mocks.NewMockAdminAuthenticator(ctrl)})
	m := newSessionFixture(t).manager("c1")
	require.NoError(t, m.SetPendingUsername(ctx, "root"))

	for _, otp := range []string{"", "12345", "12a456", "1234567"} {
		_, err := svc.Verify(ctx, m, otp)
		assert.Equal(t, "otp", apperrors.GetField(err), otp)
	}
}

func TestLoginService_VerifyBackendRejection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAdminAuthenticator(ctrl)
	svc := NewLoginService(LoginServiceOptions{Authenticator: auth})
	m := newSessionFixture(t).manager("c1")
	require.NoError(t, m.SetPendingUsername(ctx, "root"))

	auth.EXPECT().VerifyOTP(gomock.Any(), "root", "000000").
		Return(model.VerifiedLogin{}, &statusErr{status: http.StatusBadRequest, msg: "Invalid OTP"})

	_, err := svc.Verify(ctx, m, "000000")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Invalid OTP", apperrors.GetMessage(err, ""))
	assert.False(t, m.IsAuthenticated())
	_, ok := m.PendingUsername(ctx)
	assert.True(t, ok, "a wrong OTP can be retried")
}
