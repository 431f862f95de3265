package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/observability/metrics"
	"github.com/haulmatch/admin-console/internal/ports"
)

// OTPLength is the number of digits the backend sends.
const OTPLength = 6

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	Authenticator ports.AdminAuthenticator // Required
	Metrics       *metrics.SessionMetrics  // Optional
	Logger        *slog.Logger             // Optional
}

// LoginService runs the password then OTP sign-in against the backend and hands
// the resulting token to the client's Manager.
type LoginService struct {
	auth    ports.AdminAuthenticator
	metrics *metrics.SessionMetrics
	logger  *slog.Logger
}

// NewLoginService constructs a LoginService.
func NewLoginService(opts LoginServiceOptions) *LoginService {
	if opts.Authenticator == nil {
		panic("AdminAuthenticator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		auth:    opts.Authenticator,
		metrics: opts.Metrics,
		logger:  logger.With("component", "login"),
	}
}

// Begin checks the password with the backend, which then sends an OTP, and
// records username as pending on m.
func (s *LoginService) Begin(ctx context.Context, m *Manager, username, password string) (model.LoginChallenge, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.LoginChallenge{}, apperrors.ValidationField("username", "Username is required")
	}
	if password == "" {
		return model.LoginChallenge{}, apperrors.ValidationField("password", "Password is required")
	}

	challenge, err := s.auth.Login(ctx, username, password)
	s.metrics.Login("password", err)
	if err != nil {
		return model.LoginChallenge{}, classifyBackendError(err, "Login failed")
	}
	if err := m.SetPendingUsername(ctx, username); err != nil {
		return model.LoginChallenge{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not start OTP verification")
	}
	s.logger.InfoContext(ctx, "otp requested", "username", username)
	return challenge, nil
}

// Verify submits otp for the pending username and, on success, signs m in.
func (s *LoginService) Verify(ctx context.Context, m *Manager, otp string) (domainauth.Admin, error) {
	username, ok := m.PendingUsername(ctx)
	if !ok {
		return domainauth.Admin{}, apperrors.Unauthenticated("Your login attempt expired. Please sign in again.")
	}
	otp = strings.TrimSpace(otp)
	if err := validateOTP(otp); err != nil {
		return domainauth.Admin{}, err
	}

	verified, err := s.auth.VerifyOTP(ctx, username, otp)
	s.metrics.Login("otp", err)
	if err != nil {
		return domainauth.Admin{}, classifyBackendError(err, "OTP verification failed")
	}
	if err := m.Login(ctx, verified.Token, verified.Admin); err != nil {
		return domainauth.Admin{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not save your session")
	}
	return verified.Admin, nil
}

func validateOTP(otp string) error {
	if otp == "" {
		return apperrors.ValidationField("otp", "OTP is required")
	}
	if len(otp) != OTPLength {
		return apperrors.ValidationField("otp", "OTP must be 6 digits")
	}
	for _, r := range otp {
		if !unicode.IsDigit(r) {
			return apperrors.ValidationField("otp", "OTP must be 6 digits")
		}
	}
	return nil
}
