package backend

import (
	"context"
	"net/http"
	"strings"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
)

// Login starts the password step; on success the backend sends an OTP to the admin's phone.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginChallenge, error) {
	var out model.LoginChallenge
	err := c.Do(ctx, Request{
		Path:   "/admin/login",
		Method: http.MethodPost,
		Body:   map[string]string{"username": strings.TrimSpace(username), "password": password},
	}, &out)
	return out, err
}

// VerifyOTP completes the login and returns the bearer token with the admin identity.
func (c *Client) VerifyOTP(ctx context.Context, username, otp string) (model.VerifiedLogin, error) {
	var out model.VerifiedLogin
	err := c.Do(ctx, Request{
		Path:   "/admin/verify-otp",
		Method: http.MethodPost,
		Body:   map[string]string{"username": strings.TrimSpace(username), "otp": strings.TrimSpace(otp)},
	}, &out)
	if err != nil {
		return model.VerifiedLogin{}, err
	}
	if out.Token == "" {
		return model.VerifiedLogin{}, &APIError{Op: "POST /admin/verify-otp", Status: http.StatusInternalServerError, Message: "response carried no token"}
	}
	return out, nil
}

// Profile resolves token to its admin. It is the token validation call.
func (c *Client) Profile(ctx context.Context, token string) (domainauth.Admin, error) {
	var out struct {
		Admin domainauth.Admin `json:"admin"`
	}
	if err := c.Do(ctx, Request{Path: "/admin/profile", RequireAuth: true, Token: token}, &out); err != nil {
		return domainauth.Admin{}, err
	}
	if err := out.Admin.Validate(); err != nil {
		return domainauth.Admin{}, &APIError{Op: "GET /admin/profile", Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return out.Admin, nil
}
