package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned by DescribeToken for tokens that are not JWTs.
var ErrOpaqueToken = errors.New("token is not a JWT")

// TokenInfo is what the console can read from a bearer token without the
// backend's signing key. It is for display only; access is always decided by
// the backend profile call.
type TokenInfo struct {
	Subject   string
	AdminID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim lies before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

type consoleClaims struct {
	AdminID string `json:"adminId"`
	Legacy  string `json:"id"`
	jwt.RegisteredClaims
}

// DescribeToken decodes the claims of token without verifying its signature.
func DescribeToken(token string) (TokenInfo, error) {
	var claims consoleClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, errors.Join(ErrOpaqueToken, err)
	}
	info := TokenInfo{Subject: claims.Subject, AdminID: claims.AdminID}
	if info.AdminID == "" {
		info.AdminID = claims.Legacy
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
