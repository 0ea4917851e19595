package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueInput describes a token to mint.
type IssueInput struct {
	Subject  string
	TenantID string
	Name     string
	Avatar   string
	Scopes   []string
	TTL      time.Duration
}

// Issue mints an HS256 token accepted by Parse with the same Config. It stands in for the
// external identity provider during local development and tests.
func Issue(cfg Config, in IssueInput) (string, error) {
	if in.Subject == "" || in.TenantID == "" {
		return "", errors.New("subject and tenant are required")
	}
	ttl := in.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":       in.Subject,
		"tenant_id": in.TenantID,
		"scopes":    in.Scopes,
		"iss":       cfg.Issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	if in.Name != "" {
		claims["name"] = in.Name
	}
	if in.Avatar != "" {
		claims["avatar"] = in.Avatar
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
