package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Introspection is what the client can learn about a cached token without
// the backend's signing key. The backend remains the authority; this only
// lets the client skip sending a token it already knows is stale.
type Introspection struct {
	JWT       bool      // The token parsed as a JWT
	Subject   string    // sub claim, if present
	Role      string    // role claim, if present
	ExpiresAt time.Time // Zero when the token carries no exp claim
}

// Expired reports whether the token's exp claim is at or before now
func (i Introspection) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect reads the unverified claims of raw. Opaque (non-JWT) tokens yield
// an Introspection with JWT=false and no expiry.
func Inspect(raw string) Introspection {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Introspection{}
	}

	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, claims); err != nil {
		return Introspection{}
	}

	info := Introspection{JWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	return info
}

// OAuth2Token wraps raw as a bearer token, carrying the JWT expiry when there is one
func OAuth2Token(raw string) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
		Expiry:      Inspect(raw).ExpiresAt,
	}
}
