package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a token without verifying it. It is
// informational only: the client never rejects a token based on it.
type TokenInfo struct {
	Present   bool
	Opaque    bool
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// TokenInfo inspects the stored token. JWTs have their registered claims
// decoded without signature verification; anything else is reported as
// opaque.
func (s *Store) TokenInfo() TokenInfo {
	token, ok := s.Token()
	if !ok {
		return TokenInfo{}
	}
	return inspectToken(token)
}

func inspectToken(token string) TokenInfo {
	info := TokenInfo{Present: true}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		info.Opaque = true
		return info
	}

	info.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info
}
