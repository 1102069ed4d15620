package domain

import "time"

type SessionKind string

const (
	SessionAccess  SessionKind = "access"
	SessionRefresh SessionKind = "refresh"
)

// Session is the server-side record behind a bearer or refresh token. Only
// the fingerprint of the token is kept.
type Session struct {
	ID        string
	UserID    int64
	Kind      SessionKind
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TokenPair is what login, register and refresh hand back to the client.
type TokenPair struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
}
