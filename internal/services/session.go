package services

import "time"

// SessionPhase enumerates the auth session lifecycle states.
type SessionPhase int

const (
	LoggedOut SessionPhase = iota
	PendingRedirect
	LoggedIn
)

func (p SessionPhase) String() string {
	switch p {
	case LoggedOut:
		return "logged_out"
	case PendingRedirect:
		return "pending_redirect"
	case LoggedIn:
		return "logged_in"
	default:
		return ""
	}
}

// AuthSession holds the catalog provider access token and its lifecycle
// state. At most one live session exists per client instance; the owning
// SpotifyClient is the only writer.
type AuthSession struct {
	AccessToken string
	Expiry      time.Time
	OAuthState  string // anti-forgery value recorded during the redirect round-trip
	Phase       SessionPhase
}

// Live reports whether the session holds a token whose expiry is in the
// future at time now.
func (s *AuthSession) Live(now time.Time) bool {
	return s != nil && s.Phase == LoggedIn && s.AccessToken != "" && now.Before(s.Expiry)
}

// SessionStore persists an AuthSession across process restarts. It is a
// durable side-store, not a second writer: only the owning client mutates
// the session.
type SessionStore interface {
	Load() (*AuthSession, error)
	Save(session *AuthSession) error
	Clear() error
}
