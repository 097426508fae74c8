package auth

import (
	"log/slog"
	"net/http"
)

// SessionCookie is the cookie that carries the signed session token.
const SessionCookie = "token"

// SessionGuard recovers the authenticated identity from an inbound request.
// It never returns an error: a missing, malformed, expired, or forged token
// all resolve to anonymous. Which routes require authentication is decided
// by each handler, not here.
type SessionGuard struct {
	tokens *TokenManager
}

// NewSessionGuard constructs the guard.
func NewSessionGuard(tokens *TokenManager) *SessionGuard {
	return &SessionGuard{tokens: tokens}
}

// FromRequest returns the request's identity and whether one was present.
func (g *SessionGuard) FromRequest(r *http.Request) (Identity, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return Identity{}, false
	}
	identity, err := g.tokens.Verify(cookie.Value)
	if err != nil {
		slog.Debug("session token rejected", "error", err)
		return Identity{}, false
	}
	return identity, true
}
