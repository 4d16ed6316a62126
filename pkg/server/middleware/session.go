package middleware

import (
	"errors"
	"net"
	"net/http"
	"regexp"

	"github.com/veridian-labs/warden/pkg/identity"
	"github.com/veridian-labs/warden/pkg/session"
)

var bearerRegex = regexp.MustCompile(`^Bearer (\S+)$`)

// SessionAuthenticator is middleware that validates session tokens.
type SessionAuthenticator struct {
	Issuer *session.Issuer
}

// NewSessionAuthenticator creates session-validating middleware.
func NewSessionAuthenticator(issuer *session.Issuer) *SessionAuthenticator {
	return &SessionAuthenticator{Issuer: issuer}
}

// Middleware returns an HTTP middleware that validates session tokens and
// stores the request identity in the context. Requests with a lapsed idle
// window get a distinct "Session expired" response so clients know to
// re-authenticate rather than retry.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Issuer.Verify(tokenMatches[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			if errors.Is(err, session.ErrSessionExpired) {
				w.Write([]byte("Session expired"))
			} else {
				w.Write([]byte("Invalid session token"))
			}
			return
		}

		id := identity.FromClaims(claims)
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id = id.WithRemoteIP(net.ParseIP(host))
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
