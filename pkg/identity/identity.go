package identity

import (
	"context"
	"net"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
// It combines the verified session claims with request-specific context.
type Identity struct {
	Claims  *session.Claims
	Subject *authz.Identity

	// Request context
	RemoteIP net.IP
}

// FromClaims creates an Identity from verified session claims.
func FromClaims(claims *session.Claims) *Identity {
	return &Identity{
		Claims:  claims,
		Subject: claims.Identity(),
	}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// UserID returns the authenticated user id, or 0 when unauthenticated.
func (i *Identity) UserID() int64 {
	if i == nil || i.Claims == nil {
		return 0
	}
	return i.Claims.UserID
}

// Can evaluates a permission check against this identity. A nil identity
// denies every check.
func (i *Identity) Can(check authz.Check) bool {
	if i == nil {
		return false
	}
	return authz.Evaluate(i.Subject, check)
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
