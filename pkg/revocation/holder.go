package revocation

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/session"
)

// Holder owns the current session snapshot. Readers always see a
// fully-formed claims value: updates replace the whole pointer, never
// individual fields.
type Holder struct {
	current atomic.Pointer[session.Claims]
}

// Load returns the current snapshot, or nil when signed out.
func (h *Holder) Load() *session.Claims {
	return h.current.Load()
}

// Replace swaps in a new snapshot wholesale. A nil value signs the
// session out.
func (h *Holder) Replace(claims *session.Claims) {
	h.current.Store(claims)
}

// Identity materializes the evaluator identity for the current snapshot.
// Returns an unauthenticated identity when no session is held, so every
// permission check denies.
func (h *Holder) Identity() *authz.Identity {
	claims := h.Load()
	if claims == nil {
		return &authz.Identity{}
	}
	return claims.Identity()
}

// SessionHandler is the standard Handler wiring: it keeps a Holder
// consistent with pushed authorization changes.
type SessionHandler struct {
	holder  *Holder
	catalog *catalog.Catalog
	log     *logrus.Logger

	// refresh re-derives the session from the server (the Session Issuer
	// run from scratch). Invoked for role changes.
	refresh func(ctx context.Context, claims *session.Claims) (*session.Claims, error)

	// signOut runs the remote sign-out flow. Invoked after local state is
	// already cleared, so the UI cannot race a stale authenticated render.
	signOut func(ctx context.Context)
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(
	holder *Holder,
	cat *catalog.Catalog,
	refresh func(ctx context.Context, claims *session.Claims) (*session.Claims, error),
	signOut func(ctx context.Context),
	log *logrus.Logger,
) *SessionHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SessionHandler{
		holder:  holder,
		catalog: cat,
		refresh: refresh,
		signOut: signOut,
		log:     log,
	}
}

// SessionRevoked clears the local session before anything else, then runs
// the remote sign-out flow. Idempotent: a second invocation finds no
// session and the sign-out flow is expected to tolerate repeats.
func (s *SessionHandler) SessionRevoked(ctx context.Context) {
	s.holder.Replace(nil)
	if s.signOut != nil {
		s.signOut(ctx)
	}
}

// PermissionsUpdated hot-swaps the effective permission set, shaping the
// pushed slug list the way the aggregator would have. No session means
// nothing to patch.
func (s *SessionHandler) PermissionsUpdated(ctx context.Context, permissions []string) {
	current := s.holder.Load()
	if current == nil {
		return
	}
	s.holder.Replace(current.WithPermissions(permissions, s.catalog))
}

// RoleChanged re-derives the whole session. A failed refresh keeps the old
// snapshot; the idle timeout remains the backstop.
func (s *SessionHandler) RoleChanged(ctx context.Context) {
	current := s.holder.Load()
	if current == nil {
		return
	}
	refreshed, err := s.refresh(ctx, current)
	if err != nil {
		s.log.WithError(err).Warn("session refresh after role change failed")
		return
	}
	s.holder.Replace(refreshed)
}
