package revocation

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/session"
)

func testClaims() *session.Claims {
	return &session.Claims{
		UserID:      7,
		Login:       "alice",
		ActiveOrgID: 10,
		Roles: []authz.RoleContext{
			{ID: 1, Name: "Editor", OrganizationID: 10, Policies: []authz.PolicyClaim{
				{Slug: "model:read"},
			}},
		},
	}
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestHolder(t *testing.T) {
	holder := &Holder{}

	t.Run("empty holder denies everything", func(t *testing.T) {
		assert.Nil(t, holder.Load())
		id := holder.Identity()
		assert.False(t, id.Authenticated)
		assert.False(t, authz.Evaluate(id, authz.Check{Permission: "model:read"}))
	})

	t.Run("replace installs a snapshot", func(t *testing.T) {
		holder.Replace(testClaims())
		assert.True(t, holder.Identity().HasPermission("model:read"))
	})

	t.Run("replace with nil signs out", func(t *testing.T) {
		holder.Replace(nil)
		assert.False(t, holder.Identity().HasPermission("model:read"))
	})
}

func TestSessionHandler_SessionRevoked(t *testing.T) {
	holder := &Holder{}
	holder.Replace(testClaims())

	// The local session must already be gone when the sign-out flow runs
	var clearedBeforeSignOut bool
	signOut := func(ctx context.Context) {
		clearedBeforeSignOut = holder.Load() == nil
	}

	handler := NewSessionHandler(holder, catalog.Builtin(), nil, signOut, quietLog())
	handler.SessionRevoked(context.Background())

	assert.Nil(t, holder.Load())
	assert.True(t, clearedBeforeSignOut)

	t.Run("idempotent", func(t *testing.T) {
		handler.SessionRevoked(context.Background())
		assert.Nil(t, holder.Load())
	})
}

func TestSessionHandler_PermissionsUpdated(t *testing.T) {
	holder := &Holder{}
	holder.Replace(testClaims())

	handler := NewSessionHandler(holder, catalog.Builtin(), nil, nil, quietLog())
	handler.PermissionsUpdated(context.Background(), []string{"rate_card:read"})

	id := holder.Identity()
	assert.True(t, id.HasPermission("rate_card:read"))
	assert.False(t, id.HasPermission("model:read"))

	t.Run("empty push revokes all permissions", func(t *testing.T) {
		handler.PermissionsUpdated(context.Background(), nil)
		assert.Equal(t, 0, holder.Identity().Permissions.Len())
	})

	t.Run("no session is a no-op", func(t *testing.T) {
		holder.Replace(nil)
		handler.PermissionsUpdated(context.Background(), []string{"model:read"})
		assert.Nil(t, holder.Load())
	})
}

func TestSessionHandler_RoleChanged(t *testing.T) {
	t.Run("installs the refreshed session", func(t *testing.T) {
		holder := &Holder{}
		holder.Replace(testClaims())

		refreshed := testClaims()
		refreshed.Roles[0].Name = "Owner"
		refresh := func(ctx context.Context, claims *session.Claims) (*session.Claims, error) {
			require.Equal(t, int64(7), claims.UserID)
			return refreshed, nil
		}

		handler := NewSessionHandler(holder, catalog.Builtin(), refresh, nil, quietLog())
		handler.RoleChanged(context.Background())

		assert.Equal(t, "Owner", holder.Load().PrimaryRole())
	})

	t.Run("failed refresh keeps the old snapshot", func(t *testing.T) {
		holder := &Holder{}
		holder.Replace(testClaims())

		refresh := func(ctx context.Context, claims *session.Claims) (*session.Claims, error) {
			return nil, errors.New("server unavailable")
		}

		handler := NewSessionHandler(holder, catalog.Builtin(), refresh, nil, quietLog())
		handler.RoleChanged(context.Background())

		assert.Equal(t, "Editor", holder.Load().PrimaryRole())
	})

	t.Run("no session is a no-op", func(t *testing.T) {
		holder := &Holder{}
		called := false
		refresh := func(ctx context.Context, claims *session.Claims) (*session.Claims, error) {
			called = true
			return nil, nil
		}

		handler := NewSessionHandler(holder, catalog.Builtin(), refresh, nil, quietLog())
		handler.RoleChanged(context.Background())
		assert.False(t, called)
	})
}
