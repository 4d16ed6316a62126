package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
)

func sampleClaims() *Claims {
	return &Claims{
		UserID:      7,
		Login:       "alice",
		ActiveOrgID: 10,
		Roles: []authz.RoleContext{
			{ID: 1, Name: "Editor", OrganizationID: 10, Policies: []authz.PolicyClaim{
				{Slug: "model:read"}, {Slug: "model:update"},
			}},
			{ID: 2, Name: "Owner", OrganizationID: 20, Policies: []authz.PolicyClaim{
				{Slug: catalog.FullAccess},
			}},
		},
	}
}

func TestClaims_RoleAccessors(t *testing.T) {
	claims := sampleClaims()

	assert.Equal(t, "Editor", claims.PrimaryRole())
	require.Len(t, claims.ActiveRoles(), 1)
	assert.Equal(t, "Editor", claims.ActiveRoles()[0].Name)

	t.Run("no role in active org", func(t *testing.T) {
		claims := sampleClaims()
		claims.ActiveOrgID = 99
		assert.Equal(t, "", claims.PrimaryRole())
		assert.Empty(t, claims.ActiveRoles())
	})
}

func TestClaims_Identity(t *testing.T) {
	id := sampleClaims().Identity()

	assert.True(t, id.Authenticated)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, "Editor", id.PrimaryRole)
	assert.True(t, id.Permissions.Has("model:read"))

	// The inactive org's full access must not leak into the identity
	assert.False(t, id.Permissions.Has(catalog.FullAccess))
	assert.False(t, id.HasPermission("model:delete"))
}

func TestClaims_WithPermissions(t *testing.T) {
	claims := sampleClaims()
	next := claims.WithPermissions([]string{"rate_card:read"}, catalog.Builtin())

	t.Run("receiver unchanged", func(t *testing.T) {
		assert.True(t, claims.Identity().HasPermission("model:read"))
	})

	t.Run("active org replaced", func(t *testing.T) {
		id := next.Identity()
		assert.True(t, id.HasPermission("rate_card:read"))
		assert.False(t, id.HasPermission("model:read"))
		assert.Equal(t, "Editor", next.PrimaryRole())
	})

	t.Run("other org roles survive", func(t *testing.T) {
		var names []string
		for _, role := range next.Roles {
			names = append(names, role.Name)
		}
		assert.Contains(t, names, "Owner")
	})

	t.Run("catalog metadata attached", func(t *testing.T) {
		policies := next.ActiveRoles()[0].Policies
		require.Len(t, policies, 1)
		assert.Equal(t, "View rate cards", policies[0].Name)
	})

	t.Run("idempotent for the same slug set", func(t *testing.T) {
		again := next.WithPermissions([]string{"rate_card:read"}, catalog.Builtin())
		assert.Equal(t, next.Identity().Permissions.Slugs(), again.Identity().Permissions.Slugs())
	})
}
