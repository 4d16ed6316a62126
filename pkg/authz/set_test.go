package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPermissionSet(t *testing.T) {
	t.Run("dedupes preserving first-seen order", func(t *testing.T) {
		set := NewPermissionSet("model:read", "rate_card:read", "model:read")
		assert.Equal(t, []string{"model:read", "rate_card:read"}, set.Slugs())
		assert.Equal(t, 2, set.Len())
	})

	t.Run("drops empty slugs", func(t *testing.T) {
		set := NewPermissionSet("", "model:read", "")
		assert.Equal(t, 1, set.Len())
		assert.False(t, set.Has(""))
	})

	t.Run("membership is exact", func(t *testing.T) {
		set := NewPermissionSet("model:read")
		assert.True(t, set.Has("model:read"))
		assert.False(t, set.Has("model:Read"))
		assert.False(t, set.Has("model"))
	})

	t.Run("zero value is empty", func(t *testing.T) {
		var set PermissionSet
		assert.Equal(t, 0, set.Len())
		assert.False(t, set.Has("model:read"))
		assert.Empty(t, set.Slugs())
	})

	t.Run("slugs returns a copy", func(t *testing.T) {
		set := NewPermissionSet("model:read", "model:create")
		slugs := set.Slugs()
		slugs[0] = "mutated"
		assert.Equal(t, []string{"model:read", "model:create"}, set.Slugs())
	})
}

func TestFlatten(t *testing.T) {
	roles := []RoleContext{
		{
			ID:   1,
			Name: "Editor",
			Policies: []PolicyClaim{
				{Slug: "model:read"},
				{Slug: "model:update"},
			},
		},
		{
			ID:   2,
			Name: "Billing",
			Policies: []PolicyClaim{
				{Slug: "rate_card:read"},
				{Slug: "model:read"}, // duplicate across roles
			},
		},
	}

	set := Flatten(roles)
	assert.Equal(t, []string{"model:read", "model:update", "rate_card:read"}, set.Slugs())

	t.Run("no roles", func(t *testing.T) {
		assert.Equal(t, 0, Flatten(nil).Len())
	})
}
