package revocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	t.Run("auth event", func(t *testing.T) {
		event, err := ParseEvent([]byte(`{"type":"auth","userId":"7"}`))
		require.NoError(t, err)
		assert.Equal(t, EventAuth, event.Type)
		assert.Equal(t, "7", event.UserID)
	})

	t.Run("permissions update carries slugs", func(t *testing.T) {
		event, err := ParseEvent([]byte(`{"type":"permissions-updated","userId":"7","permissions":["model:read"]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"model:read"}, event.Permissions)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{"userId":"7"}`))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{nope`))
		assert.Error(t, err)
	})
}

func TestEventTargeted(t *testing.T) {
	targeted := []EventType{EventSessionRevoked, EventPermissionsUpdated, EventRoleChanged}
	for _, typ := range targeted {
		assert.True(t, Event{Type: typ}.Targeted(), string(typ))
	}

	untargeted := []EventType{EventAuth, EventPing, EventPong}
	for _, typ := range untargeted {
		assert.False(t, Event{Type: typ}.Targeted(), string(typ))
	}
}
