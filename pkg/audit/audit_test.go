package audit

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogger(log)

	t.Run("info event", func(t *testing.T) {
		buf.Reset()
		logger.Log(AuthenticateEvent{Login: "alice", ClientIP: "10.0.0.1", Success: true})

		out := buf.String()
		assert.Contains(t, out, `"audit_id":"authn"`)
		assert.Contains(t, out, "alice successfully authenticated")
		assert.Contains(t, out, `"level":"info"`)
	})

	t.Run("warning event", func(t *testing.T) {
		buf.Reset()
		logger.Log(AuthenticateEvent{Login: "mallory", Success: false})

		out := buf.String()
		assert.Contains(t, out, "mallory failed to authenticate")
		assert.Contains(t, out, `"level":"warning"`)
	})
}

func TestCheckEvent(t *testing.T) {
	t.Run("single permission", func(t *testing.T) {
		e := CheckEvent{UserID: 7, Permission: "model:read", Allowed: true}
		assert.Equal(t, "user 7 allowed model:read", e.Message())
		assert.Equal(t, SeverityInfo, e.Severity())
	})

	t.Run("denied check warns", func(t *testing.T) {
		e := CheckEvent{UserID: 7, Permission: "model:delete"}
		assert.Equal(t, "user 7 denied model:delete", e.Message())
		assert.Equal(t, SeverityWarning, e.Severity())
	})

	t.Run("permission list", func(t *testing.T) {
		e := CheckEvent{UserID: 7, Permissions: []string{"model:read", "model:update"}, Allowed: true}
		assert.Contains(t, e.Message(), "model:read,model:update")
	})

	t.Run("role check", func(t *testing.T) {
		e := CheckEvent{UserID: 7, Role: "admin"}
		assert.Contains(t, e.Message(), "role admin")
	})

	t.Run("empty check", func(t *testing.T) {
		e := CheckEvent{UserID: 7}
		assert.Contains(t, e.Message(), "(empty check)")
	})
}

func TestSessionEvent(t *testing.T) {
	e := SessionEvent{UserID: 7, SessionID: "abc", ActiveOrgID: 10, Action: SessionIssued}
	assert.Equal(t, "session issued for user 7", e.Message())
	assert.Equal(t, SeverityInfo, e.Severity())

	revoked := SessionEvent{UserID: 7, Action: SessionRevoked}
	assert.Equal(t, SeverityWarning, revoked.Severity())
}
