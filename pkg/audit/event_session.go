package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SessionAction enumerates session lifecycle transitions.
type SessionAction string

const (
	SessionIssued    SessionAction = "issued"
	SessionRefreshed SessionAction = "refreshed"
	SessionExpired   SessionAction = "expired"
	SessionRevoked   SessionAction = "revoked"
)

// SessionEvent represents a session lifecycle transition.
type SessionEvent struct {
	UserID      int64
	SessionID   string
	ActiveOrgID int64
	Action      SessionAction
}

func (e SessionEvent) MessageID() string {
	return "session"
}

func (e SessionEvent) Message() string {
	return fmt.Sprintf("session %s for user %d", e.Action, e.UserID)
}

func (e SessionEvent) Severity() Severity {
	if e.Action == SessionRevoked {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e SessionEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"user_id":    e.UserID,
		"session_id": e.SessionID,
		"org_id":     e.ActiveOrgID,
		"action":     string(e.Action),
	}
}
