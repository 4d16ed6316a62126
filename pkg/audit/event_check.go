package audit

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// CheckEvent represents a permission check against a session.
type CheckEvent struct {
	UserID      int64
	Permission  string
	Permissions []string
	Role        string
	Allowed     bool
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) subject() string {
	switch {
	case e.Permission != "":
		return e.Permission
	case len(e.Permissions) > 0:
		return strings.Join(e.Permissions, ",")
	case e.Role != "":
		return "role " + e.Role
	}
	return "(empty check)"
}

func (e CheckEvent) Message() string {
	verdict := "denied"
	if e.Allowed {
		verdict = "allowed"
	}
	return fmt.Sprintf("user %d %s %s", e.UserID, verdict, e.subject())
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"user_id": e.UserID,
		"subject": e.subject(),
		"allowed": e.Allowed,
	}
}
