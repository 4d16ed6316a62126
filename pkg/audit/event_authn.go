package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AuthenticateEvent represents a sign-in attempt.
type AuthenticateEvent struct {
	Login    string
	ClientIP string
	Success  bool
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Login)
	}
	return fmt.Sprintf("%s failed to authenticate", e.Login)
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Fields() logrus.Fields {
	return logrus.Fields{
		"login":     e.Login,
		"client_ip": e.ClientIP,
		"success":   e.Success,
	}
}
