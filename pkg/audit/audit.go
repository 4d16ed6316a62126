package audit

import "github.com/sirupsen/logrus"

// Severity levels for audit events.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// Event represents an audit event.
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Fields() logrus.Fields
}

// Logger writes audit events as structured log entries.
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates an audit logger on top of a logrus logger.
func NewLogger(log *logrus.Logger) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logger{log: log}
}

// Log writes one audit event.
func (l *Logger) Log(event Event) {
	entry := l.log.WithFields(event.Fields()).WithField("audit_id", event.MessageID())
	switch event.Severity() {
	case SeverityWarning:
		entry.Warn(event.Message())
	default:
		entry.Info(event.Message())
	}
}
