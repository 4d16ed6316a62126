package revocation

import (
	"encoding/json"
	"fmt"
)

// EventType tags a revocation channel message.
type EventType string

// Client to server.
const (
	EventAuth EventType = "auth"
	EventPong EventType = "pong"
)

// Server to client.
const (
	EventPing               EventType = "ping"
	EventSessionRevoked     EventType = "session-revoked"
	EventPermissionsUpdated EventType = "permissions-updated"
	EventRoleChanged        EventType = "role-changed"
)

// Event is one wire message on the revocation channel. Events are
// transient: consumed once, never persisted.
type Event struct {
	Type        EventType `json:"type"`
	UserID      string    `json:"userId,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
}

// ParseEvent decodes a wire message.
func ParseEvent(data []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("malformed event: %w", err)
	}
	if event.Type == "" {
		return Event{}, fmt.Errorf("malformed event: missing type")
	}
	return event, nil
}

// Targeted reports whether this event type is addressed to a specific user
// and therefore requires a user id match before acting.
func (e Event) Targeted() bool {
	switch e.Type {
	case EventSessionRevoked, EventPermissionsUpdated, EventRoleChanged:
		return true
	}
	return false
}
