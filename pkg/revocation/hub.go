package revocation

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
)

const (
	// authDeadline bounds how long a freshly accepted connection may take
	// to identify itself before the server hangs up.
	authDeadline = 10 * time.Second

	// writeTimeout bounds a single event write to a client.
	writeTimeout = 5 * time.Second

	// DefaultPingInterval is the cadence of server liveness pings.
	DefaultPingInterval = 30 * time.Second
)

// Hub is the server side of the revocation channel: a registry of live
// client connections keyed by user id, with targeted publish.
type Hub struct {
	log            *logrus.Logger
	pingInterval   time.Duration
	originPatterns []string

	mu    sync.Mutex
	conns map[string]map[*hubClient]struct{}
}

type hubClient struct {
	userID string
	conn   *websocket.Conn

	// writeMu serializes writes; pings, published events, and the read
	// loop's pong handling run on different goroutines.
	writeMu sync.Mutex
}

// NewHub creates a Hub.
func NewHub(log *logrus.Logger, pingInterval time.Duration, originPatterns []string) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &Hub{
		log:            log,
		pingInterval:   pingInterval,
		originPatterns: originPatterns,
		conns:          make(map[string]map[*hubClient]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket connection, waits for the
// client's auth message, registers the connection, and then serves pings
// and pong replies until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		opts.OriginPatterns = h.originPatterns
	}
	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		return
	}

	ctx := r.Context()

	authCtx, cancel := context.WithTimeout(ctx, authDeadline)
	client, err := h.identify(authCtx, conn)
	cancel()
	if err != nil {
		h.log.WithError(err).Debug("revocation channel client failed to identify")
		_ = conn.Close(websocket.StatusPolicyViolation, "auth required")
		return
	}

	h.register(client)
	defer h.unregister(client)

	h.log.WithField("user_id", client.userID).Debug("revocation channel connected")

	pingCtx, stopPings := context.WithCancel(ctx)
	defer stopPings()
	go h.pingLoop(pingCtx, client)

	h.readLoop(ctx, client)
	_ = conn.Close(websocket.StatusNormalClosure, "closed")
}

// identify reads the first message and requires it to be an auth event
// carrying the user id.
func (h *Hub) identify(ctx context.Context, conn *websocket.Conn) (*hubClient, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	event, err := ParseEvent(data)
	if err != nil {
		return nil, err
	}
	if event.Type != EventAuth || event.UserID == "" {
		return nil, errNotIdentified
	}
	return &hubClient{userID: event.UserID, conn: conn}, nil
}

var errNotIdentified = &protocolError{"expected auth message"}

type protocolError struct{ msg string }

func (e *protocolError) Error() string { return e.msg }

func (h *Hub) register(client *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[client.userID]
	if !ok {
		set = make(map[*hubClient]struct{})
		h.conns[client.userID] = set
	}
	set[client] = struct{}{}
}

func (h *Hub) unregister(client *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[client.userID]
	if !ok {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.conns, client.userID)
	}
}

// readLoop consumes inbound messages until the connection closes. Only pong
// replies are expected; malformed messages are ignored.
func (h *Hub) readLoop(ctx context.Context, client *hubClient) {
	for {
		_, data, err := client.conn.Read(ctx)
		if err != nil {
			return
		}
		// pong replies and any other client chatter carry no state;
		// reading them is enough to keep the connection drained.
		_, _ = ParseEvent(data)
	}
}

func (h *Hub) pingLoop(ctx context.Context, client *hubClient) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.write(ctx, Event{Type: EventPing}); err != nil {
				return
			}
		}
	}
}

func (c *hubClient) write(ctx context.Context, event Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, c.conn, event)
}

// Publish delivers an event to every live connection of the target user.
// Delivery is best-effort: a failed write closes that connection and the
// idle timeout remains the backstop invalidation mechanism.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	var targets []*hubClient
	for client := range h.conns[event.UserID] {
		targets = append(targets, client)
	}
	h.mu.Unlock()

	for _, client := range targets {
		if err := client.write(context.Background(), event); err != nil {
			h.log.WithError(err).WithFields(logrus.Fields{
				"user_id": event.UserID,
				"type":    event.Type,
			}).Warn("revocation event delivery failed")
			_ = client.conn.Close(websocket.StatusInternalError, "write failed")
		}
	}
}

// ConnectionCount returns the number of live connections for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[userID])
}

// Shutdown closes every live connection with a normal closure so clients
// do not attempt to reconnect.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	var all []*hubClient
	for _, set := range h.conns {
		for client := range set {
			all = append(all, client)
		}
	}
	h.conns = make(map[string]map[*hubClient]struct{})
	h.mu.Unlock()

	for _, client := range all {
		_ = client.conn.Close(websocket.StatusNormalClosure, "server shutdown")
	}
}
