package revocation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

// Handler reacts to targeted revocation events. Callbacks run sequentially
// on the monitor's read goroutine; no two callbacks for the same monitor
// run concurrently.
type Handler interface {
	// SessionRevoked must clear local session state immediately and then
	// run the remote sign-out flow, in that order.
	SessionRevoked(ctx context.Context)

	// PermissionsUpdated hot-swaps the effective permission set without a
	// full re-authentication.
	PermissionsUpdated(ctx context.Context, permissions []string)

	// RoleChanged triggers a full session re-derivation; a role change is
	// too structurally significant to patch incrementally.
	RoleChanged(ctx context.Context)
}

// Options configures a Monitor.
type Options struct {
	// URL is the WebSocket endpoint.
	URL string

	// UserID identifies this client; sent in the auth message and matched
	// against every inbound targeted event.
	UserID string

	// BackoffBase is the delay before the first reconnect attempt; it
	// doubles on each subsequent attempt. Defaults to 1s.
	BackoffBase time.Duration

	// MaxAttempts caps consecutive reconnect attempts. Once exceeded the
	// channel degrades to idle-timeout-based invalidation. Defaults to 5.
	MaxAttempts int
}

const (
	defaultBackoffBase = time.Second
	defaultMaxAttempts = 5
)

// Monitor is the client side of the revocation channel. One monitor owns
// one connection, its reconnect counter, and nothing else; starting a
// monitor that is already running tears the previous connection down first.
type Monitor struct {
	opts    Options
	handler Handler
	log     *logrus.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	cancel   context.CancelFunc
	stopping bool
	attempts int
	done     chan struct{}
}

// NewMonitor creates a Monitor.
func NewMonitor(opts Options, handler Handler, log *logrus.Logger) *Monitor {
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Monitor{opts: opts, handler: handler, log: log}
}

// Start begins monitoring. A connection failure does not fail Start: the
// reconnect loop owns all retrying. If the monitor is already running it is
// stopped first, so at most one connection is ever live.
func (m *Monitor) Start(ctx context.Context) {
	m.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	m.mu.Lock()
	m.cancel = cancel
	m.stopping = false
	m.attempts = 0
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.run(runCtx)
	}()
}

// Stop closes the connection with a normal closure, which suppresses
// reconnection. Safe to call multiple times and safe to call on a monitor
// that never started.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.cancel == nil {
		m.mu.Unlock()
		return
	}
	m.stopping = true
	cancel := m.cancel
	conn := m.conn
	done := m.done
	m.cancel = nil
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "client sign-out")
	}
	cancel()
	if done != nil {
		<-done
	}
}

// Attempts returns the current consecutive reconnect attempt count.
func (m *Monitor) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *Monitor) run(ctx context.Context) {
	for {
		err := m.connectAndServe(ctx)
		if err == nil || m.isStopping() || ctx.Err() != nil {
			return
		}
		if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
			// The server hung up deliberately; do not fight it.
			return
		}
		if !m.backoff(ctx) {
			m.log.WithField("user_id", m.opts.UserID).
				Warn("revocation channel unavailable, relying on session expiry")
			return
		}
	}
}

// connectAndServe dials, identifies, and serves one connection until it
// closes. Returns nil only on a deliberate local stop.
func (m *Monitor) connectAndServe(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, m.opts.URL, nil)
	if err != nil {
		m.log.WithError(err).Debug("revocation channel dial failed")
		return err
	}

	if err := m.send(ctx, conn, Event{Type: EventAuth, UserID: m.opts.UserID}); err != nil {
		_ = conn.Close(websocket.StatusInternalError, "auth write failed")
		return err
	}

	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "client sign-out")
		return nil
	}
	m.conn = conn
	// Identification succeeded; the backoff sequence starts over.
	m.attempts = 0
	m.mu.Unlock()

	err = m.readLoop(ctx, conn)

	m.mu.Lock()
	if m.conn == conn {
		m.conn = nil
	}
	stopped := m.stopping
	m.mu.Unlock()

	if stopped {
		return nil
	}
	return err
}

func (m *Monitor) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		event, err := ParseEvent(data)
		if err != nil {
			// Malformed messages are dropped; the connection stays up.
			m.log.WithError(err).Debug("ignoring malformed revocation event")
			continue
		}

		if event.Type == EventPing {
			if err := m.send(ctx, conn, Event{Type: EventPong}); err != nil {
				return err
			}
			continue
		}

		// Targeted events addressed to another user are silently dropped:
		// expected under shared or misrouted channels, not an error.
		if event.Targeted() && event.UserID != m.opts.UserID {
			continue
		}

		switch event.Type {
		case EventSessionRevoked:
			m.handler.SessionRevoked(ctx)
			// The session is gone; a deliberate close follows.
			_ = conn.Close(websocket.StatusNormalClosure, "session revoked")
			m.markStopping()
			return nil
		case EventPermissionsUpdated:
			m.handler.PermissionsUpdated(ctx, event.Permissions)
		case EventRoleChanged:
			m.handler.RoleChanged(ctx)
		}
	}
}

// backoff sleeps for base * 2^(n-1) before the nth reconnect attempt.
// Returns false once the attempt budget is exhausted or the context ends.
func (m *Monitor) backoff(ctx context.Context) bool {
	m.mu.Lock()
	m.attempts++
	attempt := m.attempts
	m.mu.Unlock()

	if attempt > m.opts.MaxAttempts {
		return false
	}

	delay := m.opts.BackoffBase << (attempt - 1)
	m.log.WithFields(logrus.Fields{
		"attempt": attempt,
		"delay":   delay,
	}).Debug("scheduling revocation channel reconnect")

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

func (m *Monitor) send(ctx context.Context, conn *websocket.Conn, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}

func (m *Monitor) isStopping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopping
}

func (m *Monitor) markStopping() {
	m.mu.Lock()
	m.stopping = true
	m.mu.Unlock()
}

// BackoffDelay returns the scheduled delay before the nth reconnect
// attempt for a given base: base * 2^(n-1).
func BackoffDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return base << (attempt - 1)
}
