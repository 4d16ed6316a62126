package endpoints

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/warden/pkg/revocation"
)

// TestEventsEndpoint walks the admin-to-client path end to end: a client
// connects to /events and identifies itself, an administrator hits the
// revoke endpoint, and the client receives the pushed event.
func TestEventsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, adminRows())
	adminToken := issueToken(t, srv, 1, "root")

	ts := httptest.NewServer(srv.Router)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	require.NoError(t, wsjson.Write(ctx, conn, revocation.Event{Type: revocation.EventAuth, UserID: "8"}))

	require.Eventually(t, func() bool {
		return srv.Hub.ConnectionCount("8") == 1
	}, 2*time.Second, 10*time.Millisecond)

	w := doJSON(t, srv, "POST", "/users/8/revoke", adminToken, nil)
	requireStatus(t, w, http.StatusAccepted)

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	event, err := revocation.ParseEvent(data)
	require.NoError(t, err)
	assert.Equal(t, revocation.EventSessionRevoked, event.Type)
	assert.Equal(t, "8", event.UserID)
}
