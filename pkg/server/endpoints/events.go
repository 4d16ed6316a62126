package endpoints

import (
	"github.com/veridian-labs/warden/pkg/server"
)

// RegisterEventsEndpoint registers GET /events, the revocation channel
// WebSocket upgrade. The endpoint itself is unauthenticated at the HTTP
// layer; the hub requires an auth message before registering the
// connection, and every targeted event is matched against the identified
// user id.
func RegisterEventsEndpoint(srv *server.Server) {
	srv.Router.Handle("/events", srv.Hub).Methods("GET")
}
