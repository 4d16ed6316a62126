package endpoints

import (
	"github.com/veridian-labs/warden/pkg/server"
	"github.com/veridian-labs/warden/pkg/server/middleware"
)

// RegisterAll registers all API endpoints on the server.
func RegisterAll(srv *server.Server) {
	protect := middleware.NewSessionAuthenticator(srv.Issuer).Middleware

	// Public surface
	RegisterStatusEndpoint(srv)
	RegisterLoginEndpoint(srv)
	RegisterRefreshEndpoint(srv)
	RegisterEventsEndpoint(srv)

	// Session-protected surface
	RegisterWhoamiEndpoint(srv, protect)
	RegisterCheckEndpoint(srv, protect)
	RegisterCatalogEndpoint(srv, protect)
	RegisterAdminEndpoints(srv, protect)
}
