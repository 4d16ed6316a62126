package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/veridian-labs/warden/pkg/audit"
	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/identity"
	"github.com/veridian-labs/warden/pkg/revocation"
	"github.com/veridian-labs/warden/pkg/server"
)

// PermissionsUpdateRequest is the body for a pushed permission update.
type PermissionsUpdateRequest struct {
	Permissions []string `json:"permissions"`
}

// RegisterAdminEndpoints registers the session-administration endpoints
// that publish revocation events to connected clients. All require the
// session-management permission; admin:full_access passes implicitly.
func RegisterAdminEndpoints(srv *server.Server, protect func(http.Handler) http.Handler) {
	requireManage := func(next func(http.ResponseWriter, *http.Request, string)) http.Handler {
		return protect(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			id, ok := identity.Get(request.Context())
			if !ok || !id.Can(authz.Check{Permission: "user:manage_sessions"}) {
				writeError(writer, http.StatusForbidden, "insufficient privilege")
				return
			}

			userID := mux.Vars(request)["id"]
			if _, err := strconv.ParseInt(userID, 10, 64); err != nil {
				writeError(writer, http.StatusBadRequest, "invalid user id")
				return
			}

			next(writer, request, userID)
		}))
	}

	srv.Router.Handle(
		"/users/{id}/revoke",
		requireManage(func(writer http.ResponseWriter, request *http.Request, userID string) {
			srv.Hub.Publish(revocation.Event{
				Type:   revocation.EventSessionRevoked,
				UserID: userID,
			})

			id, _ := strconv.ParseInt(userID, 10, 64)
			srv.Audit.Log(audit.SessionEvent{UserID: id, Action: audit.SessionRevoked})

			writer.WriteHeader(http.StatusAccepted)
		}),
	).Methods("POST")

	srv.Router.Handle(
		"/users/{id}/permissions",
		requireManage(func(writer http.ResponseWriter, request *http.Request, userID string) {
			var body PermissionsUpdateRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				writeError(writer, http.StatusBadRequest, "malformed permission list")
				return
			}

			srv.Hub.Publish(revocation.Event{
				Type:        revocation.EventPermissionsUpdated,
				UserID:      userID,
				Permissions: body.Permissions,
			})

			writer.WriteHeader(http.StatusAccepted)
		}),
	).Methods("PUT")

	srv.Router.Handle(
		"/users/{id}/role-changed",
		requireManage(func(writer http.ResponseWriter, request *http.Request, userID string) {
			srv.Hub.Publish(revocation.Event{
				Type:   revocation.EventRoleChanged,
				UserID: userID,
			})

			writer.WriteHeader(http.StatusAccepted)
		}),
	).Methods("POST")
}
