package endpoints

import (
	"net/http"

	"github.com/veridian-labs/warden/pkg/identity"
	"github.com/veridian-labs/warden/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint.
type WhoamiResponse struct {
	UserID      int64    `json:"userId"`
	Login       string   `json:"login"`
	ActiveOrgID int64    `json:"activeOrgId"`
	PrimaryRole string   `json:"primaryRole"`
	Permissions []string `json:"permissions"`
}

// RegisterWhoamiEndpoint registers GET /whoami on the protected router.
func RegisterWhoamiEndpoint(srv *server.Server, protect func(http.Handler) http.Handler) {
	srv.Router.Handle(
		"/whoami",
		protect(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			id, ok := identity.Get(request.Context())
			if !ok {
				writeError(writer, http.StatusUnauthorized, "unauthenticated")
				return
			}

			writeJSON(writer, http.StatusOK, WhoamiResponse{
				UserID:      id.Claims.UserID,
				Login:       id.Claims.Login,
				ActiveOrgID: id.Claims.ActiveOrgID,
				PrimaryRole: id.Subject.PrimaryRole,
				Permissions: id.Subject.Permissions.Slugs(),
			})
		})),
	).Methods("GET")
}
