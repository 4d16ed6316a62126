package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/veridian-labs/warden/pkg/audit"
	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/identity"
	"github.com/veridian-labs/warden/pkg/server"
)

// CheckRequest describes a permission check. When several variants are
// supplied the evaluator's precedence order decides which one runs.
type CheckRequest struct {
	Permission string   `json:"permission,omitempty"`
	AllOf      []string `json:"allOf,omitempty"`
	AnyOf      []string `json:"anyOf,omitempty"`
	Role       string   `json:"role,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

// CheckResponse is the check verdict.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// RegisterCheckEndpoint registers POST /authz/check on the protected router.
func RegisterCheckEndpoint(srv *server.Server, protect func(http.Handler) http.Handler) {
	srv.Router.Handle(
		"/authz/check",
		protect(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			id, ok := identity.Get(request.Context())
			if !ok {
				writeError(writer, http.StatusUnauthorized, "unauthenticated")
				return
			}

			var body CheckRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				writeError(writer, http.StatusBadRequest, "malformed check")
				return
			}

			allowed := id.Can(authz.Check{
				Permission: body.Permission,
				AllOf:      body.AllOf,
				AnyOf:      body.AnyOf,
				Role:       body.Role,
				Roles:      body.Roles,
			})

			srv.Audit.Log(audit.CheckEvent{
				UserID:      id.UserID(),
				Permission:  body.Permission,
				Permissions: append(body.AllOf, body.AnyOf...),
				Role:        body.Role,
				Allowed:     allowed,
			})

			writeJSON(writer, http.StatusOK, CheckResponse{Allowed: allowed})
		})),
	).Methods("POST")
}
