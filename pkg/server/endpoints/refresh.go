package endpoints

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/veridian-labs/warden/pkg/audit"
	"github.com/veridian-labs/warden/pkg/server"
	"github.com/veridian-labs/warden/pkg/session"
)

var bearerRegex = regexp.MustCompile(`^Bearer (\S+)$`)

// RegisterRefreshEndpoint registers POST /session/refresh. A refresh within
// the idle window returns a new token with the idle clock reset; past the
// window it reports the session expired so the client re-authenticates.
func RegisterRefreshEndpoint(srv *server.Server) {
	srv.Router.HandleFunc(
		"/session/refresh",
		func(writer http.ResponseWriter, request *http.Request) {
			matches := bearerRegex.FindStringSubmatch(request.Header.Get("Authorization"))
			if len(matches) != 2 {
				writeError(writer, http.StatusUnauthorized, "authorization required")
				return
			}

			token, claims, err := srv.Issuer.Refresh(matches[1])
			if err != nil {
				if errors.Is(err, session.ErrSessionExpired) {
					writeError(writer, http.StatusUnauthorized, "session expired")
					return
				}
				writeError(writer, http.StatusUnauthorized, "invalid session token")
				return
			}

			srv.Audit.Log(audit.SessionEvent{
				UserID:      claims.UserID,
				SessionID:   claims.ID,
				ActiveOrgID: claims.ActiveOrgID,
				Action:      audit.SessionRefreshed,
			})

			writeJSON(writer, http.StatusOK, LoginResponse{Token: token, Claims: claims})
		},
	).Methods("POST")
}
