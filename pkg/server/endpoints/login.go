package endpoints

import (
	"encoding/json"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/veridian-labs/warden/pkg/audit"
	"github.com/veridian-labs/warden/pkg/server"
)

// LoginRequest is the sign-in request body.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token and its decoded claims.
type LoginResponse struct {
	Token  string      `json:"token"`
	Claims interface{} `json:"claims"`
}

// RegisterLoginEndpoint registers POST /authn/login.
func RegisterLoginEndpoint(srv *server.Server) {
	srv.Router.HandleFunc(
		"/authn/login",
		func(writer http.ResponseWriter, request *http.Request) {
			var body LoginRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil || body.Login == "" {
				writeError(writer, http.StatusBadRequest, "login and password are required")
				return
			}

			clientIP := remoteIP(request)

			credential, err := srv.Credentials.GetCredential(body.Login)
			if err != nil || !srv.Credentials.VerifyPassword(credential, []byte(body.Password)) {
				// Uniform failure: no hint about which factor was wrong,
				// and a randomized delay to resist enumeration timing.
				srv.Audit.Log(audit.AuthenticateEvent{Login: body.Login, ClientIP: clientIP})
				time.Sleep(time.Duration(100+rand.Intn(200)) * time.Millisecond)
				writeError(writer, http.StatusUnauthorized, "invalid credentials")
				return
			}

			token, claims, err := srv.Issuer.Issue(credential.UserID, credential.Login, credential.DisplayName)
			if err != nil {
				writeError(writer, http.StatusInternalServerError, "failed to issue session")
				return
			}

			srv.Audit.Log(audit.AuthenticateEvent{Login: body.Login, ClientIP: clientIP, Success: true})
			srv.Audit.Log(audit.SessionEvent{
				UserID:      claims.UserID,
				SessionID:   claims.ID,
				ActiveOrgID: claims.ActiveOrgID,
				Action:      audit.SessionIssued,
			})

			writeJSON(writer, http.StatusOK, LoginResponse{Token: token, Claims: claims})
		},
	).Methods("POST")
}

func remoteIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
