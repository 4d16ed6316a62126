package endpoints

import (
	"net/http"

	"github.com/veridian-labs/warden/pkg/server"
)

// StatusResponse is the health check body.
type StatusResponse struct {
	Status string `json:"status"`
}

// RegisterStatusEndpoint registers GET /.
func RegisterStatusEndpoint(srv *server.Server) {
	srv.Router.HandleFunc(
		"/",
		func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, StatusResponse{Status: "ok"})
		},
	).Methods("GET")
}
