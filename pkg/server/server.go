package server

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/veridian-labs/warden/pkg/audit"
	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/config"
	"github.com/veridian-labs/warden/pkg/revocation"
	"github.com/veridian-labs/warden/pkg/session"
	"github.com/veridian-labs/warden/pkg/store"
)

// Server wires the authorization subsystem's HTTP surface together.
type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.Config
	Log    *logrus.Logger
	Audit  *audit.Logger

	Catalog     *catalog.Catalog
	Aggregator  *authz.Aggregator
	Issuer      *session.Issuer
	Hub         *revocation.Hub
	Credentials store.CredentialStore

	srv *http.Server
}

// NewServer creates a Server.
func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	log *logrus.Logger,
	cat *catalog.Catalog,
	aggregator *authz.Aggregator,
	issuer *session.Issuer,
	hub *revocation.Hub,
	credentials store.CredentialStore,
) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(log.Writer(), router),
		Addr:    cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:      router,
		DB:          db,
		Config:      cfg,
		Log:         log,
		Audit:       audit.NewLogger(log),
		Catalog:     cat,
		Aggregator:  aggregator,
		Issuer:      issuer,
		Hub:         hub,
		Credentials: credentials,
		srv:         srv,
	}
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
