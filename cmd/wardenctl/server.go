package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/config"
	"github.com/veridian-labs/warden/pkg/db"
	"github.com/veridian-labs/warden/pkg/revocation"
	"github.com/veridian-labs/warden/pkg/server"
	"github.com/veridian-labs/warden/pkg/server/endpoints"
	"github.com/veridian-labs/warden/pkg/session"
	gormstore "github.com/veridian-labs/warden/pkg/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the warden authorization server",
	Long: `Run the warden authorization server.

Requires the environment variables WARDEN_SESSION_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		// Validate required environment variables first (fail fast)
		sessionKeyB64, ok := os.LookupEnv("WARDEN_SESSION_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "WARDEN_SESSION_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		sessionKey, err := base64.StdEncoding.DecodeString(sessionKeyB64)
		if err != nil || len(sessionKey) < 32 {
			fmt.Fprintln(os.Stderr, "Bad WARDEN_SESSION_KEY: want at least 32 base64-encoded bytes")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}

		memberships := gormstore.NewMembershipStore(database)
		preferences := gormstore.NewPreferenceStore(database)
		credentials := gormstore.NewCredentialStore(database)

		aggregator := authz.NewAggregator(memberships, cat, log)
		issuer := session.NewIssuer(sessionKey, aggregator, preferences, log)
		hub := revocation.NewHub(log, cfg.ChannelPingInterval(), cfg.TrustedOrigins)

		srv := server.NewServer(cfg, database, log, cat, aggregator, issuer, hub, credentials)
		endpoints.RegisterAll(srv)

		log.WithField("addr", cfg.Addr()).Info("warden server listening")
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Server stopped: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().Bool("no-migrate", false, "Skip database migrations on startup")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(os.Getenv("WARDEN_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	return log
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Builtin(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}
