// Command wardenctl runs and administers the warden authorization server.
//
// Warden is the authorization subsystem of the Veridian admin console. It
// derives a user's effective permissions from role memberships across
// organizations, embeds them in signed sessions with a sliding idle
// timeout, and pushes revocation events to connected clients over a
// persistent channel.
//
// # Quick Start
//
//	# Run database migrations
//	wardenctl db migrate
//
//	# Start the server
//	export WARDEN_SESSION_KEY=$(head -c 32 /dev/urandom | base64)
//	wardenctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - WARDEN_SESSION_KEY: Base64-encoded 256-bit key for session signing
//   - WARDEN_LOG_LEVEL: Log level (debug, info, warn, error)
//   - WARDEN_CONFIG_PATH: Directory containing warden.yml
package main
