// Package server provides the HTTP server for the warden authorization
// subsystem: session issuance and refresh, permission checks, the policy
// catalog listing, and the revocation channel upgrade endpoint.
package server
