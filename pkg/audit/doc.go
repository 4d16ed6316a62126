// Package audit emits structured audit events for authorization-relevant
// actions: sign-in attempts, permission checks, and session lifecycle
// transitions. Events render as structured log entries so they can be
// shipped alongside the application logs.
package audit
