// Package store provides storage abstractions for the warden server.
//
// This package defines interfaces for the read paths the authorization
// subsystem needs (memberships joined to roles and policies, session
// preferences, credentials), decoupling session issuance from the database
// implementation. GORM-backed implementations live in the gorm subpackage;
// tests use testify mocks.
package store
