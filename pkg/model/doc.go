// Package model defines the database models for the warden schema.
//
// This package contains GORM models that map to the authorization tables.
// Membership rows are the durable source of truth for grants; everything
// derived from them (organization contexts, effective permission sets) is
// recomputed at session issuance and never persisted.
//
// # Core Models
//
//   - User: console accounts
//   - Organization: tenants
//   - Role: organization-scoped policy bundles
//   - Policy / RolePolicy: catalog entries and their attachment to roles
//   - Membership: (user, organization, role) grants with soft revocation
//   - UserPreference: per-user session timeout
//   - Credential: password hashes
package model
