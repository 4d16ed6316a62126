// Package authz derives and evaluates effective permissions.
//
// The Aggregator turns a user's active membership rows into per-organization
// role groupings and selects the active organization (a role named "owner"
// wins, then "admin", then the first organization loaded). Users with no
// memberships get fallback grants carrying only self-service permissions:
// authorization checks must never hard-fail for an account that simply has
// no RBAC assignment yet.
//
// The evaluator side is a pure predicate layer over a flattened
// PermissionSet. Checks are expressed as a Check value whose variants are
// evaluated in a fixed precedence order, with "admin:full_access" acting as
// the system's only wildcard.
package authz
