package store

// PolicyRecord is a catalog entry as persisted to the policies table.
type PolicyRecord struct {
	Slug        string
	Name        string
	Description string
	Category    string
}

// ProvisioningStore creates and updates the durable authorization data:
// users, organizations, roles, and membership grants. Reads go through the
// other stores; this interface is the write side used by wardenctl.
type ProvisioningStore interface {
	// SyncPolicies upserts catalog entries into the policies table so
	// role_policies rows have something to reference.
	SyncPolicies(records []PolicyRecord) error

	// EnsureUser returns the id of the user with the given login, creating
	// the user if necessary.
	EnsureUser(login, displayName string) (int64, error)

	// EnsureOrganization returns the id of the named organization, creating
	// it if necessary.
	EnsureOrganization(name string) (int64, error)

	// CreateRole creates a role in an organization and attaches the given
	// policy slugs.
	CreateRole(orgID int64, name string, slugs []string) (int64, error)

	// GrantMembership grants a role to a user. Re-granting a soft-revoked
	// membership reactivates it.
	GrantMembership(userID, orgID, roleID int64) error

	// SetSessionTimeout stores the user's idle-timeout preference.
	SetSessionTimeout(userID int64, minutes int) error
}
