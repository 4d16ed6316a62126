package store

// MembershipRow is one active membership joined to its role, organization,
// and one attached policy. A role with N policies yields N rows; a role with
// no policies yields a single row with an empty PolicySlug.
type MembershipRow struct {
	OrganizationID    int64
	OrganizationName  string
	RoleID            int64
	RoleName          string
	PolicySlug        string
	PolicyName        string
	PolicyDescription string
}

// MembershipStore abstracts membership lookups for session issuance.
type MembershipStore interface {
	// FetchActiveMemberships returns all active=true membership rows for a
	// user, joined to role, organization, and role policies, in stable
	// load order.
	FetchActiveMemberships(userID int64) ([]MembershipRow, error)
}
