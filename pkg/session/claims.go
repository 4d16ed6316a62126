package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
)

// OrgSummary is the compact listing of an organization the user belongs to,
// carried in the claims so the UI can offer an organization switcher.
type OrgSummary struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	IsActive bool     `json:"isActive"`
}

// Claims is the signed session claim set. It is owned by the Issuer: the
// only way to change a session is to reissue a new signed token, never to
// mutate claims in place.
type Claims struct {
	jwt.RegisteredClaims

	UserID         int64               `json:"userId"`
	Login          string              `json:"login"`
	DisplayName    string              `json:"displayName,omitempty"`
	ActiveOrgID    int64               `json:"activeOrgId"`
	Roles          []authz.RoleContext `json:"roles"`
	AvailableOrgs  []OrgSummary        `json:"availableOrgs"`
	LastActivity   int64               `json:"lastActivity"`
	TimeoutMinutes int                 `json:"timeoutMinutes"`
}

// PrimaryRole returns the name of the first role in the active
// organization, or "" when the claims carry no roles.
func (c *Claims) PrimaryRole() string {
	for _, role := range c.Roles {
		if role.OrganizationID == c.ActiveOrgID {
			return role.Name
		}
	}
	return ""
}

// ActiveRoles returns the roles scoped to the active organization.
func (c *Claims) ActiveRoles() []authz.RoleContext {
	var roles []authz.RoleContext
	for _, role := range c.Roles {
		if role.OrganizationID == c.ActiveOrgID {
			roles = append(roles, role)
		}
	}
	return roles
}

// WithPermissions returns a copy of the claims whose active-organization
// roles are replaced by a single role carrying the given slugs, shaped as
// the aggregator would have shaped them. The receiver is not modified:
// callers replace the whole snapshot with the returned value.
func (c *Claims) WithPermissions(slugs []string, cat *catalog.Catalog) *Claims {
	policies := make([]authz.PolicyClaim, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		claim := authz.PolicyClaim{Slug: slug}
		if cat != nil {
			if entry, ok := cat.Lookup(slug); ok {
				claim.Name = entry.Name
				claim.Description = entry.Description
			}
		}
		policies = append(policies, claim)
	}

	roleName := c.PrimaryRole()
	if roleName == "" {
		roleName = "Default"
	}

	next := *c
	next.Roles = nil
	for _, role := range c.Roles {
		if role.OrganizationID != c.ActiveOrgID {
			next.Roles = append(next.Roles, role)
		}
	}
	next.Roles = append(next.Roles, authz.RoleContext{
		Name:           roleName,
		OrganizationID: c.ActiveOrgID,
		Policies:       policies,
	})
	return &next
}

// Identity materializes the evaluator identity for these claims. Policies
// from organizations other than the active one never contribute.
func (c *Claims) Identity() *authz.Identity {
	return &authz.Identity{
		UserID:        c.UserID,
		Authenticated: true,
		PrimaryRole:   c.PrimaryRole(),
		Permissions:   authz.Flatten(c.ActiveRoles()),
	}
}
