package authz

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/store"
)

// Fallback organization synthesized for users with no active memberships.
const (
	FallbackOrgID    int64 = 1
	FallbackOrgName        = "Default Organization"
	FallbackRoleName       = "Default"
)

// PolicyClaim is one policy as it appears inside a role claim.
type PolicyClaim struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoleContext is a role the user holds, with its attached policies.
type RoleContext struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	OrganizationID int64         `json:"orgId"`
	Policies       []PolicyClaim `json:"policies"`
}

// OrganizationContext groups a user's roles within one organization.
// Derived at issuance time, never persisted.
type OrganizationContext struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Roles []RoleContext `json:"roles"`
}

// Grants is the Role Aggregator's output: all organization contexts plus
// the selected active organization.
type Grants struct {
	Organizations []OrganizationContext
	ActiveOrgID   int64
}

// ActiveOrganization returns the context of the active organization.
func (g *Grants) ActiveOrganization() *OrganizationContext {
	for i := range g.Organizations {
		if g.Organizations[i].ID == g.ActiveOrgID {
			return &g.Organizations[i]
		}
	}
	return nil
}

// ActiveRoles returns the roles of the active organization.
func (g *Grants) ActiveRoles() []RoleContext {
	org := g.ActiveOrganization()
	if org == nil {
		return nil
	}
	return org.Roles
}

// PrimaryRole returns the name of the first role in the active organization.
func (g *Grants) PrimaryRole() string {
	roles := g.ActiveRoles()
	if len(roles) == 0 {
		return ""
	}
	return roles[0].Name
}

// Permissions flattens the active organization's roles into the effective
// permission set. Policies from other organizations never contribute.
func (g *Grants) Permissions() PermissionSet {
	return Flatten(g.ActiveRoles())
}

// Aggregator derives a user's organization contexts from membership rows.
type Aggregator struct {
	memberships store.MembershipStore
	catalog     *catalog.Catalog
	log         *logrus.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(memberships store.MembershipStore, cat *catalog.Catalog, log *logrus.Logger) *Aggregator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{memberships: memberships, catalog: cat, log: log}
}

// Aggregate loads the user's active memberships, groups them by
// organization, and selects the active organization.
//
// Aggregate never fails: a store error or an empty membership set both
// produce the fallback grants. Downstream authorization checks must not
// hard-fail for a user who has an account but no RBAC assignment yet, so
// availability wins over precise error reporting here; the store error is
// logged and swallowed.
func (a *Aggregator) Aggregate(userID int64) *Grants {
	rows, err := a.memberships.FetchActiveMemberships(userID)
	if err != nil {
		a.log.WithError(err).WithField("user_id", userID).
			Warn("membership load failed, issuing fallback grants")
		return a.fallback()
	}
	if len(rows) == 0 {
		return a.fallback()
	}

	var orgs []OrganizationContext
	orgIndex := make(map[int64]int)
	roleIndex := make(map[int64]map[int64]int) // org id -> role id -> index
	policySeen := make(map[int64]map[string]bool)

	for _, row := range rows {
		oi, ok := orgIndex[row.OrganizationID]
		if !ok {
			oi = len(orgs)
			orgIndex[row.OrganizationID] = oi
			orgs = append(orgs, OrganizationContext{
				ID:   row.OrganizationID,
				Name: row.OrganizationName,
			})
			roleIndex[row.OrganizationID] = make(map[int64]int)
		}

		ri, ok := roleIndex[row.OrganizationID][row.RoleID]
		if !ok {
			ri = len(orgs[oi].Roles)
			roleIndex[row.OrganizationID][row.RoleID] = ri
			orgs[oi].Roles = append(orgs[oi].Roles, RoleContext{
				ID:             row.RoleID,
				Name:           row.RoleName,
				OrganizationID: row.OrganizationID,
			})
			policySeen[row.RoleID] = make(map[string]bool)
		}

		if row.PolicySlug == "" || policySeen[row.RoleID][row.PolicySlug] {
			continue
		}
		policySeen[row.RoleID][row.PolicySlug] = true
		orgs[oi].Roles[ri].Policies = append(orgs[oi].Roles[ri].Policies, PolicyClaim{
			Slug:        row.PolicySlug,
			Name:        row.PolicyName,
			Description: row.PolicyDescription,
		})
	}

	return &Grants{
		Organizations: orgs,
		ActiveOrgID:   selectActiveOrg(orgs),
	}
}

// selectActiveOrg picks the active organization: an organization where the
// user holds a role named "owner" wins, else one named "admin", else the
// first organization in load order. Ties go to the first match.
func selectActiveOrg(orgs []OrganizationContext) int64 {
	for _, name := range []string{"owner", "admin"} {
		for _, org := range orgs {
			for _, role := range org.Roles {
				if strings.EqualFold(role.Name, name) {
					return org.ID
				}
			}
		}
	}
	return orgs[0].ID
}

// fallback synthesizes the minimal grants for a user with no memberships:
// one organization and one role carrying only the self-service slugs.
func (a *Aggregator) fallback() *Grants {
	policies := make([]PolicyClaim, 0, 3)
	for _, slug := range []string{catalog.ReadOwnProfile, catalog.UpdateOwnProfile, catalog.ManageOwnSession} {
		claim := PolicyClaim{Slug: slug}
		if entry, ok := a.catalog.Lookup(slug); ok {
			claim.Name = entry.Name
			claim.Description = entry.Description
		}
		policies = append(policies, claim)
	}

	return &Grants{
		Organizations: []OrganizationContext{
			{
				ID:   FallbackOrgID,
				Name: FallbackOrgName,
				Roles: []RoleContext{
					{
						ID:             0,
						Name:           FallbackRoleName,
						OrganizationID: FallbackOrgID,
						Policies:       policies,
					},
				},
			},
		},
		ActiveOrgID: FallbackOrgID,
	}
}
