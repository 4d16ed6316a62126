package authz

import "github.com/veridian-labs/warden/pkg/catalog"

// ApplyPermissionUpdate returns new Grants in which the active
// organization's roles are replaced by a single synthesized role carrying
// the pushed slugs, in the same shape the aggregator would have produced.
// The receiver is not modified; callers swap the returned value in whole.
func (g *Grants) ApplyPermissionUpdate(slugs []string, cat *catalog.Catalog) *Grants {
	policies := make([]PolicyClaim, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		claim := PolicyClaim{Slug: slug}
		if cat != nil {
			if entry, ok := cat.Lookup(slug); ok {
				claim.Name = entry.Name
				claim.Description = entry.Description
			}
		}
		policies = append(policies, claim)
	}

	roleName := g.PrimaryRole()
	if roleName == "" {
		roleName = FallbackRoleName
	}

	next := &Grants{ActiveOrgID: g.ActiveOrgID}
	for _, org := range g.Organizations {
		copied := OrganizationContext{ID: org.ID, Name: org.Name}
		if org.ID == g.ActiveOrgID {
			copied.Roles = []RoleContext{
				{
					Name:           roleName,
					OrganizationID: org.ID,
					Policies:       policies,
				},
			}
		} else {
			copied.Roles = append([]RoleContext(nil), org.Roles...)
		}
		next.Organizations = append(next.Organizations, copied)
	}
	return next
}
