package authz

// PermissionSet is an immutable, deduplicated set of permission slugs.
// Values are constructed whole and replaced whole; there is no in-place
// mutation.
type PermissionSet struct {
	slugs []string
	index map[string]struct{}
}

// NewPermissionSet builds a set from slugs, deduplicating while preserving
// first-seen order.
func NewPermissionSet(slugs ...string) PermissionSet {
	set := PermissionSet{
		index: make(map[string]struct{}, len(slugs)),
	}
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if _, ok := set.index[slug]; ok {
			continue
		}
		set.index[slug] = struct{}{}
		set.slugs = append(set.slugs, slug)
	}
	return set
}

// Has reports whether the set contains the exact slug.
func (s PermissionSet) Has(slug string) bool {
	_, ok := s.index[slug]
	return ok
}

// Slugs returns a copy of the slugs in first-seen order.
func (s PermissionSet) Slugs() []string {
	return append([]string(nil), s.slugs...)
}

// Len returns the number of distinct slugs.
func (s PermissionSet) Len() int {
	return len(s.slugs)
}

// Flatten unions the policy slugs across roles into a PermissionSet. This is
// the pure transform from the active organization's roles to the effective
// permission set.
func Flatten(roles []RoleContext) PermissionSet {
	var slugs []string
	for _, role := range roles {
		for _, policy := range role.Policies {
			slugs = append(slugs, policy.Slug)
		}
	}
	return NewPermissionSet(slugs...)
}
