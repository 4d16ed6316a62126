package authz

import (
	"strings"

	"github.com/veridian-labs/warden/pkg/catalog"
)

// Identity is the materialized subject a permission check runs against.
// A nil or unauthenticated identity fails every check.
type Identity struct {
	UserID        int64
	Authenticated bool
	PrimaryRole   string
	Permissions   PermissionSet
}

// Check describes one permission check. At most one variant is consulted
// per call; when several are supplied the highest-precedence one decides:
// Custom, then Permission, then AllOf, then AnyOf, then Role/Roles.
type Check struct {
	// Custom is a caller-supplied predicate. It receives the full identity
	// (raw subject, primary role, flattened slugs) and takes precedence
	// over every other variant.
	Custom func(id *Identity) bool

	// Permission requires a single slug.
	Permission string

	// AllOf requires every listed slug.
	AllOf []string

	// AnyOf requires at least one listed slug.
	AnyOf []string

	// Role requires the primary role name to match, case-insensitive.
	Role string

	// Roles requires the primary role name to match any entry.
	Roles []string
}

// checkVariant is one evaluation rule: applies reports whether the variant
// was supplied, evaluate runs it. Keeping the variants in an explicit
// ordered list makes the precedence testable rather than implicit in
// branching structure.
type checkVariant struct {
	applies  func(c Check) bool
	evaluate func(id *Identity, c Check) bool
}

var checkVariants = []checkVariant{
	{
		applies:  func(c Check) bool { return c.Custom != nil },
		evaluate: func(id *Identity, c Check) bool { return c.Custom(id) },
	},
	{
		applies:  func(c Check) bool { return c.Permission != "" },
		evaluate: func(id *Identity, c Check) bool { return hasPermission(id, c.Permission) },
	},
	{
		applies: func(c Check) bool { return len(c.AllOf) > 0 },
		evaluate: func(id *Identity, c Check) bool {
			for _, slug := range c.AllOf {
				if !hasPermission(id, slug) {
					return false
				}
			}
			return true
		},
	},
	{
		applies: func(c Check) bool { return len(c.AnyOf) > 0 },
		evaluate: func(id *Identity, c Check) bool {
			for _, slug := range c.AnyOf {
				if id.Permissions.Has(slug) {
					return true
				}
			}
			return false
		},
	},
	{
		applies: func(c Check) bool { return c.Role != "" || len(c.Roles) > 0 },
		evaluate: func(id *Identity, c Check) bool {
			if c.Role != "" && strings.EqualFold(id.PrimaryRole, c.Role) {
				return true
			}
			for _, role := range c.Roles {
				if strings.EqualFold(id.PrimaryRole, role) {
					return true
				}
			}
			return false
		},
	},
}

// hasPermission is the single-slug membership test with the full-access
// override. The override never applies to role-name checks.
func hasPermission(id *Identity, slug string) bool {
	if id.Permissions.Has(catalog.FullAccess) {
		return true
	}
	return id.Permissions.Has(slug)
}

// Evaluate runs a check against an identity. It is a pure function with no
// side effects. An unauthenticated (or nil) identity evaluates false for
// every variant, never panics, and never grants access. A check with no
// variants supplied evaluates false.
func Evaluate(id *Identity, check Check) bool {
	if id == nil || !id.Authenticated {
		return false
	}
	for _, variant := range checkVariants {
		if variant.applies(check) {
			return variant.evaluate(id, check)
		}
	}
	return false
}

// HasPermission checks a single slug.
func (id *Identity) HasPermission(slug string) bool {
	return Evaluate(id, Check{Permission: slug})
}

// HasAllPermissions checks that every slug is held.
func (id *Identity) HasAllPermissions(slugs ...string) bool {
	return Evaluate(id, Check{AllOf: slugs})
}

// HasAnyPermission checks that at least one slug is held.
func (id *Identity) HasAnyPermission(slugs ...string) bool {
	return Evaluate(id, Check{AnyOf: slugs})
}

// HasRole checks the primary role name, case-insensitive.
func (id *Identity) HasRole(role string) bool {
	return Evaluate(id, Check{Role: role})
}
