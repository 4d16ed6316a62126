package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FullAccess is the universal override slug. A role granting it passes every
// single-permission and all-of check without holding the specific slugs.
const FullAccess = "admin:full_access"

// Self-service slugs granted by the fallback role to users with no
// membership rows.
const (
	ReadOwnProfile   = "user:read_own_profile"
	UpdateOwnProfile = "user:update_own_profile"
	ManageOwnSession = "user:manage_own_session"
)

// Policy is a catalog entry describing one permission slug. Entries are
// defined at build time and never mutated at runtime.
type Policy struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// Catalog maps permission slugs to their metadata and holds the default
// role bundles.
type Catalog struct {
	policies map[string]Policy
	order    []string
	bundles  map[string][]string
}

var slugSegment = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks that a slug has the form "resource:action" with
// lower_snake segments. Multi-segment resources (e.g.
// "decisioning:ruleset:publish") are allowed; the action is always the final
// colon-delimited segment.
func Validate(slug string) error {
	segments := strings.Split(slug, ":")
	if len(segments) < 2 {
		return fmt.Errorf("invalid permission slug %q: want resource:action", slug)
	}
	for _, segment := range segments {
		if !slugSegment.MatchString(segment) {
			return fmt.Errorf("invalid permission slug %q: bad segment %q", slug, segment)
		}
	}
	return nil
}

// Action returns the action of a slug, the final colon-delimited segment.
func Action(slug string) string {
	segments := strings.Split(slug, ":")
	return segments[len(segments)-1]
}

// Resource returns everything before the action segment.
func Resource(slug string) string {
	idx := strings.LastIndex(slug, ":")
	if idx < 0 {
		return slug
	}
	return slug[:idx]
}

// Builtin returns the compiled-in catalog.
func Builtin() *Catalog {
	c := &Catalog{
		policies: make(map[string]Policy, len(builtinPolicies)),
		bundles:  make(map[string][]string, len(builtinBundles)),
	}
	for _, p := range builtinPolicies {
		c.add(p)
	}
	for name, slugs := range builtinBundles {
		c.bundles[name] = append([]string(nil), slugs...)
	}
	return c
}

func (c *Catalog) add(p Policy) {
	if _, ok := c.policies[p.Slug]; !ok {
		c.order = append(c.order, p.Slug)
	}
	c.policies[p.Slug] = p
}

// Lookup returns the catalog entry for a slug.
func (c *Catalog) Lookup(slug string) (Policy, bool) {
	p, ok := c.policies[slug]
	return p, ok
}

// Policies returns all entries in definition order.
func (c *Catalog) Policies() []Policy {
	out := make([]Policy, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.policies[slug])
	}
	return out
}

// ByCategory groups the catalog by category for UI listings. Categories are
// returned sorted; entries within a category keep definition order.
func (c *Catalog) ByCategory() map[string][]Policy {
	out := make(map[string][]Policy)
	for _, slug := range c.order {
		p := c.policies[slug]
		out[p.Category] = append(out[p.Category], p)
	}
	return out
}

// Categories returns the sorted category names.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var names []string
	for _, slug := range c.order {
		category := c.policies[slug].Category
		if !seen[category] {
			seen[category] = true
			names = append(names, category)
		}
	}
	sort.Strings(names)
	return names
}

// DefaultBundle returns the default slug list for a role name,
// case-insensitive. Unknown roles get no bundle.
func (c *Catalog) DefaultBundle(role string) []string {
	slugs, ok := c.bundles[strings.ToLower(role)]
	if !ok {
		return nil
	}
	return append([]string(nil), slugs...)
}

// builtinPolicies is the static registry for the admin dashboard surfaces.
var builtinPolicies = []Policy{
	{Slug: "model:read", Name: "View models", Description: "View model configurations and metadata", Category: "models"},
	{Slug: "model:create", Name: "Create models", Description: "Register new model configurations", Category: "models"},
	{Slug: "model:update", Name: "Edit models", Description: "Edit existing model configurations", Category: "models"},
	{Slug: "model:delete", Name: "Delete models", Description: "Remove model configurations", Category: "models"},
	{Slug: "decision_table:read", Name: "View decision tables", Description: "View decision tables and their rules", Category: "decisioning"},
	{Slug: "decision_table:create", Name: "Create decision tables", Description: "Create new decision tables", Category: "decisioning"},
	{Slug: "decision_table:update", Name: "Edit decision tables", Description: "Edit decision table rules", Category: "decisioning"},
	{Slug: "decision_table:delete", Name: "Delete decision tables", Description: "Remove decision tables", Category: "decisioning"},
	{Slug: "decisioning:ruleset:publish", Name: "Publish rulesets", Description: "Publish decisioning rulesets to production", Category: "decisioning"},
	{Slug: "rate_card:read", Name: "View rate cards", Description: "View rate card pricing data", Category: "billing"},
	{Slug: "rate_card:create", Name: "Create rate cards", Description: "Create new rate cards", Category: "billing"},
	{Slug: "rate_card:update", Name: "Edit rate cards", Description: "Edit rate card pricing data", Category: "billing"},
	{Slug: "rate_card:delete", Name: "Delete rate cards", Description: "Remove rate cards", Category: "billing"},
	{Slug: "knowledge_base:read", Name: "View knowledge bases", Description: "Browse knowledge base content", Category: "knowledge"},
	{Slug: "knowledge_base:create", Name: "Create knowledge bases", Description: "Create new knowledge bases", Category: "knowledge"},
	{Slug: "knowledge_base:update", Name: "Edit knowledge bases", Description: "Edit knowledge base content", Category: "knowledge"},
	{Slug: "knowledge_base:delete", Name: "Delete knowledge bases", Description: "Remove knowledge bases", Category: "knowledge"},
	{Slug: "workflow:read", Name: "View workflows", Description: "View workflow definitions", Category: "workflows"},
	{Slug: "workflow:create", Name: "Create workflows", Description: "Create new workflow definitions", Category: "workflows"},
	{Slug: "workflow:update", Name: "Edit workflows", Description: "Edit workflow definitions", Category: "workflows"},
	{Slug: "organization:read", Name: "View organization", Description: "View organization settings and members", Category: "administration"},
	{Slug: "organization:update", Name: "Edit organization", Description: "Edit organization settings", Category: "administration"},
	{Slug: "user:invite", Name: "Invite users", Description: "Invite users to the organization", Category: "administration"},
	{Slug: "user:manage_roles", Name: "Manage roles", Description: "Assign and edit member roles", Category: "administration"},
	{Slug: "user:manage_sessions", Name: "Manage sessions", Description: "Revoke and refresh member sessions", Category: "administration"},
	{Slug: FullAccess, Name: "Full access", Description: "Unrestricted access to every console surface", Category: "administration"},
	{Slug: ReadOwnProfile, Name: "View own profile", Description: "View own profile and settings", Category: "self-service"},
	{Slug: UpdateOwnProfile, Name: "Edit own profile", Description: "Edit own profile and settings", Category: "self-service"},
	{Slug: ManageOwnSession, Name: "Manage own session", Description: "Refresh and sign out own sessions", Category: "self-service"},
}

// builtinBundles are the default role bundles, keyed by lowercase role name.
var builtinBundles = map[string][]string{
	"owner": {FullAccess, ReadOwnProfile, UpdateOwnProfile, ManageOwnSession},
	"admin": {
		"model:read", "model:create", "model:update", "model:delete",
		"decision_table:read", "decision_table:create", "decision_table:update", "decision_table:delete",
		"decisioning:ruleset:publish",
		"rate_card:read", "rate_card:create", "rate_card:update", "rate_card:delete",
		"knowledge_base:read", "knowledge_base:create", "knowledge_base:update", "knowledge_base:delete",
		"workflow:read", "workflow:create", "workflow:update",
		"organization:read", "organization:update",
		"user:invite", "user:manage_roles", "user:manage_sessions",
		ReadOwnProfile, UpdateOwnProfile, ManageOwnSession,
	},
	"editor": {
		"model:read", "model:create", "model:update",
		"decision_table:read", "decision_table:create", "decision_table:update",
		"rate_card:read", "rate_card:update",
		"knowledge_base:read", "knowledge_base:create", "knowledge_base:update",
		"workflow:read", "workflow:create", "workflow:update",
		ReadOwnProfile, UpdateOwnProfile, ManageOwnSession,
	},
	"viewer": {
		"model:read", "decision_table:read", "rate_card:read",
		"knowledge_base:read", "workflow:read",
		ReadOwnProfile, UpdateOwnProfile, ManageOwnSession,
	},
	"default": {ReadOwnProfile, UpdateOwnProfile, ManageOwnSession},
}
