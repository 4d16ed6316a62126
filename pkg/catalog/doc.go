// Package catalog defines the static permission registry.
//
// Every permission in the console is identified by a slug of the form
// "resource:action" (e.g. "model:create"). The catalog maps slugs to human
// metadata used for grouping in the UI, and defines the default policy
// bundles attached to newly created roles. Entries are pure data: they are
// defined at build time, optionally overlaid from a YAML file at startup,
// and never mutated while the server runs.
package catalog
