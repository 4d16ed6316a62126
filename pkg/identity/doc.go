// Package identity carries the authenticated request identity through
// request contexts. The session middleware stores an Identity after token
// verification; handlers retrieve it to run permission checks.
package identity
