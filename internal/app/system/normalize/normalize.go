// Package normalize provides canonical forms for user-entered identity
// fields so lookups behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Client portal logins are
// matched to client records by this canonical form, so every write and
// lookup must go through it.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person or firm name and collapses internal runs of spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Subdomain lowercases and trims a firm subdomain label.
func Subdomain(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Module canonicalizes a resource-module name for capability lookups:
// underscores become hyphens, so "time_entries" and "time-entries" resolve
// to the same capability names.
func Module(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
}
