// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases an email address.
// Member emails are stored and compared in this normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Text trims surrounding whitespace from free-form input (question text,
// follow-up examples, use-case labels). Case is preserved.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Category trims and lowercases a category tag.
func Category(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// VoteType trims and lowercases a vote type value from the wire.
func VoteType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
