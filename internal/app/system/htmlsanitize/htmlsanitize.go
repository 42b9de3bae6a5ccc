// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from member-supplied text
// before it is stored. Suggestion intake runs all free-form fields
// through Strict so stored questions never carry markup or scripts.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strictPolicy = bluemonday.StrictPolicy()

// Strict removes all HTML, returning plain text only.
func Strict(s string) string {
	return strictPolicy.Sanitize(s)
}
