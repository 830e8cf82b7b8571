// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// Make lowercases the name, collapses every run of non-alphanumeric
// characters to a single hyphen and strips leading/trailing hyphens.
// The result is a fixed point: Make(Make(s)) == Make(s).
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
