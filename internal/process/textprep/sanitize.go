// Package textprep holds the text normalization steps applied to a post
// before it reaches the classifier: character whitelisting and stopword removal.
package textprep

import "regexp"

// disallowedRun matches a maximal run of characters outside the whitelist:
// ASCII digits and letters, the Arabic letter block, both Arabic presentation
// form blocks, and the plain space.
var disallowedRun = regexp.MustCompile(`[^0-9A-Za-z\x{0621}-\x{064A}\x{FB50}-\x{FDFF}\x{FE70}-\x{FEFC} ]+`)

// Sanitize replaces every run of disallowed characters with a single space.
// Text made only of whitelisted characters is returned unchanged.
func Sanitize(text string) string {
	return disallowedRun.ReplaceAllLiteralString(text, " ")
}

// IsSanitized reports whether text contains only whitelisted characters.
func IsSanitized(text string) bool {
	return !disallowedRun.MatchString(text)
}
