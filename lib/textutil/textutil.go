package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// Bounds diagnostic detail (usually an upstream response body) so error
// messages stay readable.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// back up to a rune boundary so a multi-byte rune is never split
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
