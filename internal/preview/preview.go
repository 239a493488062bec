// Package preview derives a human-readable article title from a Wikipedia URL
// while the user is still typing it.
package preview

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const wikiSegment = "/wiki/"

// Title returns the article title encoded in raw, or "" when raw has no
// /wiki/ segment or does not decode to valid UTF-8. Only the text between
// the first /wiki/ and any later one is used.
func Title(raw string) string {
	_, rest, ok := strings.Cut(raw, wikiSegment)
	if !ok {
		return ""
	}
	rest, _, _ = strings.Cut(rest, wikiSegment)
	title, err := url.PathUnescape(strings.ReplaceAll(rest, "_", " "))
	if err != nil || !utf8.ValidString(title) {
		return ""
	}
	return title
}
