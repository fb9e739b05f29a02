package scrape

import (
	"regexp"
	"strings"
	"unicode"
)

// tagPattern matches anything that looks like a tag. The dot does not cross
// newlines, so a tag split over lines survives.
var tagPattern = regexp.MustCompile(`<.*?>`)

// StripTags removes every tag-like substring from raw.
func StripTags(raw string) string {
	return tagPattern.ReplaceAllString(raw, "")
}

// RemoveWhitespace drops every Unicode whitespace rune and the ASCII
// information separators U+001C..U+001F.
func RemoveWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, text)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CleanLyrics turns the raw inner HTML of a lyrics container into password text.
func CleanLyrics(raw string) string {
	return RemoveWhitespace(StripTags(raw))
}
