package normalizer

import (
	"strings"
	"unicode"
)

// NormaliseString strips everything except ASCII word characters and whitespace,
// then trims the ends. Internal whitespace of any kind (newlines, NBSP) is left as is.
func NormaliseString(value string) string {
	if value == "" {
		return value
	}

	return strings.TrimFunc(strings.Map(keepWordOrSpace, value), unicode.IsSpace)
}

// keepWordOrSpace drops runes outside [A-Za-z0-9_] that are not whitespace.
func keepWordOrSpace(r rune) rune {
	if isASCIIWord(r) || unicode.IsSpace(r) {
		return r
	}

	return -1
}

func isASCIIWord(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
