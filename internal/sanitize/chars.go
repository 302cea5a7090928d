package sanitize

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// IsXMLChar reports whether r is allowed by the XML 1.0 Char production.
func IsXMLChar(r rune) bool {
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

var stripIllegal = runes.Remove(runes.Predicate(func(r rune) bool { return !IsXMLChar(r) }))

// decode replaces every invalid UTF-8 byte with U+FFFD and drops characters
// XML cannot carry. It returns the cleaned text and the two repair counts.
// The result never aliases b, so the caller may drop b afterwards.
func decode(b []byte) ([]byte, int, int, error) {
	invalid := countInvalidUTF8(b)
	decoded := b
	if invalid > 0 {
		var err error
		decoded, _, err = transform.Bytes(unicode.UTF8.NewDecoder(), b)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("decode utf-8: %w", err)
		}
	}
	stripped, _, err := transform.Bytes(stripIllegal, decoded)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("strip illegal characters: %w", err)
	}
	removed := utf8.RuneCount(decoded) - utf8.RuneCount(stripped)
	return stripped, invalid, removed, nil
}

func countInvalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return 0
	}
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			n++
		}
		b = b[size:]
	}
	return n
}
