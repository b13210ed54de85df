// Package text holds rune-aware string helpers. Content from the feed and
// rendered pages is mostly Japanese, so lengths are counted in characters.
package text

import "unicode/utf8"

// CountRunes returns the number of characters in s.
//
//	CountRunes("週刊AWS") // 5
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate cuts s to at most n characters without splitting a multi-byte
// character. n <= 0 yields the empty string.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if CountRunes(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
