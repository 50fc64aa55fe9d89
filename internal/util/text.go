package util

import (
	"strings"
	"unicode/utf8"
)

func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

// TruncateRunes cuts value to at most n runes and appends suffix when it was
// cut. Multi-byte characters are never split.
func TruncateRunes(value string, n int, suffix string) string {
	if n < 0 || utf8.RuneCountInString(value) <= n {
		return value
	}
	i := 0
	for pos := range value {
		if i == n {
			return value[:pos] + suffix
		}
		i++
	}
	return value
}
