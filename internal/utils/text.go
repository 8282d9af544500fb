package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanUTF8 drops invalid UTF-8 sequences and NUL bytes, which PostgreSQL
// rejects in text columns. The boolean reports whether anything changed.
func CleanUTF8(input string) (string, bool) {
	if !strings.Contains(input, "\x00") && utf8.ValidString(input) {
		return input, false
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return cleaned, true
}

// CleanText is CleanUTF8 followed by trimming surrounding whitespace
func CleanText(input string) string {
	cleaned, _ := CleanUTF8(input)
	return strings.TrimSpace(cleaned)
}
