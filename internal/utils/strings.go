package utils

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxStringLength caps truncated strings when no explicit limit is given.
const DefaultMaxStringLength = 500

// TruncateString shortens s to at most maxLen bytes, appending a suffix that
// records the original length so callers know data was omitted. The cut never
// lands inside a UTF-8 sequence, so truncated diagrams and converted snippets
// stay printable in log output. If maxLen is zero or negative,
// [DefaultMaxStringLength] is used.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:cut], len(s))
}
