package extract

import "strings"

// Extract returns the best-effort JSON object substring of raw. It never
// fails: when nothing brace-delimited can be found, the fence-stripped
// text is returned unchanged and the caller's parser decides its fate.
//
// Candidates are tried in priority order:
//  1. The trimmed input itself, when it already starts with '{' and a
//     closing '}' appears later (fast path for clean output).
//  2. The same check after stripping a wrapping markdown fence.
//  3. The substring from the first '{' through the last '}' of the
//     fence-stripped text, provided they are ordered.
//  4. The fence-stripped text unchanged.
func Extract(raw string) string {
	s := strings.TrimSpace(raw)
	if looksLikeObject(s) {
		return s
	}

	s = StripFences(s)
	if looksLikeObject(s) {
		return s
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// StripFences removes a markdown code fence wrapping s, if present: a
// leading ```json or ``` marker (case-insensitive) and a trailing ```
// marker. Text without a leading fence is returned trimmed but otherwise
// untouched.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = s[3:]
	// The opening marker may carry a json language tag.
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

func looksLikeObject(s string) bool {
	return strings.HasPrefix(s, "{") && strings.Contains(s, "}")
}
