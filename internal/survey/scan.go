package survey

import "strings"

// maxEmbeddedPayload caps how far the scanner will walk when capturing an
// embedded JSON literal. Survey description payloads are tens of kilobytes;
// anything past this is not a form we want to parse.
const maxEmbeddedPayload = 2 << 20

// captureJSONAfter locates marker in page and returns the JSON array or
// object literal that follows it.
//
// The scan is a single forward pass tracking bracket depth and string state,
// bounded by maxLen bytes. No regular expressions: a lazy wildcard over
// attacker-supplied HTML invites pathological backtracking, and the literal's
// shape (known prefix, balanced brackets) makes linear scanning sufficient.
func captureJSONAfter(page, marker string, maxLen int) (string, bool) {
	idx := strings.Index(page, marker)
	if idx < 0 {
		return "", false
	}
	rest := page[idx+len(marker):]

	// Skip whitespace between marker and the literal.
	start := 0
	for start < len(rest) && (rest[start] == ' ' || rest[start] == '\t' || rest[start] == '\n' || rest[start] == '\r') {
		start++
	}
	if start >= len(rest) {
		return "", false
	}
	open := rest[start]
	if open != '[' && open != '{' {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	limit := len(rest)
	if start+maxLen < limit {
		limit = start + maxLen
	}
	for i := start; i < limit; i++ {
		c := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return rest[start : i+1], true
			}
		}
	}
	return "", false
}
