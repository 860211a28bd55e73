package tags

import "strings"

// MaxLen bounds a single tag identifier.
const MaxLen = 64

// PromptVersion identifies the current tagging prompt contract.
const PromptVersion = "v0"

// CoreKit is the tag every allowlist-based fallback prefers when available.
const CoreKit = "core-kit"

// Valid reports whether id is an acceptable open-vocabulary tag identifier:
// 1..64 characters of letters, digits, '-', '_' or single spaces.
func Valid(id string) bool {
	if id == "" || len(id) > MaxLen {
		return false
	}
	prevSpace := false
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			prevSpace = false
		case r == ' ':
			if prevSpace {
				return false
			}
			prevSpace = true
		default:
			return false
		}
	}
	return true
}

// Normalize canonicalizes a tag for comparison purposes.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Equal compares two tag identifiers case-insensitively.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
