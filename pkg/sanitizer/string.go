package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeID canonicalizes a customer or trainer identifier so that
// "  Alice@Gym.com " and "alice@gym.com" compare equal.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}
