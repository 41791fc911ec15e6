package common

import (
	"strings"
	"unicode"
)

// UnknownStr is the fallback String() value for enum types.
const UnknownStr = "unknown"

// SnakeCase converts a CamelCase identifier to snake_case.
// Used for generated file names (e.g., "LinkedStack" -> "linked_stack").
func SnakeCase(s string) string {
	var sb strings.Builder

	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Exported returns the identifier with its first rune upper-cased.
func Exported(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// Unexported returns the identifier with its first rune lower-cased.
func Unexported(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}
