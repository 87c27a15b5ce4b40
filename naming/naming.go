// Package naming converts Go-style entity names into database table and
// column names for command-template scaffolding.
package naming

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// pluralizeClient is a singleton instance for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// TableName derives a snake_case, pluralized table name from an entity name:
// "User" -> "users", "BlogPost" -> "blog_posts".
func TableName(entity string) string {
	return pluralizeClient.Plural(SnakeCase(entity))
}

// SnakeCase converts a PascalCase or camelCase name to snake_case, keeping
// initialisms readable: "UserID" -> "user_id", "HTTPServer" -> "http_server".
func SnakeCase(name string) string {
	if name == "" {
		return ""
	}

	// Already snake_case: normalize and return.
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return strings.ToLower(name)
	}

	var result strings.Builder
	result.Grow(len(name) + 8)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// aB -> a_b, a1B -> a1_b, ABc -> a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteByte('_')
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
