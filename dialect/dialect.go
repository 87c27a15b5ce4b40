package dialect

import "unicode"

// Dialect captures the per-database rules the statement builders depend on:
// placeholder style, identifier quoting, and the lexical rules a column or
// table name must satisfy before it may be interpolated into SQL text.
//
// Only values are ever bound through placeholders; identifiers are spliced
// into the statement, so ValidIdentifier is the gate that keeps externally
// influenced names out of the final SQL.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string

	// Placeholder returns the parameter marker for the n-th bound value,
	// counting from 1. Positional dialects return "?" regardless of n.
	Placeholder(n int) string

	// ValidIdentifier reports whether name is a lexically safe identifier
	// for this dialect.
	ValidIdentifier(name string) bool
}

// validIdent is the common lexical rule shared by all shipped dialects:
// a letter or underscore followed by letters, digits or underscores, within
// the dialect's length cap. Quoted/exotic identifiers are deliberately
// rejected rather than escaped.
func validIdent(name string, maxLen int) bool {
	if name == "" || len(name) > maxLen {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
