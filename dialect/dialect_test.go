package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	pg := NewPostgresDialect()
	assert.Equal(t, "$1", pg.Placeholder(1))
	assert.Equal(t, "$17", pg.Placeholder(17))

	assert.Equal(t, "?", NewMySQLDialect().Placeholder(1))
	assert.Equal(t, "?", NewMySQLDialect().Placeholder(9))
	assert.Equal(t, "?", NewSQLServerDialect().Placeholder(4))
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"name"`, NewPostgresDialect().QuoteIdentifier("name"))
	assert.Equal(t, "`name`", NewMySQLDialect().QuoteIdentifier("name"))
	assert.Equal(t, "[name]", NewSQLServerDialect().QuoteIdentifier("name"))
}

func TestValidIdentifier(t *testing.T) {
	dialects := []Dialect{
		NewPostgresDialect(),
		NewMySQLDialect(),
		NewSQLServerDialect(),
	}

	valid := []string{"name", "_private", "col_1", "UserID", "a"}
	invalid := []string{
		"",
		"1col",
		"na me",
		"name;--",
		"name,age",
		`name"`,
		"col.name",
	}

	for _, d := range dialects {
		for _, id := range valid {
			assert.True(t, d.ValidIdentifier(id), "%s should accept %q", d.Name(), id)
		}
		for _, id := range invalid {
			assert.False(t, d.ValidIdentifier(id), "%s should reject %q", d.Name(), id)
		}
	}
}

func TestIdentifierLengthCaps(t *testing.T) {
	long := strings.Repeat("a", 64)
	assert.False(t, NewPostgresDialect().ValidIdentifier(long), "postgres caps at 63")
	assert.True(t, NewMySQLDialect().ValidIdentifier(long))
	assert.True(t, NewSQLServerDialect().ValidIdentifier(long))
	assert.False(t, NewSQLServerDialect().ValidIdentifier(strings.Repeat("a", 129)))
}
