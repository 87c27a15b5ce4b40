package dialect

import "strconv"

// Postgres uses numbered $n placeholders and double-quoted identifiers.
// Identifier length is capped at 63 bytes (NAMEDATALEN - 1).
type Postgres struct{}

func NewPostgresDialect() Dialect {
	return Postgres{}
}

func (Postgres) Name() string {
	return "postgres"
}

func (Postgres) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) ValidIdentifier(name string) bool {
	return validIdent(name, 63)
}
