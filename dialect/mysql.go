package dialect

// MySQL uses positional ? placeholders and backtick-quoted identifiers.
type MySQL struct{}

func NewMySQLDialect() Dialect {
	return MySQL{}
}

func (MySQL) Name() string {
	return "mysql"
}

func (MySQL) QuoteIdentifier(name string) string {
	return "`" + name + "`"
}

func (MySQL) Placeholder(n int) string {
	return "?"
}

func (MySQL) ValidIdentifier(name string) bool {
	return validIdent(name, 64)
}
