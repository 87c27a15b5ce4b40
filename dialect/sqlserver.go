package dialect

// SQLServer uses positional ? placeholders (the ODBC marker style) and
// bracket-quoted identifiers.
type SQLServer struct{}

func NewSQLServerDialect() Dialect {
	return SQLServer{}
}

func (SQLServer) Name() string {
	return "sqlserver"
}

func (SQLServer) QuoteIdentifier(name string) string {
	return "[" + name + "]"
}

func (SQLServer) Placeholder(n int) string {
	return "?"
}

func (SQLServer) ValidIdentifier(name string) bool {
	return validIdent(name, 128)
}
