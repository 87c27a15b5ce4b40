package database

// Row is a fetched result row: column names and values in result order,
// detached from the iterator that produced it.
type Row struct {
	columns []string
	values  []any
}

// NewRow builds a row from parallel column and value slices.
func NewRow(columns []string, values []any) Row {
	return Row{columns: columns, values: values}
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	return r.columns
}

// Values returns the column values in result order.
func (r Row) Values() []any {
	return r.values
}

// Get returns the value of the named column and whether the column exists.
func (r Row) Get(column string) (any, bool) {
	for i, col := range r.columns {
		if col == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// ReadRow materializes the iterator's current row. Next must have returned
// true before calling.
func ReadRow(rows Rows) (Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return Row{}, err
	}
	values, err := rows.Values()
	if err != nil {
		return Row{}, err
	}
	return NewRow(columns, values), nil
}
