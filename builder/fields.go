package builder

import (
	"fmt"

	"github.com/Konsultn-Engineering/sqlcmd/genid"
)

// Fields is an insertion-ordered column/value mapping. Ordering is
// significant: the builders emit columns and bind parameters in the order
// the columns were first Set.
type Fields struct {
	keys   []string
	values map[string]any
	gens   map[string]genid.Generator
}

// NewFields returns an empty mapping.
func NewFields() *Fields {
	return &Fields{
		values: make(map[string]any),
	}
}

// Set stores value under column. Setting an existing column overwrites its
// value but keeps its original position.
func (f *Fields) Set(column string, value any) *Fields {
	if _, ok := f.values[column]; !ok {
		if f.gens == nil || f.gens[column] == nil {
			f.keys = append(f.keys, column)
		}
	}
	f.values[column] = value
	if f.gens != nil {
		delete(f.gens, column)
	}
	return f
}

// SetGenerated marks column as generated: its value is minted by gen when a
// statement is built, one fresh value per build.
func (f *Fields) SetGenerated(column string, gen genid.Generator) *Fields {
	if _, exists := f.values[column]; !exists {
		if f.gens == nil || f.gens[column] == nil {
			f.keys = append(f.keys, column)
		}
	}
	delete(f.values, column)
	if f.gens == nil {
		f.gens = make(map[string]genid.Generator)
	}
	f.gens[column] = gen
	return f
}

// Len returns the number of columns.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Columns returns the column names in insertion order.
func (f *Fields) Columns() []string {
	cols := make([]string, len(f.keys))
	copy(cols, f.keys)
	return cols
}

// Has reports whether column is present.
func (f *Fields) Has(column string) bool {
	if _, ok := f.values[column]; ok {
		return true
	}
	_, ok := f.gens[column]
	return ok
}

// resolve returns columns and values in insertion order, minting generated
// values as it goes.
func (f *Fields) resolve() ([]string, []any, error) {
	cols := f.Columns()
	vals := make([]any, len(cols))
	for i, col := range cols {
		if gen, ok := f.gens[col]; ok {
			v, err := gen.Generate()
			if err != nil {
				return nil, nil, fmt.Errorf("generate %s for column %q: %w", gen.Type(), col, err)
			}
			vals[i] = v
			continue
		}
		vals[i] = f.values[col]
	}
	return cols, vals, nil
}
