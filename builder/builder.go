// Package builder assembles INSERT and UPDATE statements from a column/value
// mapping, producing the final SQL text and the bound-parameter list in
// matching order. Values are always bound through dialect placeholders;
// column names are interpolated and therefore validated against the
// dialect's identifier rules first.
package builder

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlcmd/dialect"
)

// Connector joins two adjacent WHERE conditions.
type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

func (c Connector) valid() bool {
	return c == And || c == Or
}

// Builder fills command templates for one dialect.
type Builder struct {
	dialect dialect.Dialect
	quote   bool
}

// New returns a builder emitting bare column identifiers, the common case
// for schemas with lower-case names.
func New(d dialect.Dialect) *Builder {
	return &Builder{dialect: d}
}

// Quoted returns a builder that additionally quotes every column identifier
// with the dialect's quoting style.
func (b *Builder) Quoted() *Builder {
	return &Builder{dialect: b.dialect, quote: true}
}

// Dialect returns the dialect statements are built for.
func (b *Builder) Dialect() dialect.Dialect {
	return b.dialect
}

// CheckInsertTemplate verifies that template carries exactly the two %s
// slots Insert fills and no other format verbs.
func CheckInsertTemplate(template string) error {
	if strings.Count(template, "%s") != 2 || strings.Count(template, "%") != 2 {
		return fmt.Errorf("%w: want exactly two %%s slots in %q", ErrBadTemplate, template)
	}
	return nil
}

// Insert fills an insert template with the mapping's column list and a
// matching placeholder list, returning the statement and the values to bind
// in column order.
func (b *Builder) Insert(template string, fields *Fields) (string, []any, error) {
	if fields == nil || fields.Len() == 0 {
		return "", nil, ErrEmptyMapping
	}
	if err := CheckInsertTemplate(template); err != nil {
		return "", nil, err
	}

	cols, vals, err := fields.resolve()
	if err != nil {
		return "", nil, err
	}
	if err := b.checkIdentifiers(cols); err != nil {
		return "", nil, err
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = b.dialect.Placeholder(i + 1)
	}

	stmt := fmt.Sprintf(template,
		strings.Join(b.emit(cols), ", "),
		strings.Join(placeholders, ", "))
	return stmt, vals, nil
}

// checkIdentifiers rejects any column name the dialect will not accept.
func (b *Builder) checkIdentifiers(cols []string) error {
	for _, col := range cols {
		if !b.dialect.ValidIdentifier(col) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, col)
		}
	}
	return nil
}

// emit returns the identifiers as written into SQL text, quoted if the
// builder was configured that way.
func (b *Builder) emit(cols []string) []string {
	if !b.quote {
		return cols
	}
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = b.dialect.QuoteIdentifier(col)
	}
	return out
}
