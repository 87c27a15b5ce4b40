package builder

import (
	"fmt"
	"strings"
)

// Update builds `<template> SET col = ?, ... WHERE cond = ? AND cond = ?`
// from a single mapping. Columns named in condKeys become WHERE conditions,
// the rest form the SET clause; both keep the mapping's insertion order.
// connectors joins adjacent conditions and must hold exactly
// len(condKeys)-1 entries.
//
// The returned values are the SET values followed by the condition values,
// matching placeholder order exactly.
//
// An update with no conditional keys is rejected with ErrMissingWhereClause
// instead of updating every row.
func (b *Builder) Update(template string, fields *Fields, condKeys []string, connectors []Connector) (string, []any, error) {
	if fields == nil || fields.Len() == 0 {
		return "", nil, ErrEmptyMapping
	}
	if len(condKeys) == 0 {
		return "", nil, ErrMissingWhereClause
	}
	if len(connectors) != len(condKeys)-1 {
		return "", nil, fmt.Errorf("%w: %d conditions need %d connectors, got %d",
			ErrConnectorCountMismatch, len(condKeys), len(condKeys)-1, len(connectors))
	}
	for _, c := range connectors {
		if !c.valid() {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidConnector, c)
		}
	}

	conditional := make(map[string]bool, len(condKeys))
	for _, key := range condKeys {
		if conditional[key] {
			return "", nil, fmt.Errorf("%w: %q", ErrDuplicateConditionalKey, key)
		}
		if !fields.Has(key) {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownConditionalKey, key)
		}
		conditional[key] = true
	}

	cols, vals, err := fields.resolve()
	if err != nil {
		return "", nil, err
	}
	if err := b.checkIdentifiers(cols); err != nil {
		return "", nil, err
	}

	// Partition into set and condition entries, preserving mapping order.
	var setCols, condCols []string
	var setVals, condVals []any
	for i, col := range cols {
		if conditional[col] {
			condCols = append(condCols, col)
			condVals = append(condVals, vals[i])
		} else {
			setCols = append(setCols, col)
			setVals = append(setVals, vals[i])
		}
	}
	if len(setCols) == 0 {
		return "", nil, ErrEmptySetClause
	}

	var stmt strings.Builder
	if trimmed := strings.TrimRight(template, " "); trimmed != "" {
		stmt.WriteString(trimmed)
		stmt.WriteByte(' ')
	}

	n := 0
	stmt.WriteString("SET ")
	for i, col := range b.emit(setCols) {
		if i > 0 {
			stmt.WriteString(", ")
		}
		n++
		stmt.WriteString(col)
		stmt.WriteString(" = ")
		stmt.WriteString(b.dialect.Placeholder(n))
	}

	stmt.WriteString(" WHERE ")
	for i, col := range b.emit(condCols) {
		if i > 0 {
			stmt.WriteByte(' ')
			stmt.WriteString(string(connectors[i-1]))
			stmt.WriteByte(' ')
		}
		n++
		stmt.WriteString(col)
		stmt.WriteString(" = ")
		stmt.WriteString(b.dialect.Placeholder(n))
	}

	return stmt.String(), append(setVals, condVals...), nil
}
