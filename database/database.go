// Package database abstracts the SQL executor the command layer runs
// against: execute a parameterized statement, iterate rows, batch, and
// manage transactions. Implementations exist for pgx pools and for any
// database/sql driver.
package database

import "context"

// Database executes parameterized statements. Driver errors propagate
// unchanged; this layer adds no interpretation.
type Database interface {
	// QueryContext executes a statement that may return rows.
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)

	// ExecContext executes a statement and returns the affected row count.
	ExecContext(ctx context.Context, query string, args ...any) (int64, error)

	// ExecMany executes the same statement once per argument batch.
	ExecMany(ctx context.Context, query string, batches [][]any) error

	// BeginTx starts a transaction.
	BeginTx(ctx context.Context) (Tx, error)

	// PingContext verifies the connection is alive.
	PingContext(ctx context.Context) error

	Close() error
}

// Tx is an open transaction. Statements run inside it until Commit or
// Rollback, after which the Tx must not be reused.
type Tx interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (int64, error)
	ExecMany(ctx context.Context, query string, batches [][]any) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Rows is a forward-only row iterator.
type Rows interface {
	Next() bool
	Scan(dest ...any) error

	// Values returns the current row's column values in column order.
	Values() ([]any, error)

	Columns() ([]string, error)
	Err() error
	Close() error
}
