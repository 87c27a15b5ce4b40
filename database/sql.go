package database

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlcmd/cache"
	"github.com/Konsultn-Engineering/sqlcmd/utils"
)

// defaultStmtCacheSize bounds the per-database prepared-statement LRU.
const defaultStmtCacheSize = 128

// SqlDatabase implements Database for any database/sql driver. Statements
// executed outside a transaction go through a prepared-statement LRU.
type SqlDatabase struct {
	db    *sql.DB
	stmts *cache.StatementCache
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB) *SqlDatabase {
	return &SqlDatabase{
		db:    db,
		stmts: cache.NewStatementCache(defaultStmtCacheSize),
	}
}

func (s *SqlDatabase) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	return s.stmts.GetOrPrepare(ctx, utils.FingerprintString(query), s.db, query)
}

func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	stmt, err := s.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (int64, error) {
	stmt, err := s.prepare(ctx, query)
	if err != nil {
		return 0, err
	}
	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ExecMany prepares once and executes per batch.
func (s *SqlDatabase) ExecMany(ctx context.Context, query string, batches [][]any) error {
	if len(batches) == 0 {
		return nil
	}
	stmt, err := s.prepare(ctx, query)
	if err != nil {
		return err
	}
	for _, args := range batches {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *SqlDatabase) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &SqlTx{tx: tx}, nil
}

func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the cached statements and then the database.
func (s *SqlDatabase) Close() error {
	_ = s.stmts.Close()
	return s.db.Close()
}

// SqlTx implements Tx over *sql.Tx.
type SqlTx struct {
	tx *sql.Tx
}

func (t *SqlTx) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

func (t *SqlTx) ExecContext(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *SqlTx) ExecMany(ctx context.Context, query string, batches [][]any) error {
	if len(batches) == 0 {
		return nil
	}
	stmt, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, args := range batches {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func (t *SqlTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *SqlTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

func (s *SqlRows) Next() bool { return s.rows.Next() }

func (s *SqlRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }

// Values scans the current row into generic values. Byte slices are
// converted to strings, matching how most drivers report text columns.
func (s *SqlRows) Values() ([]any, error) {
	columns, err := s.rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	return values, nil
}

func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }

func (s *SqlRows) Err() error { return s.rows.Err() }

func (s *SqlRows) Close() error { return s.rows.Close() }

// Assert that the database/sql types implement the executor interfaces.
var (
	_ Database = (*SqlDatabase)(nil)
	_ Tx       = (*SqlTx)(nil)
	_ Rows     = (*SqlRows)(nil)
)
