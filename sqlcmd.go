// Package sqlcmd is a thin convenience layer over a relational database:
// one connection handle, a registry of named SQL templates, fill-in builders
// for INSERT and UPDATE statements, and pass-through execute, fetch, commit
// and rollback.
//
// A Conn owns a single executor and a single active row cursor. It is not
// safe for concurrent use; callers sharing a Conn across goroutines must
// provide their own locking.
package sqlcmd

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/sqlcmd/builder"
	"github.com/Konsultn-Engineering/sqlcmd/command"
	"github.com/Konsultn-Engineering/sqlcmd/connector"
	"github.com/Konsultn-Engineering/sqlcmd/database"
	"github.com/Konsultn-Engineering/sqlcmd/dialect"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("connection closed")

	// ErrNoQuery is returned by the fetch operations when no query has been
	// executed on this connection yet.
	ErrNoQuery = errors.New("no active query")
)

// Conn is a database connection with a command registry. Statements run
// inside an implicitly opened transaction; nothing is durable until Commit.
type Conn struct {
	db      database.Database
	conn    connector.Connection
	cmds    *command.Registry
	builder *builder.Builder

	tx     database.Tx
	rows   database.Rows
	closed bool
}

// New wraps an existing executor. The caller keeps responsibility for the
// executor's configuration; Close will close it.
func New(db database.Database, d dialect.Dialect) *Conn {
	return &Conn{
		db:      db,
		cmds:    command.NewRegistry(nil),
		builder: builder.New(d),
	}
}

// Connect opens a connection through the named registered provider.
func Connect(ctx context.Context, provider string, cfg connector.Config) (*Conn, error) {
	cn, err := connector.New(provider, cfg)
	if err != nil {
		return nil, err
	}
	conn, err := cn.Connect(ctx)
	if err != nil {
		return nil, err
	}
	c := New(conn.Database(), conn.Dialect())
	c.conn = conn
	return c, nil
}

// ConnectWithRetry is Connect with exponential-backoff retry.
func ConnectWithRetry(ctx context.Context, provider string, cfg connector.Config, opts connector.RetryOptions) (*Conn, error) {
	cn, err := connector.New(provider, cfg)
	if err != nil {
		return nil, err
	}
	conn, err := cn.ConnectWithRetry(ctx, opts)
	if err != nil {
		return nil, err
	}
	c := New(conn.Database(), conn.Dialect())
	c.conn = conn
	return c, nil
}

// WithCommands registers all templates from m, overwriting existing
// identifiers. Returns the Conn for chaining.
func (c *Conn) WithCommands(m map[string]string) *Conn {
	for id, tmpl := range m {
		c.cmds.Set(command.Identifier(id), tmpl)
	}
	return c
}

// QuotedIdentifiers switches the statement builders to quote every column
// identifier with the dialect's quoting style.
func (c *Conn) QuotedIdentifiers() *Conn {
	c.builder = c.builder.Quoted()
	return c
}

// Commands returns the command registry.
func (c *Conn) Commands() *command.Registry {
	return c.cmds
}

// SetCommand stores a template under id, overwriting any previous value.
func (c *Conn) SetCommand(id command.Identifier, template string) {
	c.cmds.Set(id, template)
}

// Dialect returns the dialect statements are built for.
func (c *Conn) Dialect() dialect.Dialect {
	return c.builder.Dialect()
}

// runner returns the transaction statements execute on, opening it lazily.
func (c *Conn) runner(ctx context.Context) (database.Tx, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.tx == nil {
		tx, err := c.db.BeginTx(ctx)
		if err != nil {
			return nil, err
		}
		c.tx = tx
	}
	return c.tx, nil
}

// closeRows releases the active cursor, if any.
func (c *Conn) closeRows() error {
	if c.rows == nil {
		return nil
	}
	err := c.rows.Close()
	c.rows = nil
	return err
}

// Call executes the named command with args and installs its result as the
// active cursor for the fetch operations.
func (c *Conn) Call(ctx context.Context, cmd command.Identifier, args ...any) error {
	tmpl, err := c.cmds.Get(cmd)
	if err != nil {
		return err
	}
	tx, err := c.runner(ctx)
	if err != nil {
		return err
	}
	if err := c.closeRows(); err != nil {
		return err
	}
	rows, err := tx.QueryContext(ctx, tmpl, args...)
	if err != nil {
		return err
	}
	c.rows = rows
	return nil
}

// Exec executes the named command with args and returns the affected row
// count, leaving the active cursor untouched.
func (c *Conn) Exec(ctx context.Context, cmd command.Identifier, args ...any) (int64, error) {
	tmpl, err := c.cmds.Get(cmd)
	if err != nil {
		return 0, err
	}
	tx, err := c.runner(ctx)
	if err != nil {
		return 0, err
	}
	return tx.ExecContext(ctx, tmpl, args...)
}

// CallMany executes the named command once per argument batch.
func (c *Conn) CallMany(ctx context.Context, cmd command.Identifier, batches [][]any) error {
	tmpl, err := c.cmds.Get(cmd)
	if err != nil {
		return err
	}
	tx, err := c.runner(ctx)
	if err != nil {
		return err
	}
	return tx.ExecMany(ctx, tmpl, batches)
}

// FillInsert fills the named insert template with the mapping's columns and
// placeholders, executes it and returns the affected row count.
func (c *Conn) FillInsert(ctx context.Context, cmd command.Identifier, fields *builder.Fields) (int64, error) {
	tmpl, err := c.cmds.Get(cmd)
	if err != nil {
		return 0, err
	}
	stmt, vals, err := c.builder.Insert(tmpl, fields)
	if err != nil {
		return 0, err
	}
	tx, err := c.runner(ctx)
	if err != nil {
		return 0, err
	}
	return tx.ExecContext(ctx, stmt, vals...)
}

// FillUpdate appends SET and WHERE clauses to the named update template from
// a single mapping, executes it and returns the affected row count. Columns
// listed in condKeys become WHERE conditions joined by connectors; the rest
// form the SET clause.
func (c *Conn) FillUpdate(ctx context.Context, cmd command.Identifier, fields *builder.Fields, condKeys []string, connectors []builder.Connector) (int64, error) {
	tmpl, err := c.cmds.Get(cmd)
	if err != nil {
		return 0, err
	}
	stmt, vals, err := c.builder.Update(tmpl, fields, condKeys, connectors)
	if err != nil {
		return 0, err
	}
	tx, err := c.runner(ctx)
	if err != nil {
		return 0, err
	}
	return tx.ExecContext(ctx, stmt, vals...)
}

// FetchOne returns the next row of the active cursor, or nil when the
// cursor is exhausted.
func (c *Conn) FetchOne() (*database.Row, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.rows == nil {
		return nil, ErrNoQuery
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	row, err := database.ReadRow(c.rows)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Fetch returns up to n rows from the active cursor. n <= 0 returns an
// empty result without touching the cursor.
func (c *Conn) Fetch(n int) ([]database.Row, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.rows == nil {
		return nil, ErrNoQuery
	}
	if n <= 0 {
		return nil, nil
	}

	rows := make([]database.Row, 0, n)
	for len(rows) < n && c.rows.Next() {
		row, err := database.ReadRow(c.rows)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := c.rows.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchAll drains the active cursor.
func (c *Conn) FetchAll() ([]database.Row, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.rows == nil {
		return nil, ErrNoQuery
	}

	var rows []database.Row
	for c.rows.Next() {
		row, err := database.ReadRow(c.rows)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := c.rows.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Commit commits the open transaction. The active cursor is released first,
// since it belongs to the transaction. A commit with no open transaction is
// a no-op.
func (c *Conn) Commit(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.closeRows(); err != nil {
		return err
	}
	if c.tx == nil {
		return nil
	}
	err := c.tx.Commit(ctx)
	c.tx = nil
	return err
}

// Rollback discards the open transaction. A rollback with no open
// transaction is a no-op.
func (c *Conn) Rollback(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.closeRows(); err != nil {
		return err
	}
	if c.tx == nil {
		return nil
	}
	err := c.tx.Rollback(ctx)
	c.tx = nil
	return err
}

// Ping verifies the underlying connection is alive.
func (c *Conn) Ping(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	return c.db.PingContext(ctx)
}

// Stats reports pool statistics when the Conn was opened through a
// provider; otherwise zero stats.
func (c *Conn) Stats() connector.ConnectionStats {
	if c.conn == nil {
		return connector.ConnectionStats{}
	}
	return c.conn.Stats()
}

// Close releases the cursor, rolls back any uncommitted transaction and
// closes the underlying connection. Close is idempotent; resources are
// released exactly once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error
	if c.rows != nil {
		if err := c.rows.Close(); err != nil {
			firstErr = err
		}
		c.rows = nil
	}
	if c.tx != nil {
		if err := c.tx.Rollback(context.Background()); err != nil && firstErr == nil {
			firstErr = err
		}
		c.tx = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	} else if err := c.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
