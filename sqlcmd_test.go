package sqlcmd

import (
	"context"
	"testing"

	"github.com/Konsultn-Engineering/sqlcmd/builder"
	"github.com/Konsultn-Engineering/sqlcmd/command"
	"github.com/Konsultn-Engineering/sqlcmd/database"
	"github.com/Konsultn-Engineering/sqlcmd/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================================================
// Fake executor
// =========================================================================

type statement struct {
	sql  string
	args []any
}

type fakeDB struct {
	begun  int
	closed bool
	txs    []*fakeTx

	// rows returned by the next QueryContext on the open transaction
	nextRows *fakeRows
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (database.Rows, error) {
	panic("Conn must execute through a transaction")
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (int64, error) {
	panic("Conn must execute through a transaction")
}

func (f *fakeDB) ExecMany(ctx context.Context, query string, batches [][]any) error {
	panic("Conn must execute through a transaction")
}

func (f *fakeDB) BeginTx(ctx context.Context) (database.Tx, error) {
	f.begun++
	tx := &fakeTx{db: f}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeDB) PingContext(ctx context.Context) error { return nil }

func (f *fakeDB) Close() error {
	f.closed = true
	return nil
}

type fakeTx struct {
	db         *fakeDB
	queries    []statement
	execs      []statement
	batches    map[string][][]any
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...any) (database.Rows, error) {
	t.queries = append(t.queries, statement{sql: query, args: args})
	rows := t.db.nextRows
	if rows == nil {
		rows = &fakeRows{}
	}
	return rows, nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (int64, error) {
	t.execs = append(t.execs, statement{sql: query, args: args})
	return 1, nil
}

func (t *fakeTx) ExecMany(ctx context.Context, query string, batches [][]any) error {
	if t.batches == nil {
		t.batches = make(map[string][][]any)
	}
	t.batches[query] = append(t.batches[query], batches...)
	return nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeRows struct {
	columns []string
	data    [][]any
	idx     int
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return nil }

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.idx-1], nil
}

func (r *fakeRows) Columns() ([]string, error) { return r.columns, nil }

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

func newTestConn() (*Conn, *fakeDB) {
	db := &fakeDB{}
	return New(db, dialect.NewSQLServerDialect()), db
}

func userRows() *fakeRows {
	return &fakeRows{
		columns: []string{"id", "name"},
		data: [][]any{
			{1, "Ada"},
			{2, "Eve"},
			{3, "Kim"},
		},
	}
}

// =========================================================================
// Tests
// =========================================================================

func TestCallAndFetchAll(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_select", "SELECT id, name FROM users")
	db.nextRows = userRows()

	require.NoError(t, c.Call(context.Background(), "user_select"))

	rows, err := c.FetchAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	name, ok := rows[1].Get("name")
	require.True(t, ok)
	assert.Equal(t, "Eve", name)
	assert.Equal(t, []string{"id", "name"}, rows[0].Columns())
	assert.Equal(t, []any{1, "Ada"}, rows[0].Values())
}

func TestCallForwardsArgs(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("by_id", "SELECT id, name FROM users WHERE id = ?")

	require.NoError(t, c.Call(context.Background(), "by_id", 42))

	require.Len(t, db.txs, 1)
	require.Len(t, db.txs[0].queries, 1)
	assert.Equal(t, "SELECT id, name FROM users WHERE id = ?", db.txs[0].queries[0].sql)
	assert.Equal(t, []any{42}, db.txs[0].queries[0].args)
}

func TestCallUnknownCommand(t *testing.T) {
	c, _ := newTestConn()

	err := c.Call(context.Background(), "nope")
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
}

func TestFetchSemantics(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_select", "SELECT id, name FROM users")
	db.nextRows = userRows()
	require.NoError(t, c.Call(context.Background(), "user_select"))

	// n <= 0: explicit empty result, cursor untouched.
	rows, err := c.Fetch(0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, err = c.Fetch(-3)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// n == 1
	rows, err = c.Fetch(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []any{1, "Ada"}, rows[0].Values())

	// n > remaining: returns what is left.
	rows, err = c.Fetch(10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Exhausted.
	rows, err = c.Fetch(1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchOne(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_select", "SELECT id, name FROM users")
	db.nextRows = &fakeRows{columns: []string{"id"}, data: [][]any{{7}}}
	require.NoError(t, c.Call(context.Background(), "user_select"))

	row, err := c.FetchOne()
	require.NoError(t, err)
	require.NotNil(t, row)
	id, _ := row.Get("id")
	assert.Equal(t, 7, id)

	// Exhausted cursor yields nil, not an error.
	row, err = c.FetchOne()
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestFetchWithoutQuery(t *testing.T) {
	c, _ := newTestConn()

	_, err := c.Fetch(1)
	assert.ErrorIs(t, err, ErrNoQuery)
	_, err = c.FetchOne()
	assert.ErrorIs(t, err, ErrNoQuery)
	_, err = c.FetchAll()
	assert.ErrorIs(t, err, ErrNoQuery)
}

func TestCallReplacesCursor(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_select", "SELECT id, name FROM users")

	first := userRows()
	db.nextRows = first
	require.NoError(t, c.Call(context.Background(), "user_select"))

	db.nextRows = userRows()
	require.NoError(t, c.Call(context.Background(), "user_select"))

	assert.True(t, first.closed, "previous cursor must be released")
}

func TestFillInsert(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_insert", "INSERT INTO users (%s) VALUES (%s)")

	fields := builder.NewFields().
		Set("name", "Eve").
		Set("age", 30)

	n, err := c.FillInsert(context.Background(), "user_insert", fields)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.Len(t, db.txs, 1)
	require.Len(t, db.txs[0].execs, 1)
	assert.Equal(t, "INSERT INTO users (name, age) VALUES (?, ?)", db.txs[0].execs[0].sql)
	assert.Equal(t, []any{"Eve", 30}, db.txs[0].execs[0].args)
}

func TestFillInsertBuilderErrorsBeforeExecution(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_insert", "INSERT INTO users (%s) VALUES (%s)")

	_, err := c.FillInsert(context.Background(), "user_insert", builder.NewFields())
	assert.ErrorIs(t, err, builder.ErrEmptyMapping)

	// Fail fast: nothing reached the executor.
	assert.Empty(t, db.txs)
}

func TestFillUpdate(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_update", "UPDATE users ")

	fields := builder.NewFields().
		Set("name", "Eve").
		Set("age", 30).
		Set("id", 3)

	n, err := c.FillUpdate(context.Background(), "user_update", fields, []string{"id"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.Len(t, db.txs, 1)
	require.Len(t, db.txs[0].execs, 1)
	assert.Equal(t, "UPDATE users SET name = ?, age = ? WHERE id = ?", db.txs[0].execs[0].sql)
	assert.Equal(t, []any{"Eve", 30, 3}, db.txs[0].execs[0].args)
}

func TestFillUpdateRejectsMissingWhere(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_update", "UPDATE users ")

	fields := builder.NewFields().Set("name", "Eve")
	_, err := c.FillUpdate(context.Background(), "user_update", fields, nil, nil)
	assert.ErrorIs(t, err, builder.ErrMissingWhereClause)
	assert.Empty(t, db.txs)
}

func TestCallMany(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_insert_row", "INSERT INTO users (name) VALUES (?)")

	batches := [][]any{{"Ada"}, {"Eve"}, {"Kim"}}
	require.NoError(t, c.CallMany(context.Background(), "user_insert_row", batches))

	require.Len(t, db.txs, 1)
	assert.Equal(t, batches, db.txs[0].batches["INSERT INTO users (name) VALUES (?)"])
}

func TestCommitAndLazyTransaction(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_insert", "INSERT INTO users (%s) VALUES (%s)")

	// Commit with no statements: no transaction was ever opened.
	require.NoError(t, c.Commit(context.Background()))
	assert.Zero(t, db.begun)

	_, err := c.FillInsert(context.Background(), "user_insert", builder.NewFields().Set("name", "Ada"))
	require.NoError(t, err)
	assert.Equal(t, 1, db.begun)

	require.NoError(t, c.Commit(context.Background()))
	assert.True(t, db.txs[0].committed)

	// Next statement opens a fresh transaction.
	_, err = c.FillInsert(context.Background(), "user_insert", builder.NewFields().Set("name", "Eve"))
	require.NoError(t, err)
	assert.Equal(t, 2, db.begun)
}

func TestRollback(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_insert", "INSERT INTO users (%s) VALUES (%s)")

	_, err := c.FillInsert(context.Background(), "user_insert", builder.NewFields().Set("name", "Ada"))
	require.NoError(t, err)

	require.NoError(t, c.Rollback(context.Background()))
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestCloseIsIdempotent(t *testing.T) {
	c, db := newTestConn()
	c.SetCommand("user_select", "SELECT id, name FROM users")
	rows := userRows()
	db.nextRows = rows
	require.NoError(t, c.Call(context.Background(), "user_select"))

	require.NoError(t, c.Close())
	assert.True(t, db.closed)
	assert.True(t, rows.closed)
	assert.True(t, db.txs[0].rolledBack, "uncommitted work is rolled back on close")

	// Second close releases nothing twice.
	db.closed = false
	require.NoError(t, c.Close())
	assert.False(t, db.closed)
}

func TestOperationsAfterClose(t *testing.T) {
	c, _ := newTestConn()
	c.SetCommand("q", "SELECT 1")
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.Call(context.Background(), "q"), ErrClosed)
	_, err := c.Fetch(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.Commit(context.Background()), ErrClosed)
	assert.ErrorIs(t, c.Rollback(context.Background()), ErrClosed)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrClosed)
}

func TestQuotedIdentifiers(t *testing.T) {
	db := &fakeDB{}
	c := New(db, dialect.NewPostgresDialect()).QuotedIdentifiers()
	c.SetCommand("user_insert", "INSERT INTO users (%s) VALUES (%s)")

	_, err := c.FillInsert(context.Background(), "user_insert", builder.NewFields().Set("name", "Ada"))
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO users ("name") VALUES ($1)`, db.txs[0].execs[0].sql)
}

func TestWithCommands(t *testing.T) {
	c, _ := newTestConn()
	c.WithCommands(map[string]string{
		"a": "SELECT 1",
		"b": "SELECT 2",
	})

	assert.True(t, c.Commands().Has("a"))
	assert.True(t, c.Commands().Has("b"))
	assert.Equal(t, 2, c.Commands().Len())
}
