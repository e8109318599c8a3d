package sqlnav

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sqlnav/querysql"
)

// Conn is the database capability sqlnav needs: run a parameterized
// statement, and run a parameterized query returning rows.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Database is the root view over a connection.
//
// Every Table, Column and RowMatcher derived from a Database issues its
// statements through the same Conn, one at a time, in call order. A
// Database does no locking of its own: concurrent use from several
// goroutines requires external synchronisation.
//
// A Database never closes its Conn; the connection belongs to the caller.
type Database struct {
	conn   Conn
	logger *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger that receives one Debug record per statement.
//
// Default: logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Database) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New wraps a connection.
func New(conn Conn, opts ...Option) *Database {
	d := &Database{
		conn:   conn,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tables returns the names of all user tables in creation order.
func (d *Database) Tables(ctx context.Context) ([]string, error) {
	return d.queryStrings(ctx, querysql.ListTables(), nil)
}

// HasTable reports whether a table with the given name exists. Names
// compare case-insensitively, like column names and SQLite itself.
func (d *Database) HasTable(ctx context.Context, name string) (bool, error) {
	query, params := querysql.TableExists(name)
	n, err := d.queryCount(ctx, query, params)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Table returns a view of an existing table.
// Returns an ErrCodeNoSuchTable error if the table does not exist.
//
// The check is advisory: the table may be dropped after Table returns.
func (d *Database) Table(ctx context.Context, name string) (*Table, error) {
	ok, err := d.HasTable(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newNoSuchTableError(name)
	}
	return &Table{db: d, name: name}, nil
}

// CreateTable creates a table with the given column definitions, dropping
// any existing table of the same name first, and returns its view.
func (d *Database) CreateTable(ctx context.Context, name string, defs ...string) (*Table, error) {
	t := &Table{db: d, name: name}
	if err := t.CreateOrReplace(ctx, defs...); err != nil {
		return nil, err
	}
	return t, nil
}

// DropTables drops each named table in order. A missing table is an engine
// error; tables dropped before it stay dropped.
func (d *Database) DropTables(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := d.exec(ctx, querysql.DropTable(name), nil); err != nil {
			return err
		}
	}
	return nil
}

// Render writes every table as a grid under a =====name===== banner.
// Reads every row of every table.
func (d *Database) Render(ctx context.Context, w io.Writer) error {
	tables, err := d.Tables(ctx)
	if err != nil {
		return err
	}
	for i, name := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "=====%s=====\n", name); err != nil {
			return err
		}
		t := &Table{db: d, name: name}
		if err := t.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// exec runs a statement. Engine errors are returned unchanged.
func (d *Database) exec(ctx context.Context, query string, params []any) error {
	d.logStatement(ctx, query, params)
	_, err := d.conn.ExecContext(ctx, query, params...)
	return err
}

// queryValues runs a single-column query and returns the values in row
// order. Returns an empty slice (not nil) if no rows match.
func (d *Database) queryValues(ctx context.Context, query string, params []any) ([]any, error) {
	d.logStatement(ctx, query, params)
	rows, err := d.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []any{}
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// queryRows runs a query and returns every row as a slice of values in
// SELECT-list order.
func (d *Database) queryRows(ctx context.Context, query string, params []any) ([][]any, error) {
	d.logStatement(ctx, query, params)
	rows, err := d.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := [][]any{}
	for rows.Next() {
		row := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// queryStrings runs a single-column query of names.
func (d *Database) queryStrings(ctx context.Context, query string, params []any) ([]string, error) {
	d.logStatement(ctx, query, params)
	rows, err := d.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// queryCount runs a COUNT(*) query.
func (d *Database) queryCount(ctx context.Context, query string, params []any) (int64, error) {
	d.logStatement(ctx, query, params)
	rows, err := d.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *Database) logStatement(ctx context.Context, query string, params []any) {
	d.logger.DebugContext(ctx, "executing statement",
		"sql", query,
		"params", len(params),
	)
}
