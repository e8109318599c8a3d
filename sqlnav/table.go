package sqlnav

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/sqlnav/queryir"
	"github.com/roach88/sqlnav/querysql"
)

// Table is a view of one table in a Database.
type Table struct {
	db   *Database
	name string
}

// Field is one column/value pair of a row to insert.
type Field struct {
	Column string
	Value  any
}

// F builds a Field.
func F(column string, value any) Field {
	return Field{Column: column, Value: value}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Database returns the database the table belongs to.
func (t *Table) Database() *Database { return t.db }

// Columns returns the column names in declaration order.
// Returns an ErrCodeTableNotFound error if the table no longer exists.
func (t *Table) Columns(ctx context.Context) ([]string, error) {
	query, params := querysql.ListColumns(t.name)
	cols, err := t.db.queryStrings(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		// Every SQLite table has at least one column.
		return nil, newTableNotFoundError(t.name)
	}
	return cols, nil
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount(ctx context.Context) (int, error) {
	cols, err := t.Columns(ctx)
	if err != nil {
		return 0, err
	}
	return len(cols), nil
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(ctx context.Context, name string) (bool, error) {
	cols, err := t.Columns(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if strings.EqualFold(c, name) {
			return true, nil
		}
	}
	return false, nil
}

// CreateOrReplace drops the table if it exists and creates it again with
// exactly the given column definitions. Definitions are passed through to
// the engine verbatim.
func (t *Table) CreateOrReplace(ctx context.Context, defs ...string) error {
	create, err := querysql.CreateTable(t.name, defs)
	if err != nil {
		return err
	}
	if err := t.db.exec(ctx, querysql.DropTableIfExists(t.name), nil); err != nil {
		return err
	}
	return t.db.exec(ctx, create, nil)
}

// AddColumns issues one ALTER TABLE ... ADD COLUMN per definition, in order.
// If one fails, the columns added before it remain.
func (t *Table) AddColumns(ctx context.Context, defs ...string) error {
	for _, def := range defs {
		if err := t.db.exec(ctx, querysql.AddColumn(t.name, def), nil); err != nil {
			return err
		}
	}
	return nil
}

// DropColumns issues one ALTER TABLE ... DROP COLUMN per name, in order.
// If one fails, the columns dropped before it stay dropped.
func (t *Table) DropColumns(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := t.db.exec(ctx, querysql.DropColumn(t.name, name), nil); err != nil {
			return err
		}
	}
	return nil
}

// InsertRow inserts one row. Field order is kept: the i-th column binds to
// the i-th value.
func (t *Table) InsertRow(ctx context.Context, fields ...Field) error {
	columns := make([]string, len(fields))
	values := make([]any, len(fields))
	for i, f := range fields {
		columns[i] = f.Column
		values[i] = f.Value
	}

	query, params, err := querysql.Insert(t.name, columns, values)
	if err != nil {
		return err
	}
	return t.db.exec(ctx, query, params)
}

// InsertRows inserts each row of values against the same column list.
// Rows inserted before a failing row remain.
func (t *Table) InsertRows(ctx context.Context, columns []string, rows [][]any) error {
	for i, values := range rows {
		query, params, err := querysql.Insert(t.name, columns, values)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := t.db.exec(ctx, query, params); err != nil {
			return err
		}
	}
	return nil
}

// Column returns a view of the named column. The column is not checked
// until the view is used, so it may be added after Column returns.
func (t *Table) Column(name string) *Column {
	return &Column{table: t, name: name}
}

// Where returns a matcher for the rows satisfying pred.
// Returns an error if pred is not a well-formed condition tree.
func (t *Table) Where(pred queryir.Operand) (*RowMatcher, error) {
	if err := queryir.Validate(pred); err != nil {
		return nil, err
	}
	return &RowMatcher{table: t, pred: pred}, nil
}

// All returns a matcher for every row.
func (t *Table) All() *RowMatcher {
	return &RowMatcher{table: t, pred: queryir.Always{}}
}

// Render writes every row as a grid.
func (t *Table) Render(ctx context.Context, w io.Writer) error {
	return t.All().Render(ctx, w)
}

// requireColumns checks that every named column exists. Returns a lookup
// error naming the first missing one. Names compare case-insensitively, as
// SQLite identifiers do.
func (t *Table) requireColumns(ctx context.Context, names ...string) error {
	cols, err := t.Columns(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[strings.ToLower(c)] = true
	}
	for _, name := range names {
		if !present[strings.ToLower(name)] {
			return newColumnNotFoundError(t.name, name)
		}
	}
	return nil
}

// requirePredicate checks the columns referenced by an operand plus any
// extra column names.
func (t *Table) requirePredicate(ctx context.Context, o queryir.Operand, extra ...string) error {
	names := append([]string{}, extra...)
	for _, ref := range queryir.Columns(o) {
		names = append(names, ref.Name)
	}
	return t.requireColumns(ctx, names...)
}
