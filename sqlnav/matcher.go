package sqlnav

import (
	"context"
	"io"

	"github.com/roach88/sqlnav/queryir"
	"github.com/roach88/sqlnav/querysql"
)

// RowMatcher pairs a table with a predicate. It holds no results: every
// operation compiles the predicate again and runs a fresh statement, so
// each call sees the current contents of the table.
type RowMatcher struct {
	table *Table
	pred  queryir.Operand
}

// Table returns the table the matcher filters.
func (m *RowMatcher) Table() *Table { return m.table }

// Predicate returns the condition tree.
func (m *RowMatcher) Predicate() queryir.Operand { return m.pred }

// Project returns the values of one column for every matched row, in the
// order the engine returns them.
func (m *RowMatcher) Project(ctx context.Context, column string) ([]any, error) {
	if err := m.table.requirePredicate(ctx, m.pred, column); err != nil {
		return nil, err
	}
	query, params, err := querysql.Select(m.table.name, []string{column}, m.pred)
	if err != nil {
		return nil, err
	}
	return m.table.db.queryValues(ctx, query, params)
}

// Count returns the number of matched rows.
func (m *RowMatcher) Count(ctx context.Context) (int64, error) {
	if err := m.table.requirePredicate(ctx, m.pred); err != nil {
		return 0, err
	}
	query, params, err := querysql.Count(m.table.name, m.pred)
	if err != nil {
		return 0, err
	}
	return m.table.db.queryCount(ctx, query, params)
}

// Set assigns value to column in every matched row. The value is bound as
// a parameter; a queryir expression such as col.Add(1) is compiled in
// place.
func (m *RowMatcher) Set(ctx context.Context, column string, value any) error {
	names := []string{column}
	for _, ref := range queryir.Columns(queryir.Wrap(value)) {
		names = append(names, ref.Name)
	}
	if err := m.table.requirePredicate(ctx, m.pred, names...); err != nil {
		return err
	}
	query, params, err := querysql.Update(m.table.name, column, value, m.pred)
	if err != nil {
		return err
	}
	return m.table.db.exec(ctx, query, params)
}

// DeleteAll deletes every matched row.
func (m *RowMatcher) DeleteAll(ctx context.Context) error {
	if err := m.table.requirePredicate(ctx, m.pred); err != nil {
		return err
	}
	query, params, err := querysql.Delete(m.table.name, m.pred)
	if err != nil {
		return err
	}
	return m.table.db.exec(ctx, query, params)
}

// Iter returns a column-major iterator: one step per table column, each
// yielding that column's values among the matched rows.
func (m *RowMatcher) Iter() *ColumnIter {
	return &ColumnIter{matcher: m}
}

// Transpose returns the matched rows column by column: result[i] holds the
// values of the i-th table column.
func (m *RowMatcher) Transpose(ctx context.Context) ([][]any, error) {
	it := m.Iter()
	result := [][]any{}
	for it.Next(ctx) {
		result = append(result, it.Values())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Rows returns the table's column names and the matched rows, row by row,
// with one statement.
func (m *RowMatcher) Rows(ctx context.Context) ([]string, [][]any, error) {
	cols, err := m.table.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := m.table.requirePredicate(ctx, m.pred); err != nil {
		return nil, nil, err
	}
	query, params, err := querysql.Select(m.table.name, cols, m.pred)
	if err != nil {
		return nil, nil, err
	}
	rows, err := m.table.db.queryRows(ctx, query, params)
	if err != nil {
		return nil, nil, err
	}
	return cols, rows, nil
}

// Render writes the matched rows as a fixed-width grid. With no matched
// rows only the header is written.
func (m *RowMatcher) Render(ctx context.Context, w io.Writer) error {
	cols, rows, err := m.Rows(ctx)
	if err != nil {
		return err
	}
	return RenderGrid(w, cols, rows)
}
