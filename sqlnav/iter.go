package sqlnav

import "context"

// ColumnIter walks a RowMatcher column by column.
//
//	it := matcher.Iter()
//	for it.Next(ctx) {
//	    fmt.Println(it.Column(), it.Values())
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// The column list is read on the first call to Next and kept for the rest
// of the walk. Each step runs its own projection, so rows changed between
// steps are visible to later steps.
type ColumnIter struct {
	matcher *RowMatcher
	columns []string
	started bool
	pos     int
	column  string
	values  []any
	err     error
}

// Next advances to the next column. It returns false when the columns are
// exhausted or an error occurred; check Err afterwards.
func (it *ColumnIter) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		cols, err := it.matcher.table.Columns(ctx)
		if err != nil {
			it.err = err
			return false
		}
		it.columns = cols
	}
	if it.pos >= len(it.columns) {
		it.column, it.values = "", nil
		return false
	}

	column := it.columns[it.pos]
	values, err := it.matcher.Project(ctx, column)
	if err != nil {
		it.err = err
		return false
	}
	it.pos++
	it.column = column
	it.values = values
	return true
}

// Column returns the name of the current column.
func (it *ColumnIter) Column() string { return it.column }

// Values returns the current column's values among the matched rows.
func (it *ColumnIter) Values() []any { return it.values }

// Err returns the error that stopped the iteration, if any.
func (it *ColumnIter) Err() error { return it.err }
