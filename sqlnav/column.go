package sqlnav

import (
	"context"
	"fmt"
	"io"

	"github.com/roach88/sqlnav/queryir"
	"github.com/roach88/sqlnav/querysql"
)

// Column is a lazy view of one column. Creating it touches nothing; every
// operation checks that the table and column exist before issuing its
// statement.
//
// The comparison, boolean and arithmetic builders return queryir nodes with
// the column as left operand. Passing a Column as the right operand of any
// builder references it by name:
//
//	price.Gt(cost.Mul(2))   // (price > (cost * ?))
type Column struct {
	table *Table
	name  string
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Table returns the table the column belongs to.
func (c *Column) Table() *Table { return c.table }

// Ref returns the column reference used in condition trees.
func (c *Column) Ref() queryir.ColumnRef {
	return queryir.ColumnRef{Table: c.table.name, Name: c.name}
}

// Gt builds c > right.
func (c *Column) Gt(right any) *queryir.Node { return queryir.Gt(c.Ref(), right) }

// Lt builds c < right.
func (c *Column) Lt(right any) *queryir.Node { return queryir.Lt(c.Ref(), right) }

// Eq builds c = right.
func (c *Column) Eq(right any) *queryir.Node { return queryir.Eq(c.Ref(), right) }

// Ge builds c >= right.
func (c *Column) Ge(right any) *queryir.Node { return queryir.Ge(c.Ref(), right) }

// Le builds c <= right.
func (c *Column) Le(right any) *queryir.Node { return queryir.Le(c.Ref(), right) }

// Ne builds c != right.
func (c *Column) Ne(right any) *queryir.Node { return queryir.Ne(c.Ref(), right) }

// And builds c AND right.
func (c *Column) And(right any) *queryir.Node { return queryir.And(c.Ref(), right) }

// Or builds c OR right.
func (c *Column) Or(right any) *queryir.Node { return queryir.Or(c.Ref(), right) }

// Add builds c + right.
func (c *Column) Add(right any) *queryir.Node { return queryir.Add(c.Ref(), right) }

// Sub builds c - right.
func (c *Column) Sub(right any) *queryir.Node { return queryir.Sub(c.Ref(), right) }

// Mul builds c * right.
func (c *Column) Mul(right any) *queryir.Node { return queryir.Mul(c.Ref(), right) }

// Div builds c / right.
func (c *Column) Div(right any) *queryir.Node { return queryir.Div(c.Ref(), right) }

// Contains reports whether any row has the given value in this column.
func (c *Column) Contains(ctx context.Context, value any) (bool, error) {
	if err := c.table.requireColumns(ctx, c.name); err != nil {
		return false, err
	}
	query, params := querysql.ColumnCount(c.table.name, c.name, value)
	n, err := c.table.db.queryCount(ctx, query, params)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Len returns the number of rows in the table.
func (c *Column) Len(ctx context.Context) (int64, error) {
	if err := c.table.requireColumns(ctx, c.name); err != nil {
		return 0, err
	}
	query, params, err := querysql.Count(c.table.name, nil)
	if err != nil {
		return 0, err
	}
	return c.table.db.queryCount(ctx, query, params)
}

// Values returns every value of the column in the order the engine returns
// rows. Duplicates are kept.
func (c *Column) Values(ctx context.Context) ([]any, error) {
	if err := c.table.requireColumns(ctx, c.name); err != nil {
		return nil, err
	}
	query, params, err := querysql.Select(c.table.name, []string{c.name}, nil)
	if err != nil {
		return nil, err
	}
	return c.table.db.queryValues(ctx, query, params)
}

// Lookup returns a matcher for the rows where this column equals value.
func (c *Column) Lookup(value any) *RowMatcher {
	return &RowMatcher{table: c.table, pred: c.Eq(value)}
}

// Overwrite replaces matched with replacement in every row where the column
// equals matched. Both values are bound as parameters.
func (c *Column) Overwrite(ctx context.Context, matched, replacement any) error {
	if err := c.table.requireColumns(ctx, c.name); err != nil {
		return err
	}
	query, params := querysql.Overwrite(c.table.name, c.name, matched, replacement)
	return c.table.db.exec(ctx, query, params)
}

// Render writes the column name, a blank line and one value per line.
func (c *Column) Render(ctx context.Context, w io.Writer) error {
	values, err := c.Values(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", c.name); err != nil {
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(w, formatCell(v)); err != nil {
			return err
		}
	}
	return nil
}
