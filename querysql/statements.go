package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/sqlnav/queryir"
)

// Select compiles SELECT <columns> FROM <table> [WHERE <where>].
func Select(table string, columns []string, where queryir.Operand) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("select from %s: no columns", table)
	}
	clause, params, err := whereClause(where)
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(columns, ", "), table, clause)
	return sql, params, nil
}

// Count compiles SELECT COUNT(*) FROM <table> [WHERE <where>].
func Count(table string, where queryir.Operand) (string, []any, error) {
	clause, params, err := whereClause(where)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, clause), params, nil
}

// ColumnCount compiles the membership test for a single value:
//
//	SELECT COUNT(*) FROM <table> WHERE <column> = ?
func ColumnCount(table, column string, value any) (string, []any) {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s", table, column, Placeholder)
	return sql, []any{value}
}

// Update compiles UPDATE <table> SET <column> = <value> [WHERE <where>].
//
// The value is compiled like any operand, so it may be a literal (bound as
// a parameter) or an expression over columns such as queryir.Add(col, 1).
// Value params precede where params.
func Update(table, column string, value any, where queryir.Operand) (string, []any, error) {
	valueSQL, valueParams, err := Compile(queryir.Wrap(value))
	if err != nil {
		return "", nil, fmt.Errorf("compile set value: %w", err)
	}
	clause, whereParams, err := whereClause(where)
	if err != nil {
		return "", nil, err
	}

	params := make([]any, 0, len(valueParams)+len(whereParams))
	params = append(params, valueParams...)
	params = append(params, whereParams...)

	return fmt.Sprintf("UPDATE %s SET %s = %s%s", table, column, valueSQL, clause), params, nil
}

// Overwrite compiles the equality-only bulk replacement of one column:
//
//	UPDATE <table> SET <column> = ? WHERE <column> = ?
//
// Params are [replacement, matched].
func Overwrite(table, column string, matched, replacement any) (string, []any) {
	sql := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s", table, column, Placeholder, column, Placeholder)
	return sql, []any{replacement, matched}
}

// Delete compiles DELETE FROM <table> [WHERE <where>].
func Delete(table string, where queryir.Operand) (string, []any, error) {
	clause, params, err := whereClause(where)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("DELETE FROM %s%s", table, clause), params, nil
}

// Insert compiles INSERT INTO <table> (<columns>) VALUES (?, ...).
// columns[i] binds to values[i].
func Insert(table string, columns []string, values []any) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert into %s: no columns", table)
	}
	if len(columns) != len(values) {
		return "", nil, fmt.Errorf("insert into %s: %d columns but %d values", table, len(columns), len(values))
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		placeholders(len(values)))

	params := make([]any, len(values))
	copy(params, values)

	return sql, params, nil
}
