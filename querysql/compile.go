// Package querysql compiles queryir condition trees and sqlnav operations to
// parameterized SQL for SQLite.
//
// CRITICAL: Literal values are NEVER interpolated into SQL text. Every
// literal becomes a Placeholder and is returned in the params slice, in the
// order the placeholders appear.
//
// Identifiers (table names, column names, column definitions) are spliced
// verbatim. They come from the caller, not from data.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/sqlnav/queryir"
)

// Placeholder is the positional parameter token of the target engine.
// Every compiled fragment uses this constant; switching to a $1-style
// engine means changing it here and nowhere else.
const Placeholder = "?"

// alwaysTrue is the fragment emitted for queryir.Always.
const alwaysTrue = "1 = 1"

// Compile converts a condition tree to a SQL fragment and its parameters.
// Returns (sql, params, error) tuple.
//
// Nodes compile to "(<left> <op> <right>)" with left params before right
// params. Column references compile to their bare name, literals to a
// single Placeholder.
//
// Compile is a pure function; compiling the same tree twice yields the same
// result.
func Compile(o queryir.Operand) (string, []any, error) {
	switch val := o.(type) {
	case nil:
		return "", nil, fmt.Errorf("cannot compile nil operand: %w", queryir.ErrMalformedOperand)
	case *queryir.Node:
		if val == nil {
			return "", nil, fmt.Errorf("cannot compile nil node: %w", queryir.ErrMalformedOperand)
		}
		return compileNode(val)
	case queryir.ColumnRef:
		if val.Name == "" {
			return "", nil, fmt.Errorf("column reference without name: %w", queryir.ErrMalformedOperand)
		}
		return val.Name, nil, nil
	case queryir.Literal:
		return Placeholder, []any{val.Value}, nil
	case queryir.Always:
		return alwaysTrue, nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported operand type %T: %w", o, queryir.ErrMalformedOperand)
	}
}

// compileNode compiles a binary node. The whole expression is wrapped in
// parentheses so nesting never depends on SQL operator precedence.
func compileNode(n *queryir.Node) (string, []any, error) {
	if !n.Op().Valid() {
		return "", nil, fmt.Errorf("%w: %q", queryir.ErrUnknownOperator, string(n.Op()))
	}

	leftSQL, leftParams, err := Compile(n.Left())
	if err != nil {
		return "", nil, err
	}
	rightSQL, rightParams, err := Compile(n.Right())
	if err != nil {
		return "", nil, err
	}

	params := make([]any, 0, len(leftParams)+len(rightParams))
	params = append(params, leftParams...)
	params = append(params, rightParams...)

	return fmt.Sprintf("(%s %s %s)", leftSQL, sqlOperator(n.Op()), rightSQL), params, nil
}

// sqlOperator returns the SQL spelling of an operator. Boolean combinators
// are always emitted as keywords.
func sqlOperator(op queryir.Op) string {
	switch op {
	case queryir.OpAnd:
		return "AND"
	case queryir.OpOr:
		return "OR"
	default:
		return string(op)
	}
}

// whereClause compiles an optional predicate to " WHERE <fragment>".
// A nil predicate yields an empty clause.
func whereClause(where queryir.Operand) (string, []any, error) {
	if where == nil {
		return "", nil, nil
	}
	sql, params, err := Compile(where)
	if err != nil {
		return "", nil, fmt.Errorf("compile where: %w", err)
	}
	return " WHERE " + sql, params, nil
}

// placeholders returns n comma-separated placeholders.
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = Placeholder
	}
	return strings.Join(parts, ", ")
}

// Explain renders a condition tree as its compiled fragment followed by the
// bound parameters, for logs and error messages:
//
//	((a > ?) AND (b = ?)) [1 x]
//
// A tree that does not compile is rendered as "invalid: <error>".
func Explain(o queryir.Operand) string {
	sql, params, err := Compile(o)
	if err != nil {
		return "invalid: " + err.Error()
	}
	return fmt.Sprintf("%s %v", sql, params)
}
