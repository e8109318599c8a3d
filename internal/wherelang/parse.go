// Package wherelang parses the text form of row conditions used on the
// command line and in scenario files:
//
//	age >= 18 AND (name = 'ann' OR name = 'o''brien')
//	price * 2 > cost + 10
//
// Identifiers become column references and every other primary becomes a
// bound literal, so the resulting tree compiles exactly like one built with
// the queryir builders. NULL is bound as a parameter; as in SQL, a = NULL
// never matches.
package wherelang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sqlnav/queryir"
)

// Parse parses src into a condition tree whose columns belong to table.
// Blank input yields queryir.Always{}.
func Parse(src, table string) (queryir.Operand, error) {
	if strings.TrimSpace(src) == "" {
		return queryir.Always{}, nil
	}
	tree, err := parser.ParseString("where", src)
	if err != nil {
		return nil, fmt.Errorf("parse where %q: %w", src, err)
	}
	b := builder{table: table}
	o, err := b.or(tree)
	if err != nil {
		return nil, fmt.Errorf("parse where %q: %w", src, err)
	}
	return o, nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(src, table string) queryir.Operand {
	o, err := Parse(src, table)
	if err != nil {
		panic(err)
	}
	return o
}

type builder struct {
	table string
}

func (b builder) or(e *orExpr) (queryir.Operand, error) {
	left, err := b.and(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Right {
		right, err := b.and(r)
		if err != nil {
			return nil, err
		}
		left = queryir.Or(left, right)
	}
	return left, nil
}

func (b builder) and(e *andExpr) (queryir.Operand, error) {
	left, err := b.cmp(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Right {
		right, err := b.cmp(r)
		if err != nil {
			return nil, err
		}
		left = queryir.And(left, right)
	}
	return left, nil
}

func (b builder) cmp(e *cmpExpr) (queryir.Operand, error) {
	left, err := b.add(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Right == nil {
		return left, nil
	}
	right, err := b.add(e.Right)
	if err != nil {
		return nil, err
	}
	return binary(left, e.Op, right)
}

func (b builder) add(e *addExpr) (queryir.Operand, error) {
	left, err := b.mul(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		right, err := b.mul(r.Right)
		if err != nil {
			return nil, err
		}
		if left, err = binary(left, r.Op, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (b builder) mul(e *mulExpr) (queryir.Operand, error) {
	left, err := b.primary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		right, err := b.primary(r.Right)
		if err != nil {
			return nil, err
		}
		if left, err = binary(left, r.Op, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (b builder) primary(p *primary) (queryir.Operand, error) {
	switch {
	case p.Number != nil:
		v, err := p.Number.value()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Pos, err)
		}
		return queryir.Literal{Value: v}, nil
	case p.String != "":
		return queryir.Literal{Value: unquote(p.String)}, nil
	case p.Null:
		return queryir.Literal{Value: nil}, nil
	case p.Bool != "":
		return queryir.Literal{Value: strings.EqualFold(p.Bool, "true")}, nil
	case p.Column != "":
		return queryir.ColumnRef{Table: b.table, Name: p.Column}, nil
	case p.Sub != nil:
		return b.or(p.Sub)
	default:
		return nil, fmt.Errorf("%s: empty expression", p.Pos)
	}
}

func binary(left queryir.Operand, symbol string, right queryir.Operand) (queryir.Operand, error) {
	op, err := queryir.ParseOp(symbol)
	if err != nil {
		return nil, err
	}
	return queryir.New(left, op, right)
}

func (n *number) value() (any, error) {
	text := n.Int
	if n.Float != "" {
		text = n.Float
	}
	if n.Neg {
		text = "-" + text
	}
	if n.Float != "" {
		return strconv.ParseFloat(text, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}

// unquote strips the surrounding quotes and collapses doubled quotes.
func unquote(s string) string {
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
}
