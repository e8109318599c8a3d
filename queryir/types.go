package queryir

import (
	"errors"
	"fmt"
)

// ErrUnknownOperator is returned when a node is built with a symbol outside
// the operator set.
var ErrUnknownOperator = errors.New("unknown operator")

// ErrMalformedOperand is returned when a tree contains a nil operand.
var ErrMalformedOperand = errors.New("malformed operand")

// Operand is one side of a condition node.
//
// This is a sealed interface - only types in this package implement it.
type Operand interface {
	operand() // Marker method - seals interface to this package
}

// Referencer is implemented by values that stand for a table column, such as
// sqlnav.Column. Wrap turns them into a ColumnRef.
type Referencer interface {
	Ref() ColumnRef
}

// Op is a condition operator.
type Op string

const (
	OpGt Op = ">"
	OpLt Op = "<"
	OpEq Op = "="
	OpGe Op = ">="
	OpLe Op = "<="
	OpNe Op = "!="

	OpAnd Op = "AND"
	OpOr  Op = "OR"

	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
)

// Ops lists every valid operator.
var Ops = []Op{OpGt, OpLt, OpEq, OpGe, OpLe, OpNe, OpAnd, OpOr, OpAdd, OpSub, OpMul, OpDiv}

// Valid reports whether op is in the operator set.
func (op Op) Valid() bool {
	for _, known := range Ops {
		if op == known {
			return true
		}
	}
	return false
}

// Boolean reports whether op combines two predicates.
func (op Op) Boolean() bool {
	return op == OpAnd || op == OpOr
}

// ParseOp converts a symbol to an Op. Besides the canonical spellings it
// accepts "&" for AND, "|" for OR and "<>" for "!=".
func ParseOp(symbol string) (Op, error) {
	switch symbol {
	case "&", "and":
		return OpAnd, nil
	case "|", "or":
		return OpOr, nil
	case "<>":
		return OpNe, nil
	}
	op := Op(symbol)
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
	}
	return op, nil
}

// Node is an immutable binary expression: left <op> right.
type Node struct {
	left  Operand
	op    Op
	right Operand
}

func (*Node) operand() {}

// New builds a node from two operands. Operands are normalised with Wrap.
// Returns ErrUnknownOperator if op is not in the operator set.
func New(left any, op Op, right any) (*Node, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
	}
	return &Node{left: Wrap(left), op: op, right: Wrap(right)}, nil
}

// build is used by the builders, whose operators are known to be valid.
func build(left any, op Op, right any) *Node {
	return &Node{left: Wrap(left), op: op, right: Wrap(right)}
}

// Left returns the left operand.
func (n *Node) Left() Operand { return n.left }

// Op returns the operator.
func (n *Node) Op() Op { return n.op }

// Right returns the right operand.
func (n *Node) Right() Operand { return n.right }

// Gt builds n > right.
func (n *Node) Gt(right any) *Node { return build(n, OpGt, right) }

// Lt builds n < right.
func (n *Node) Lt(right any) *Node { return build(n, OpLt, right) }

// Eq builds n = right.
func (n *Node) Eq(right any) *Node { return build(n, OpEq, right) }

// Ge builds n >= right.
func (n *Node) Ge(right any) *Node { return build(n, OpGe, right) }

// Le builds n <= right.
func (n *Node) Le(right any) *Node { return build(n, OpLe, right) }

// Ne builds n != right.
func (n *Node) Ne(right any) *Node { return build(n, OpNe, right) }

// And builds n AND right.
func (n *Node) And(right any) *Node { return build(n, OpAnd, right) }

// Or builds n OR right.
func (n *Node) Or(right any) *Node { return build(n, OpOr, right) }

// Add builds n + right.
func (n *Node) Add(right any) *Node { return build(n, OpAdd, right) }

// Sub builds n - right.
func (n *Node) Sub(right any) *Node { return build(n, OpSub, right) }

// Mul builds n * right.
func (n *Node) Mul(right any) *Node { return build(n, OpMul, right) }

// Div builds n / right.
func (n *Node) Div(right any) *Node { return build(n, OpDiv, right) }

// Gt builds left > right.
func Gt(left, right any) *Node { return build(left, OpGt, right) }

// Lt builds left < right.
func Lt(left, right any) *Node { return build(left, OpLt, right) }

// Eq builds left = right.
func Eq(left, right any) *Node { return build(left, OpEq, right) }

// Ge builds left >= right.
func Ge(left, right any) *Node { return build(left, OpGe, right) }

// Le builds left <= right.
func Le(left, right any) *Node { return build(left, OpLe, right) }

// Ne builds left != right.
func Ne(left, right any) *Node { return build(left, OpNe, right) }

// And builds left AND right.
func And(left, right any) *Node { return build(left, OpAnd, right) }

// Or builds left OR right.
func Or(left, right any) *Node { return build(left, OpOr, right) }

// Add builds left + right.
func Add(left, right any) *Node { return build(left, OpAdd, right) }

// Sub builds left - right.
func Sub(left, right any) *Node { return build(left, OpSub, right) }

// Mul builds left * right.
func Mul(left, right any) *Node { return build(left, OpMul, right) }

// Div builds left / right.
func Div(left, right any) *Node { return build(left, OpDiv, right) }

// ColumnRef names a column of a table. It compiles to the bare column name
// and never to a placeholder.
type ColumnRef struct {
	Table string
	Name  string
}

func (ColumnRef) operand() {}

// Literal is a value bound as a query parameter.
type Literal struct {
	Value any
}

func (Literal) operand() {}

// Always is the predicate that matches every row.
type Always struct{}

func (Always) operand() {}

// Wrap converts v to an Operand.
//
//   - an Operand is returned unchanged (including a nil *Node)
//   - a Referencer becomes its ColumnRef
//   - anything else becomes a Literal
func Wrap(v any) Operand {
	switch val := v.(type) {
	case Operand:
		return val
	case Referencer:
		return val.Ref()
	default:
		return Literal{Value: v}
	}
}
