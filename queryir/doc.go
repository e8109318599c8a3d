// Package queryir provides the condition tree used to filter rows in sqlnav.
//
// A condition is a binary expression tree. Leaves are column references or
// literal values; interior nodes pair two operands with an operator:
//
//	(price > 10) AND (name = 'widget')
//
// is built as
//
//	queryir.And(
//	    queryir.Gt(queryir.ColumnRef{Table: "items", Name: "price"}, 10),
//	    queryir.Eq(queryir.ColumnRef{Table: "items", Name: "name"}, "widget"),
//	)
//
// or, through sqlnav columns,
//
//	items.Column("price").Gt(10).And(items.Column("name").Eq("widget"))
//
// Trees are only data. Nothing is sent to the database until a sqlnav
// operation compiles the tree with querysql and executes it.
//
// # Sealed Interfaces
//
// Operand is a sealed interface using the marker method pattern. Only
// *Node, ColumnRef, Literal and Always implement it, so compilers can use
// exhaustive type switches:
//
//	switch o := operand.(type) {
//	case *Node:
//	case ColumnRef:
//	case Literal:
//	case Always:
//	}
//
// # Operators
//
// The operator set is closed:
//
//	comparison  >  <  =  >=  <=  !=
//	boolean     AND  OR
//	arithmetic  +  -  *  /
//
// New rejects any other symbol with ErrUnknownOperator. ParseOp accepts the
// alternative spellings & (AND), | (OR) and <> (!=).
//
// # Equality
//
// Equality is the Eq builder, never Go's == operator. Comparing two *Node
// values with == is pointer identity, so nodes can be used as map keys.
//
// # Immutability
//
// Node fields are unexported. Every builder returns a fresh node, so trees
// are never cyclic. Leaves may be shared between trees.
package queryir
