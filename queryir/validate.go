package queryir

import "fmt"

// Validate checks that a condition tree is well formed: no nil operands and
// only known operators. Nodes built with New or the builders always pass
// unless a nil *Node was used as an operand.
//
// Validate is a pure function with no side effects.
func Validate(o Operand) error {
	return validate(o, "condition")
}

func validate(o Operand, path string) error {
	switch val := o.(type) {
	case nil:
		return fmt.Errorf("%w: %s is nil", ErrMalformedOperand, path)
	case *Node:
		if val == nil {
			return fmt.Errorf("%w: %s is a nil node", ErrMalformedOperand, path)
		}
		if !val.op.Valid() {
			return fmt.Errorf("%w: %q at %s", ErrUnknownOperator, string(val.op), path)
		}
		if err := validate(val.left, path+".left"); err != nil {
			return err
		}
		return validate(val.right, path+".right")
	case ColumnRef:
		if val.Name == "" {
			return fmt.Errorf("%w: %s has an empty column name", ErrMalformedOperand, path)
		}
		return nil
	case Literal, Always:
		return nil
	default:
		return fmt.Errorf("%w: %s has unsupported type %T", ErrMalformedOperand, path, o)
	}
}

// Columns returns the column references in a tree in depth-first,
// left-to-right order. Duplicates are kept.
func Columns(o Operand) []ColumnRef {
	var refs []ColumnRef
	walk(o, func(ref ColumnRef) {
		refs = append(refs, ref)
	})
	return refs
}

func walk(o Operand, visit func(ColumnRef)) {
	switch val := o.(type) {
	case *Node:
		if val == nil {
			return
		}
		walk(val.left, visit)
		walk(val.right, visit)
	case ColumnRef:
		visit(val)
	}
}

// Literals returns the literal values in a tree in the same order the
// compiler emits parameters.
func Literals(o Operand) []any {
	var values []any
	var collect func(Operand)
	collect = func(o Operand) {
		switch val := o.(type) {
		case *Node:
			if val == nil {
				return
			}
			collect(val.left)
			collect(val.right)
		case Literal:
			values = append(values, val.Value)
		}
	}
	collect(o)
	return values
}
