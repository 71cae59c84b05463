package ast

// Inspect traverses the tree depth-first, calling f for each node before
// its children. Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *SetAssign:
		Inspect(n.Value, f)
	case *VarAssign:
		Inspect(n.Value, f)
	case *IfStatement:
		Inspect(n.Condition, f)
		for _, s := range n.Body {
			Inspect(s, f)
		}
	case *FunCallStatement:
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *FunDef:
		for _, p := range n.Params {
			Inspect(p, f)
		}
		if n.ReturnType != nil {
			Inspect(n.ReturnType, f)
		}
		for _, s := range n.Body {
			Inspect(s, f)
		}
	case *Array:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *BooleanExpr:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case *FunCall:
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *Argument:
		Inspect(n.Type, f)
	}
}
