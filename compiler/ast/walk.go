package ast

import "reflect"

// Children returns the direct sub-expressions of e in syntactic order.
// Leaf nodes return nil.  Nil optional children (e.g., an open range end)
// are skipped.
func Children(e Expr) []Expr {
	switch e := e.(type) {
	case *UnaryExpr:
		return []Expr{e.Operand}
	case *BinaryExpr:
		return []Expr{e.LHS, e.RHS}
	case *Call:
		return e.Args
	case *Agg:
		if e.Arg == nil {
			return nil
		}
		return []Expr{e.Arg}
	case *ListExpr:
		return e.Elems
	case *MapExpr:
		kids := make([]Expr, 0, len(e.Entries))
		for _, entry := range e.Entries {
			kids = append(kids, entry.Value)
		}
		return kids
	case *CaseExpr:
		var kids []Expr
		if e.Expr != nil {
			kids = append(kids, e.Expr)
		}
		for _, w := range e.Whens {
			kids = append(kids, w.Cond, w.Then)
		}
		if e.Else != nil {
			kids = append(kids, e.Else)
		}
		return kids
	case *CastExpr:
		return []Expr{e.Expr}
	case *SubscriptExpr:
		return []Expr{e.Expr, e.Index}
	case *RangeExpr:
		kids := []Expr{e.Expr}
		if e.Start != nil {
			kids = append(kids, e.Start)
		}
		if e.End != nil {
			kids = append(kids, e.End)
		}
		return kids
	case *PathBuild:
		return e.Elems
	case *ListComprehension:
		kids := []Expr{e.Collection}
		if e.Filter != nil {
			kids = append(kids, e.Filter)
		}
		if e.Mapping != nil {
			kids = append(kids, e.Mapping)
		}
		return kids
	case *Reduce:
		return []Expr{e.Init, e.Collection, e.Body}
	case *PropExpr:
		return []Expr{e.Expr}
	}
	return nil
}

// Walk visits e and its sub-expressions in preorder.  If visit returns
// false for a node, its children are skipped.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	for _, child := range Children(e) {
		Walk(child, visit)
	}
}

// WalkPost visits e and its sub-expressions in postorder, children before
// parents.  The walk cannot be pruned; visit sees every node.
func WalkPost(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	for _, child := range Children(e) {
		WalkPost(child, visit)
	}
	visit(e)
}

// Find returns the first node in preorder for which pred returns true, or
// nil if there is none.
func Find(e Expr, pred func(Expr) bool) Expr {
	var found Expr
	Walk(e, func(n Expr) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in preorder for which pred returns true.
func FindAll(e Expr, pred func(Expr) bool) []Expr {
	var found []Expr
	Walk(e, func(n Expr) bool {
		if pred(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// Transform rewrites e bottom-out from the root.  f is applied to the root
// first: if it returns a replacement and true, that replacement is the
// result verbatim and is not recursed into, which lets rewrite passes
// substitute a subtree without revisiting it.  Otherwise each child is
// transformed recursively and a new node is rebuilt around the results.
// The input tree is never modified.
func Transform(e Expr, f func(Expr) (Expr, bool)) Expr {
	if e == nil {
		return nil
	}
	if replacement, ok := f(e); ok {
		return replacement
	}
	switch e := e.(type) {
	case *UnaryExpr:
		return &UnaryExpr{Op: e.Op, Operand: Transform(e.Operand, f)}
	case *BinaryExpr:
		return &BinaryExpr{Op: e.Op, LHS: Transform(e.LHS, f), RHS: Transform(e.RHS, f)}
	case *Call:
		return &Call{Name: e.Name, Args: transformAll(e.Args, f)}
	case *Agg:
		return &Agg{Name: e.Name, Distinct: e.Distinct, Arg: Transform(e.Arg, f)}
	case *ListExpr:
		return &ListExpr{Elems: transformAll(e.Elems, f)}
	case *MapExpr:
		entries := make([]MapEntry, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = MapEntry{Key: entry.Key, Value: Transform(entry.Value, f)}
		}
		return &MapExpr{Entries: entries}
	case *CaseExpr:
		whens := make([]When, len(e.Whens))
		for i, w := range e.Whens {
			whens[i] = When{Cond: Transform(w.Cond, f), Then: Transform(w.Then, f)}
		}
		return &CaseExpr{Expr: Transform(e.Expr, f), Whens: whens, Else: Transform(e.Else, f)}
	case *CastExpr:
		return &CastExpr{Type: e.Type, Expr: Transform(e.Expr, f)}
	case *SubscriptExpr:
		return &SubscriptExpr{Expr: Transform(e.Expr, f), Index: Transform(e.Index, f)}
	case *RangeExpr:
		return &RangeExpr{Expr: Transform(e.Expr, f), Start: Transform(e.Start, f), End: Transform(e.End, f)}
	case *PathBuild:
		return &PathBuild{Elems: transformAll(e.Elems, f)}
	case *ListComprehension:
		return &ListComprehension{
			Var:        e.Var,
			Collection: Transform(e.Collection, f),
			Filter:     Transform(e.Filter, f),
			Mapping:    Transform(e.Mapping, f),
		}
	case *Reduce:
		return &Reduce{
			Accum:      e.Accum,
			Init:       Transform(e.Init, f),
			Var:        e.Var,
			Collection: Transform(e.Collection, f),
			Body:       Transform(e.Body, f),
		}
	case *PropExpr:
		return &PropExpr{Expr: Transform(e.Expr, f), Prop: e.Prop}
	default:
		// Leaf nodes are immutable and can be shared between trees.
		return e
	}
}

func transformAll(exprs []Expr, f func(Expr) (Expr, bool)) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Transform(e, f)
	}
	return out
}

// Equal reports structural equality of two expression trees.
func Equal(a, b Expr) bool {
	return reflect.DeepEqual(a, b)
}
