package semantic

import (
	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
)

// checker enforces the structural expression rules that apply to every
// statement: nesting depth, literal division by zero, malformed calls,
// container size limits, and cyclic variable references.  One checker is
// built per validator run; check may be called for each expression the
// statement holds.
type checker struct {
	qctx   *QueryContext
	limits Limits
}

func newChecker(qctx *QueryContext) *checker {
	return &checker{qctx: qctx, limits: qctx.Limits()}
}

// check walks e and returns the first structural violation found.
func (c *checker) check(e ast.Expr) error {
	if e == nil {
		return nil
	}
	if err := c.depth(e, 0); err != nil {
		return err
	}
	if err := c.structure(e); err != nil {
		return err
	}
	return c.cycles(e, nil)
}

// depth rejects trees nested past the limit.  The limit exists to cap
// validation latency and recursion on adversarial input.
func (c *checker) depth(e ast.Expr, level int) error {
	if e == nil {
		return nil
	}
	if level > c.limits.MaxExprDepth {
		return newError(ErrExprDepth,
			"the above expression is not a valid expression, exceeded maximum nesting depth %d",
			c.limits.MaxExprDepth)
	}
	for _, child := range ast.Children(e) {
		if err := c.depth(child, level+1); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) structure(e ast.Expr) error {
	var found error
	ast.Walk(e, func(n ast.Expr) bool {
		if found != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.BinaryExpr:
			if n.Op == "/" || n.Op == "%" {
				if isZeroLiteral(n.RHS) {
					found = newError(ErrDivisionByZero, "division by zero")
					return false
				}
			}
		case *ast.Call:
			found = c.checkCall(n)
			return found == nil
		case *ast.Agg:
			if n.Arg != nil && ast.ContainsAggregate(n.Arg) {
				found = semanticErrorf(
					"aggregate function nested in %s(%s) is not allowed",
					n.Name, ast.Format(n.Arg))
				return false
			}
		case *ast.ListExpr:
			if len(n.Elems) > c.limits.MaxContainerElems {
				found = newError(ErrTooManyElements,
					"list expression has %d elements, exceeding the limit %d",
					len(n.Elems), c.limits.MaxContainerElems)
				return false
			}
		case *ast.MapExpr:
			if len(n.Entries) > c.limits.MaxContainerElems {
				found = newError(ErrTooManyElements,
					"map expression has %d entries, exceeding the limit %d",
					len(n.Entries), c.limits.MaxContainerElems)
				return false
			}
			seen := make(map[string]bool, len(n.Entries))
			for _, entry := range n.Entries {
				if seen[entry.Key] {
					found = newError(ErrDuplicateKey, "duplicate map key %q", entry.Key)
					return false
				}
				seen[entry.Key] = true
			}
		}
		return true
	})
	return found
}

func (c *checker) checkCall(call *ast.Call) error {
	if call.Name == "" {
		return newError(ErrSyntax, "function name must not be empty")
	}
	if len(call.Args) > c.limits.MaxFunctionArgs {
		return newError(ErrTooManyArguments,
			"%s() takes %d arguments, exceeding the limit %d",
			call.Name, len(call.Args), c.limits.MaxFunctionArgs)
	}
	if ast.IsAggregateName(call.Name) {
		// Parsed as a plain call but names an aggregate; legality is
		// decided by the statement validator (GROUP BY context).
		return nil
	}
	def, ok := lookupFunction(call.Name)
	if !ok {
		if hint := suggestFunction(call.Name); hint != "" {
			return semanticErrorf("unknown function %q, did you mean %q?", call.Name, hint)
		}
		return semanticErrorf("unknown function %q", call.Name)
	}
	if def.maxArgs >= 0 && len(call.Args) > def.maxArgs {
		return newError(ErrTooManyArguments, "%s() received %d arguments", call.Name, len(call.Args))
	}
	if len(call.Args) < def.minArgs {
		return semanticErrorf("%s() received %d arguments", call.Name, len(call.Args))
	}
	return nil
}

// cycles rejects variable references that loop back on themselves through
// their defining expressions.  The check is name-based: the tree itself
// cannot contain structural cycles, only variable bindings can.  path holds
// the names already expanded along the current walk.
func (c *checker) cycles(e ast.Expr, path []string) error {
	var found error
	ast.Walk(e, func(n ast.Expr) bool {
		if found != nil {
			return false
		}
		v, ok := n.(*ast.Variable)
		if !ok {
			return true
		}
		for _, name := range path {
			if name == v.Name {
				found = newError(ErrCyclicReference,
					"cyclic reference through variable $%s", v.Name)
				return false
			}
		}
		def, ok := c.qctx.VarExpr(v.Name)
		if !ok {
			return true
		}
		found = c.cycles(def, append(path, v.Name))
		return found == nil
	})
	return found
}

func isZeroLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return false
	}
	switch lit.Value.Type {
	case volta.TypeFloat, volta.TypeDouble:
		return lit.Value.Float == 0
	}
	if lit.Value.Type.IsIntFamily() {
		return lit.Value.Int == 0
	}
	return false
}
