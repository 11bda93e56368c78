package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
)

func add(lhs, rhs ast.Expr) ast.Expr { return ast.NewBinaryExpr("+", lhs, rhs) }

func variable(name string) ast.Expr { return &ast.Variable{Name: name} }

func TestWalkPreorder(t *testing.T) {
	// (x + 1) + y visits the root first, then left subtree, then right.
	e := add(add(variable("x"), ast.NewLiteral(volta.NewInt(1))), variable("y"))
	var ops []string
	ast.Walk(e, func(n ast.Expr) bool {
		switch n := n.(type) {
		case *ast.BinaryExpr:
			ops = append(ops, n.Op)
		case *ast.Variable:
			ops = append(ops, n.Name)
		case *ast.Literal:
			ops = append(ops, n.Value.String())
		}
		return true
	})
	assert.Equal(t, []string{"+", "+", "x", "1", "y"}, ops)
}

func TestWalkPrune(t *testing.T) {
	e := add(add(variable("x"), variable("y")), variable("z"))
	var seen int
	ast.Walk(e, func(n ast.Expr) bool {
		seen++
		_, isBinary := n.(*ast.BinaryExpr)
		return !isBinary || seen == 1 // descend only past the root
	})
	// Root and its two children; the pruned left subtree's leaves are
	// never visited.
	assert.Equal(t, 3, seen)
}

func TestTransformReplacesLeaves(t *testing.T) {
	e := add(variable("x"), variable("x"))
	out := ast.Transform(e, func(n ast.Expr) (ast.Expr, bool) {
		if v, ok := n.(*ast.Variable); ok && v.Name == "x" {
			return ast.NewLiteral(volta.NewInt(5)), true
		}
		return nil, false
	})
	bin, ok := out.(*ast.BinaryExpr)
	require.True(t, ok)
	lhs, ok := bin.LHS.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(5), lhs.Value.Int)
}

func TestTransformReplacementNotRecursed(t *testing.T) {
	// A replacement is taken verbatim; Transform must not descend into it,
	// or a rule like x -> x+1 would never terminate.
	e := variable("x")
	out := ast.Transform(e, func(n ast.Expr) (ast.Expr, bool) {
		if v, ok := n.(*ast.Variable); ok && v.Name == "x" {
			return add(variable("x"), ast.NewLiteral(volta.NewInt(1))), true
		}
		return nil, false
	})
	bin, ok := out.(*ast.BinaryExpr)
	require.True(t, ok)
	_, ok = bin.LHS.(*ast.Variable)
	assert.True(t, ok)
}

func TestTransformSharesUntouchedSubtrees(t *testing.T) {
	left := variable("x")
	right := variable("y")
	e := add(left, right)
	out := ast.Transform(e, func(n ast.Expr) (ast.Expr, bool) {
		if v, ok := n.(*ast.Variable); ok && v.Name == "y" {
			return variable("z"), true
		}
		return nil, false
	})
	bin := out.(*ast.BinaryExpr)
	assert.Same(t, left, bin.LHS)
	assert.NotSame(t, right, bin.RHS)
}

func TestVariablesSortedDeduped(t *testing.T) {
	e := add(add(variable("y"), variable("x")), variable("x"))
	assert.Equal(t, []string{"x", "y"}, ast.Variables(e))
}

func TestIsConstant(t *testing.T) {
	assert.True(t, ast.IsConstant(add(ast.NewLiteral(volta.NewInt(1)), ast.NewLiteral(volta.NewInt(2)))))
	assert.False(t, ast.IsConstant(add(ast.NewLiteral(volta.NewInt(1)), variable("x"))))
	assert.False(t, ast.IsConstant(&ast.TagProp{Tag: "person", Prop: "age"}))
	assert.False(t, ast.IsConstant(&ast.Agg{Name: "count"}))
}

func TestContainsAggregate(t *testing.T) {
	agg := &ast.Agg{Name: "sum", Arg: variable("x")}
	assert.True(t, ast.ContainsAggregate(add(agg, ast.NewLiteral(volta.NewInt(1)))))
	assert.True(t, ast.ContainsAggregate(&ast.Call{Name: "COUNT"}))
	assert.False(t, ast.ContainsAggregate(&ast.Call{Name: "abs", Args: []ast.Expr{variable("x")}}))
}

func TestEqualIsStructural(t *testing.T) {
	a := add(variable("x"), ast.NewLiteral(volta.NewInt(1)))
	b := add(variable("x"), ast.NewLiteral(volta.NewInt(1)))
	assert.True(t, ast.Equal(a, b))
	assert.False(t, ast.Equal(a, add(variable("x"), ast.NewLiteral(volta.NewInt(2)))))
}

func TestFormat(t *testing.T) {
	e := add(&ast.InputProp{Prop: "age"}, ast.NewLiteral(volta.NewInt(1)))
	assert.Equal(t, "($-.age + 1)", ast.Format(e))
	assert.Equal(t, "$^.person.name", ast.Format(&ast.SrcProp{Tag: "person", Prop: "name"}))
}
