package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
)

func TestArenaRegisterLookup(t *testing.T) {
	arena := ast.NewExprContext()
	e := ast.NewBinaryExpr("+",
		ast.NewLiteral(volta.NewInt(1)),
		ast.NewLiteral(volta.NewInt(2)))
	ce := ast.Register(arena, e)
	require.True(t, ce.Valid())
	assert.Same(t, e, ce.Expr())
}

func TestArenaIDsAreContextLocal(t *testing.T) {
	// The same expression registered in two arenas gets whatever id each
	// arena hands out next; ids carry no meaning across contexts.
	a1 := ast.NewExprContext()
	a2 := ast.NewExprContext()
	ast.Register(a1, ast.NewLiteral(volta.NewInt(7)))

	e := ast.NewLiteral(volta.NewString("x"))
	c1 := ast.Register(a1, e)
	c2 := ast.Register(a2, e)
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.Same(t, c1.Expr(), c2.Expr())
}

func TestContextualExprZeroValue(t *testing.T) {
	var ce ast.ContextualExpr
	assert.False(t, ce.Valid())
	assert.Nil(t, ce.Expr())
}

func TestContextualExprCopyIsCheap(t *testing.T) {
	arena := ast.NewExprContext()
	ce := ast.Register(arena, ast.NewLiteral(volta.NewBool(true)))
	cp := ce
	m1, ok := ce.Meta()
	require.True(t, ok)
	m2, ok := cp.Meta()
	require.True(t, ok)
	assert.Same(t, m1, m2)
}

func TestArenaStaleID(t *testing.T) {
	arena := ast.NewExprContext()
	ce := ast.NewContextualExpr(ast.ExprID(99), arena)
	assert.Nil(t, ce.Expr())
}

func TestMetaDeducedType(t *testing.T) {
	arena := ast.NewExprContext()
	ce := ast.Register(arena, ast.NewLiteral(volta.NewInt(1)))
	meta, ok := ce.Meta()
	require.True(t, ok)
	assert.Equal(t, volta.TypeUnknown, meta.DeducedType())
}
