package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/compiler/semantic"
)

func TestGoUnknownEdge(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.GoStmt{
		StepsFrom: 1,
		StepsTo:   1,
		From:      []ast.ContextualExpr{stringLit(qctx, "Tim")},
		Over:      []string{"follows"},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, `edge "follows" does not exist in space "school"`, e.Msg)
}

func TestGoYieldProps(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.GoStmt{
		StepsFrom: 1,
		StepsTo:   2,
		From:      []ast.ContextualExpr{stringLit(qctx, "Tim")},
		Over:      []string{"like"},
		Yield: []ast.YieldColumn{
			{Expr: register(qctx, &ast.EdgeProp{Edge: "like", Prop: "likeness"})},
			{Expr: register(qctx, &ast.DstProp{Tag: "person", Prop: "name"}), Alias: "friend"},
		},
	}
	result := analyze(t, stmt, qctx)
	require.True(t, result.Success, "errors: %v", result.Errors)
	require.Len(t, result.Outputs, 2)
	assert.Equal(t, volta.TypeDouble, result.Outputs[0].Type)
	assert.Equal(t, "friend", result.Outputs[1].Name)
	assert.Equal(t, volta.TypeString, result.Outputs[1].Type)
}

func TestGoCollectsExprProps(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.GoStmt{
		StepsFrom: 1,
		StepsTo:   1,
		From:      []ast.ContextualExpr{stringLit(qctx, "Tim")},
		Over:      []string{"like"},
		Yield: []ast.YieldColumn{
			{Expr: register(qctx, &ast.EdgeProp{Edge: "like", Prop: "likeness"})},
		},
	}
	v, err := semantic.New(stmt, qctx)
	require.NoError(t, err)
	result := semantic.Run(v)
	require.True(t, result.Success)
	assert.Equal(t, []string{"like"}, v.ExprProps().Edges())
}

func TestGoAggregateInWhere(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.GoStmt{
		StepsFrom: 1,
		StepsTo:   1,
		From:      []ast.ContextualExpr{stringLit(qctx, "Tim")},
		Over:      []string{"like"},
		Where: register(qctx, ast.NewBinaryExpr(">",
			&ast.Agg{Name: "count"}, ast.NewLiteral(volta.NewInt(1)))),
	}
	result := analyze(t, stmt, qctx)
	assert.False(t, result.Success)
}

func TestGoBadStepRange(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.GoStmt{
		StepsFrom: 3,
		StepsTo:   1,
		From:      []ast.ContextualExpr{stringLit(qctx, "Tim")},
		Over:      []string{"like"},
	}
	assert.False(t, analyze(t, stmt, qctx).Success)
}

func TestLookupFilterMustMatchSource(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.LookupStmt{
		Source: "person",
		Where: register(qctx, ast.NewBinaryExpr("==",
			&ast.EdgeProp{Edge: "like", Prop: "likeness"},
			ast.NewLiteral(volta.NewFloat(0.9)))),
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, `"like"`)
	assert.Contains(t, e.Msg, `"person"`)
}

func TestLookupDefaultOutputs(t *testing.T) {
	qctx := newContext(t)
	result := analyze(t, &ast.LookupStmt{Source: "like", IsEdge: true}, qctx)
	require.True(t, result.Success)
	require.Len(t, result.Outputs, 3)
	assert.Equal(t, "Ranking", result.Outputs[2].Name)
}

func TestFetchVerticesUnknownTag(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.FetchVerticesStmt{
		Tag:  "player",
		VIDs: []ast.ContextualExpr{stringLit(qctx, "Tim")},
	}
	assert.False(t, analyze(t, stmt, qctx).Success)
}

func TestFetchEdgesRankMustBeInt(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.FetchEdgesStmt{
		Edge: "like",
		Keys: []ast.EdgeKey{{
			Src:  stringLit(qctx, "Tim"),
			Dst:  stringLit(qctx, "Amy"),
			Rank: stringLit(qctx, "zero"),
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrType, e.Kind)
}

func TestMatchDuplicateAlias(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.MatchStmt{
		Patterns: []ast.PathPattern{{
			Nodes: []ast.NodePattern{{Var: "v"}, {Var: "v"}},
			Edges: []ast.EdgePattern{{Types: []string{"like"}}},
		}},
		Return: []ast.YieldColumn{{Expr: register(qctx, &ast.Label{Name: "v"})}},
		Limit:  -1,
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrDuplicateKey, e.Kind)
}

func TestMatchUnknownLabel(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.MatchStmt{
		Patterns: []ast.PathPattern{{
			Nodes: []ast.NodePattern{{Var: "v", Labels: []string{"team"}}},
		}},
		Return: []ast.YieldColumn{{Expr: register(qctx, &ast.Label{Name: "v"})}},
		Limit:  -1,
	}
	assert.False(t, analyze(t, stmt, qctx).Success)
}

func TestVIDTypeChecked(t *testing.T) {
	qctx := newContext(t)
	// The school space uses fixed_string vids; an integer vid is a type
	// error.
	stmt := &ast.FetchVerticesStmt{
		Tag:  "person",
		VIDs: []ast.ContextualExpr{intLit(qctx, 42)},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrType, e.Kind)
}

func TestGroupByNonAggregateMustBeKey(t *testing.T) {
	qctx := newContext(t)
	a := ast.Expr(&ast.InputProp{Prop: "a"})
	b := ast.Expr(&ast.InputProp{Prop: "b"})
	stmt := &ast.GroupByStmt{
		Keys: []ast.ContextualExpr{register(qctx, a)},
		Yield: []ast.YieldColumn{
			{Expr: register(qctx, a), Alias: "a"},
			{Expr: register(qctx, b), Alias: "b"},
			{Expr: register(qctx, &ast.Agg{Name: "count", Arg: &ast.InputProp{Prop: "c"}}), Alias: "total"},
		},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, "$-.b")
	assert.Contains(t, e.Msg, "GROUP BY keys")
}

func TestGroupByAggregateAndKeyedColumns(t *testing.T) {
	qctx := newContext(t)
	a := ast.Expr(&ast.InputProp{Prop: "a"})
	stmt := &ast.GroupByStmt{
		Keys: []ast.ContextualExpr{register(qctx, a)},
		Yield: []ast.YieldColumn{
			{Expr: register(qctx, a), Alias: "a"},
			{Expr: register(qctx, &ast.Agg{Name: "count", Arg: &ast.InputProp{Prop: "c"}}), Alias: "total"},
		},
	}
	result := analyze(t, stmt, qctx)
	require.True(t, result.Success, "errors: %v", result.Errors)
	require.Len(t, result.Outputs, 2)
	assert.Equal(t, volta.TypeInt64, result.Outputs[1].Type)
}

func TestGroupByKeyMatchIsStructural(t *testing.T) {
	// The yield column is a distinct ast node from the key; equality is
	// by shape, not identity.
	qctx := newContext(t)
	stmt := &ast.GroupByStmt{
		Keys: []ast.ContextualExpr{register(qctx, &ast.InputProp{Prop: "a"})},
		Yield: []ast.YieldColumn{
			{Expr: register(qctx, &ast.InputProp{Prop: "a"}), Alias: "a"},
		},
	}
	assert.True(t, analyze(t, stmt, qctx).Success)
}

func TestGroupByAggregateKeyRejected(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.GroupByStmt{
		Keys: []ast.ContextualExpr{register(qctx, &ast.Agg{Name: "count"})},
		Yield: []ast.YieldColumn{
			{Expr: register(qctx, &ast.Agg{Name: "count"}), Alias: "n"},
		},
	}
	assert.False(t, analyze(t, stmt, qctx).Success)
}

func TestFindPathOutputs(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.FindPathStmt{
		Shortest: true,
		From:     []ast.ContextualExpr{stringLit(qctx, "Tim")},
		To:       []ast.ContextualExpr{stringLit(qctx, "Amy")},
		Over:     []string{"like"},
		Steps:    5,
	}
	result := analyze(t, stmt, qctx)
	require.True(t, result.Success, "errors: %v", result.Errors)
	require.Len(t, result.Outputs, 1)
	assert.Equal(t, volta.TypePath, result.Outputs[0].Type)
}

func TestSubgraphDefaultOutputs(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.SubgraphStmt{
		From:    []ast.ContextualExpr{stringLit(qctx, "Tim")},
		Steps:   2,
		BothAll: true,
	}
	result := analyze(t, stmt, qctx)
	require.True(t, result.Success)
	require.Len(t, result.Outputs, 2)
	assert.Equal(t, "_vertices", result.Outputs[0].Name)
}

func TestLimitNegativeCount(t *testing.T) {
	qctx := newContext(t)
	left := &ast.YieldStmt{Columns: []ast.YieldColumn{{Expr: intLit(qctx, 1), Alias: "n"}}}
	stmt := &ast.PipeStmt{Left: left, Right: &ast.LimitStmt{Count: -5}}
	assert.False(t, analyze(t, stmt, qctx).Success)
}
