package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/compiler/semantic"
)

func TestInsertVertices(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "person", Props: []string{"name", "age"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{stringLit(qctx, "Tim"), intLit(qctx, 30)},
		}},
	}
	result := analyze(t, stmt, qctx)
	assert.True(t, result.Success, "errors: %v", result.Errors)
}

func TestInsertVerticesValueCountMismatch(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "person", Props: []string{"name", "age"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{stringLit(qctx, "Tim")},
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, "wrong number of values, expected 2 but got 1", e.Msg)
}

func TestInsertVerticesValueTypeMismatch(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "person", Props: []string{"age"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{stringLit(qctx, "thirty")},
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrType, e.Kind)
}

func TestInsertVerticesMissingRequiredProp(t *testing.T) {
	// name is not nullable and has no default, so omitting it violates
	// the schema.
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "person", Props: []string{"age"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{intLit(qctx, 30)},
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrConstraint, e.Kind)
	assert.Contains(t, e.Msg, `"name"`)
}

func TestInsertVerticesUnknownProp(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "person", Props: []string{"height"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{intLit(qctx, 180)},
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, `"height"`)
}

func TestInsertVerticesDuplicateProp(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "person", Props: []string{"age", "age"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{intLit(qctx, 1), intLit(qctx, 2)},
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrDuplicateKey, e.Kind)
}

func TestInsertEdgesDefaultFillsOmittedProp(t *testing.T) {
	// likeness has a default, so an empty property list is fine.
	qctx := newContext(t)
	stmt := &ast.InsertEdgesStmt{
		Edge: "like",
		Rows: []ast.EdgeRow{{
			Key: ast.EdgeKey{Src: stringLit(qctx, "Tim"), Dst: stringLit(qctx, "Amy")},
		}},
	}
	result := analyze(t, stmt, qctx)
	assert.True(t, result.Success, "errors: %v", result.Errors)
}

func TestInsertEdgesConstantFolded(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertEdgesStmt{
		Edge:  "like",
		Props: []string{"likeness"},
		Rows: []ast.EdgeRow{{
			Key: ast.EdgeKey{Src: stringLit(qctx, "Tim"), Dst: stringLit(qctx, "Amy")},
			Values: []ast.ContextualExpr{register(qctx, ast.NewBinaryExpr("/",
				ast.NewLiteral(volta.NewFloat(1)), ast.NewLiteral(volta.NewFloat(2))))},
		}},
	}
	result := analyze(t, stmt, qctx)
	assert.True(t, result.Success, "errors: %v", result.Errors)
}

func TestInsertVerticesUnknownTag(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "player", Props: []string{"name"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{stringLit(qctx, "Tim")},
		}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, `tag "player" does not exist in space "school"`, e.Msg)
}

func TestInsertVerticesAutoCreatesTag(t *testing.T) {
	store := newStore(t)
	qctx := semantic.NewQueryContext(store, semantic.WithAutoSchema())
	require.NoError(t, qctx.UseSpace("school"))
	stmt := &ast.InsertVerticesStmt{
		Tags: []ast.TagItem{{Name: "player", Props: []string{"name", "score"}}},
		Rows: []ast.VertexRow{{
			VID:    stringLit(qctx, "Tim"),
			Values: []ast.ContextualExpr{stringLit(qctx, "Tim"), intLit(qctx, 99)},
		}},
	}
	result := analyze(t, stmt, qctx)
	require.True(t, result.Success, "errors: %v", result.Errors)

	tag, err := store.GetTag("school", "player")
	require.NoError(t, err)
	require.Len(t, tag.Props, 2)
	assert.Equal(t, volta.TypeFixedString, tag.Props[0].Type)
	assert.Equal(t, 256, tag.Props[0].Len)
	assert.True(t, tag.Props[0].Nullable)
	assert.Equal(t, volta.TypeInt64, tag.Props[1].Type)

	// A second insert reuses the created schema.
	result = analyze(t, stmt, qctx)
	assert.True(t, result.Success, "errors: %v", result.Errors)
}

func TestInsertEdgesAutoCreatesEdge(t *testing.T) {
	store := newStore(t)
	qctx := semantic.NewQueryContext(store, semantic.WithAutoSchema())
	require.NoError(t, qctx.UseSpace("school"))
	stmt := &ast.InsertEdgesStmt{
		Edge:  "knows",
		Props: []string{"since"},
		Rows: []ast.EdgeRow{{
			Key:    ast.EdgeKey{Src: stringLit(qctx, "Tim"), Dst: stringLit(qctx, "Amy")},
			Values: []ast.ContextualExpr{intLit(qctx, 2020)},
		}},
	}
	result := analyze(t, stmt, qctx)
	require.True(t, result.Success, "errors: %v", result.Errors)

	edge, err := store.GetEdge("school", "knows")
	require.NoError(t, err)
	require.Len(t, edge.Props, 1)
	assert.Equal(t, volta.TypeInt64, edge.Props[0].Type)
	assert.True(t, edge.Props[0].Nullable)
}

func TestDeleteVerticesEmpty(t *testing.T) {
	qctx := newContext(t)
	e := firstError(t, analyze(t, &ast.DeleteVerticesStmt{}, qctx))
	assert.Equal(t, "DELETE VERTICES must specify at least one vertex", e.Msg)
}

func TestDeleteTagsUnknownTag(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.DeleteTagsStmt{
		Tags: []string{"player"},
		VIDs: []ast.ContextualExpr{stringLit(qctx, "Tim")},
	}
	assert.False(t, analyze(t, stmt, qctx).Success)
}

func TestUpdateVertexTypeMismatch(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.UpdateVertexStmt{
		VID: stringLit(qctx, "Tim"),
		Tag: "person",
		Items: []ast.UpdateItem{
			{Field: "age", Value: stringLit(qctx, "old")},
		},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrType, e.Kind)
}

func TestUpdateVertexNonConstantValueAllowed(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.UpdateVertexStmt{
		VID: stringLit(qctx, "Tim"),
		Tag: "person",
		Items: []ast.UpdateItem{
			{Field: "age", Value: register(qctx, ast.NewBinaryExpr("+",
				&ast.TagProp{Tag: "person", Prop: "age"},
				ast.NewLiteral(volta.NewInt(1))))},
		},
	}
	result := analyze(t, stmt, qctx)
	assert.True(t, result.Success, "errors: %v", result.Errors)
}

func TestUpdateEdgeUnknownField(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.UpdateEdgeStmt{
		Edge: "like",
		Key:  ast.EdgeKey{Src: stringLit(qctx, "Tim"), Dst: stringLit(qctx, "Amy")},
		Items: []ast.UpdateItem{
			{Field: "weight", Value: register(qctx, ast.NewLiteral(volta.NewFloat(1)))},
		},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, `"weight"`)
}

func TestUpdateDuplicateAssignment(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.UpdateVertexStmt{
		VID: stringLit(qctx, "Tim"),
		Tag: "person",
		Items: []ast.UpdateItem{
			{Field: "age", Value: intLit(qctx, 1)},
			{Field: "age", Value: intLit(qctx, 2)},
		},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrDuplicateKey, e.Kind)
}
