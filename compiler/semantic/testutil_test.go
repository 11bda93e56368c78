package semantic_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/compiler/semantic"
	"github.com/voltadb/volta/schema"
)

// newStore builds an in-memory schema with one space holding a person tag
// and a like edge, plus an index on person.name.
func newStore(t *testing.T) schema.Manager {
	t.Helper()
	store := schema.NewMemStore()
	require.NoError(t, store.CreateSpace(&schema.Space{
		ID:         uuid.New(),
		Name:       "school",
		Partitions: 10,
		Replicas:   1,
		VidType:    volta.TypeFixedString,
		VidLen:     32,
	}))
	likeness := volta.NewFloat(0)
	require.NoError(t, store.CreateTag("school", &schema.Tag{
		Name: "person",
		Props: []schema.Property{
			{Name: "name", Type: volta.TypeString},
			{Name: "age", Type: volta.TypeInt64, Nullable: true},
		},
	}))
	require.NoError(t, store.CreateEdge("school", &schema.Edge{
		Name: "like",
		Props: []schema.Property{
			{Name: "likeness", Type: volta.TypeDouble, Default: &likeness},
		},
	}))
	require.NoError(t, store.CreateIndex("school", &schema.Index{
		Name:   "person_name_index",
		Schema: "person",
		Fields: []string{"name"},
	}))
	return store
}

// newContext returns a query context with the school space selected.
func newContext(t *testing.T) *semantic.QueryContext {
	t.Helper()
	qctx := semantic.NewQueryContext(newStore(t))
	require.NoError(t, qctx.UseSpace("school"))
	return qctx
}

func register(qctx *semantic.QueryContext, e ast.Expr) ast.ContextualExpr {
	return ast.Register(qctx.Arena(), e)
}

func stringLit(qctx *semantic.QueryContext, s string) ast.ContextualExpr {
	return register(qctx, ast.NewLiteral(volta.NewString(s)))
}

func intLit(qctx *semantic.QueryContext, i int64) ast.ContextualExpr {
	return register(qctx, ast.NewLiteral(volta.NewInt(i)))
}

func analyze(t *testing.T, stmt ast.Stmt, qctx *semantic.QueryContext) *semantic.Result {
	t.Helper()
	result, err := semantic.Analyze(stmt, qctx)
	require.NoError(t, err)
	return result
}

func firstError(t *testing.T, result *semantic.Result) semantic.Error {
	t.Helper()
	require.False(t, result.Success)
	require.NotEmpty(t, result.Errors)
	return result.Errors[0]
}
