package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/compiler/semantic"
)

func TestCreateSpaceCollectsAllErrors(t *testing.T) {
	qctx := semantic.NewQueryContext(newStore(t))
	stmt := &ast.CreateSpaceStmt{
		Name:       "",
		Partitions: 0,
		Replicas:   0,
		VidType:    volta.TypeBool,
	}
	result := analyze(t, stmt, qctx)
	require.False(t, result.Success)
	// name, partitions, replicas, vid type: one error each.
	assert.Len(t, result.Errors, 4)
}

func TestCreateSpaceDuplicateName(t *testing.T) {
	qctx := semantic.NewQueryContext(newStore(t))
	stmt := &ast.CreateSpaceStmt{
		Name:       "school",
		Partitions: 10,
		Replicas:   1,
		VidType:    volta.TypeInt64,
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrConstraint, e.Kind)

	stmt.IfNotExists = true
	assert.True(t, analyze(t, stmt, qctx).Success)
}

func TestCreateSpaceFixedStringNeedsLength(t *testing.T) {
	qctx := semantic.NewQueryContext(newStore(t))
	stmt := &ast.CreateSpaceStmt{
		Name:       "library",
		Partitions: 10,
		Replicas:   1,
		VidType:    volta.TypeFixedString,
	}
	assert.False(t, analyze(t, stmt, qctx).Success)

	stmt.VidLen = 16
	assert.True(t, analyze(t, stmt, qctx).Success)
}

func TestCreateTagBadDefault(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.CreateTagStmt{
		Name: "book",
		Props: []ast.PropertySpec{
			{Name: "pages", Type: volta.TypeInt64, Default: stringLit(qctx, "many")},
		},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrType, e.Kind)
}

func TestCreateTagTTLColMustExist(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.CreateTagStmt{
		Name:        "book",
		Props:       []ast.PropertySpec{{Name: "pages", Type: volta.TypeInt64}},
		TTLCol:      "created",
		TTLDuration: 100,
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, `"created"`)
}

func TestCreateTagTTLColMustBeIntOrTimestamp(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.CreateTagStmt{
		Name:        "book",
		Props:       []ast.PropertySpec{{Name: "title", Type: volta.TypeString}},
		TTLCol:      "title",
		TTLDuration: 100,
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrType, e.Kind)
}

func TestCreateEdgeDuplicateProps(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.CreateEdgeStmt{
		Name: "reads",
		Props: []ast.PropertySpec{
			{Name: "at", Type: volta.TypeTimestamp},
			{Name: "at", Type: volta.TypeTimestamp},
		},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrDuplicateKey, e.Kind)
}

func TestAlterTagChecksExistingProps(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.AlterTagStmt{
		Name: "person",
		Adds: []ast.PropertySpec{{Name: "age", Type: volta.TypeInt64}},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrDuplicateKey, e.Kind)

	stmt = &ast.AlterTagStmt{Name: "person", Drops: []string{"height"}}
	e = firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, `"height"`)
}

func TestDropTagIfExists(t *testing.T) {
	qctx := newContext(t)
	assert.False(t, analyze(t, &ast.DropTagStmt{Name: "ghost"}, qctx).Success)
	assert.True(t, analyze(t, &ast.DropTagStmt{Name: "ghost", IfExists: true}, qctx).Success)
}

func TestCreateIndexUnknownField(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.CreateIndexStmt{
		Name:   "person_height_index",
		Schema: "person",
		Fields: []string{"height"},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Contains(t, e.Msg, `"height"`)
}

func TestCreateIndexAlreadyExists(t *testing.T) {
	qctx := newContext(t)
	stmt := &ast.CreateIndexStmt{
		Name:   "person_name_index",
		Schema: "person",
		Fields: []string{"name"},
	}
	e := firstError(t, analyze(t, stmt, qctx))
	assert.Equal(t, semantic.ErrConstraint, e.Kind)
}

func TestRebuildIndexKindMismatch(t *testing.T) {
	qctx := newContext(t)
	e := firstError(t, analyze(t, &ast.RebuildIndexStmt{Name: "person_name_index", IsEdge: true}, qctx))
	assert.Contains(t, e.Msg, "tag index")
}

func TestDescribeSpaceIsGlobal(t *testing.T) {
	qctx := semantic.NewQueryContext(newStore(t))
	result := analyze(t, &ast.DescSpaceStmt{Name: "school"}, qctx)
	require.True(t, result.Success)
	assert.Equal(t, "ID", result.Outputs[0].Name)
}

func TestDescribeTagWithoutSpaceDegrades(t *testing.T) {
	// DESCRIBE is global; with no space selected, only the header is
	// produced and existence goes unchecked.
	qctx := semantic.NewQueryContext(newStore(t))
	result := analyze(t, &ast.DescTagStmt{Name: "whatever"}, qctx)
	require.True(t, result.Success)
	assert.Equal(t, "Field", result.Outputs[0].Name)
}

func TestDescribeTagWithSpaceChecksExistence(t *testing.T) {
	qctx := newContext(t)
	assert.False(t, analyze(t, &ast.DescTagStmt{Name: "whatever"}, qctx).Success)
	assert.True(t, analyze(t, &ast.DescTagStmt{Name: "person"}, qctx).Success)
}

func TestShowCreateTag(t *testing.T) {
	qctx := newContext(t)
	result := analyze(t, &ast.ShowCreateTagStmt{Name: "person"}, qctx)
	require.True(t, result.Success)
	require.Len(t, result.Outputs, 2)
	assert.Equal(t, "Create Tag", result.Outputs[1].Name)
}

func TestShowRolesUnknownSpace(t *testing.T) {
	qctx := semantic.NewQueryContext(newStore(t))
	assert.False(t, analyze(t, &ast.ShowRolesStmt{Space: "nowhere"}, qctx).Success)
	assert.True(t, analyze(t, &ast.ShowRolesStmt{Space: "school"}, qctx).Success)
}
