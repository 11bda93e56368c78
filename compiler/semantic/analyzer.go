package semantic

import (
	"fmt"

	"github.com/voltadb/volta/compiler/ast"
	"go.uber.org/zap"
)

// New builds the validator for stmt.  The statement set is closed, so the
// switch is exhaustive; an unhandled type can only mean a parser/analyzer
// version skew and is reported as an error, not a panic.  Wrapper
// statements (EXPLAIN/PROFILE, assignment, set operations, pipes,
// sequential scripts) recursively construct validators for their inner
// statements against the same QueryContext.
func New(stmt ast.Stmt, qctx *QueryContext) (Validator, error) {
	switch stmt := stmt.(type) {
	case *ast.SequentialStmt:
		return newSequentialValidator(stmt, qctx)
	case *ast.PipeStmt:
		return newPipeValidator(stmt, qctx)
	case *ast.UseStmt:
		return newUseValidator(stmt, qctx), nil
	case *ast.GoStmt:
		return newGoValidator(stmt, qctx), nil
	case *ast.LookupStmt:
		return newLookupValidator(stmt, qctx), nil
	case *ast.FetchVerticesStmt:
		return newFetchVerticesValidator(stmt, qctx), nil
	case *ast.FetchEdgesStmt:
		return newFetchEdgesValidator(stmt, qctx), nil
	case *ast.MatchStmt:
		return newMatchValidator(stmt, qctx), nil
	case *ast.YieldStmt:
		return newYieldValidator(stmt, qctx), nil
	case *ast.OrderByStmt:
		return newOrderByValidator(stmt, qctx), nil
	case *ast.LimitStmt:
		return newLimitValidator(stmt, qctx), nil
	case *ast.GroupByStmt:
		return newGroupByValidator(stmt, qctx), nil
	case *ast.FindPathStmt:
		return newFindPathValidator(stmt, qctx), nil
	case *ast.SubgraphStmt:
		return newSubgraphValidator(stmt, qctx), nil
	case *ast.InsertVerticesStmt:
		return newInsertVerticesValidator(stmt, qctx), nil
	case *ast.InsertEdgesStmt:
		return newInsertEdgesValidator(stmt, qctx), nil
	case *ast.DeleteVerticesStmt:
		return newDeleteVerticesValidator(stmt, qctx), nil
	case *ast.DeleteEdgesStmt:
		return newDeleteEdgesValidator(stmt, qctx), nil
	case *ast.DeleteTagsStmt:
		return newDeleteTagsValidator(stmt, qctx), nil
	case *ast.UpdateVertexStmt:
		return newUpdateVertexValidator(stmt, qctx), nil
	case *ast.UpdateEdgeStmt:
		return newUpdateEdgeValidator(stmt, qctx), nil
	case *ast.CreateSpaceStmt:
		return newCreateSpaceValidator(stmt, qctx), nil
	case *ast.DropSpaceStmt:
		return newDropSpaceValidator(stmt, qctx), nil
	case *ast.DescSpaceStmt:
		return newDescValidator(StDescSpace, stmt.Name, false, qctx), nil
	case *ast.CreateTagStmt:
		return newCreateTagValidator(stmt, qctx), nil
	case *ast.AlterTagStmt:
		return newAlterTagValidator(stmt, qctx), nil
	case *ast.DropTagStmt:
		return newDropTagValidator(stmt, qctx), nil
	case *ast.DescTagStmt:
		return newDescValidator(StDescTag, stmt.Name, false, qctx), nil
	case *ast.CreateEdgeStmt:
		return newCreateEdgeValidator(stmt, qctx), nil
	case *ast.AlterEdgeStmt:
		return newAlterEdgeValidator(stmt, qctx), nil
	case *ast.DropEdgeStmt:
		return newDropEdgeValidator(stmt, qctx), nil
	case *ast.DescEdgeStmt:
		return newDescValidator(StDescEdge, stmt.Name, false, qctx), nil
	case *ast.CreateIndexStmt:
		return newCreateIndexValidator(stmt, qctx), nil
	case *ast.DropIndexStmt:
		return newDropIndexValidator(stmt, qctx), nil
	case *ast.DescIndexStmt:
		return newDescValidator(StDescIndex, stmt.Name, stmt.IsEdge, qctx), nil
	case *ast.RebuildIndexStmt:
		return newRebuildIndexValidator(stmt, qctx), nil
	case *ast.ShowSpacesStmt:
		return newShowValidator(StShowSpaces, qctx), nil
	case *ast.ShowTagsStmt:
		return newShowValidator(StShowTags, qctx), nil
	case *ast.ShowEdgesStmt:
		return newShowValidator(StShowEdges, qctx), nil
	case *ast.ShowTagIndexesStmt:
		return newShowValidator(StShowTagIndexes, qctx), nil
	case *ast.ShowEdgeIndexesStmt:
		return newShowValidator(StShowEdgeIndexes, qctx), nil
	case *ast.ShowCreateSpaceStmt:
		return newShowCreateValidator(StShowCreateSpace, stmt.Name, qctx), nil
	case *ast.ShowCreateTagStmt:
		return newShowCreateValidator(StShowCreateTag, stmt.Name, qctx), nil
	case *ast.ShowCreateEdgeStmt:
		return newShowCreateValidator(StShowCreateEdge, stmt.Name, qctx), nil
	case *ast.ShowHostsStmt:
		return newShowValidator(StShowHosts, qctx), nil
	case *ast.ShowUsersStmt:
		return newShowValidator(StShowUsers, qctx), nil
	case *ast.ShowRolesStmt:
		return newShowRolesValidator(stmt, qctx), nil
	case *ast.ShowSnapshotsStmt:
		return newShowValidator(StShowSnapshots, qctx), nil
	case *ast.ShowConfigsStmt:
		return newShowValidator(StShowConfigs, qctx), nil
	case *ast.CreateUserStmt:
		return newCreateUserValidator(stmt, qctx), nil
	case *ast.DropUserStmt:
		return newDropUserValidator(stmt, qctx), nil
	case *ast.AlterUserStmt:
		return newAlterUserValidator(stmt, qctx), nil
	case *ast.ChangePasswordStmt:
		return newChangePasswordValidator(stmt, qctx), nil
	case *ast.GrantRoleStmt:
		return newGrantRoleValidator(stmt, qctx), nil
	case *ast.RevokeRoleStmt:
		return newRevokeRoleValidator(stmt, qctx), nil
	case *ast.CreateSnapshotStmt:
		return newSnapshotValidator(StCreateSnapshot, "", qctx), nil
	case *ast.DropSnapshotStmt:
		return newSnapshotValidator(StDropSnapshot, stmt.Name, qctx), nil
	case *ast.BalanceStmt:
		return newBalanceValidator(stmt, qctx), nil
	case *ast.SetConfigStmt:
		return newSetConfigValidator(stmt, qctx), nil
	case *ast.GetConfigStmt:
		return newGetConfigValidator(stmt, qctx), nil
	case *ast.ExplainStmt:
		return newExplainValidator(stmt, qctx)
	case *ast.AssignmentStmt:
		return newAssignmentValidator(stmt, qctx)
	case *ast.SetOpStmt:
		return newSetOpValidator(stmt, qctx)
	default:
		return nil, fmt.Errorf("no validator for statement type %T", stmt)
	}
}

// Analyze validates one top-level statement and returns the normalized
// Result the planner consumes.  Both validator error channels (fail-fast
// and collect-then-report) surface here as an error list; callers never
// see a bare error for a semantic problem, only for a nil statement or a
// statement kind this build does not know.
func Analyze(stmt ast.Stmt, qctx *QueryContext) (*Result, error) {
	if stmt == nil {
		return nil, fmt.Errorf("cannot analyze a nil statement")
	}
	v, err := New(stmt, qctx)
	if err != nil {
		return nil, err
	}
	res := Run(v)
	observeResult(v.StatementType(), res)
	qctx.Logger().Debug("statement analyzed",
		zap.Stringer("type", v.StatementType()),
		zap.Stringer("query", qctx.QueryID()),
		zap.Bool("success", res.Success),
		zap.Int("errors", len(res.Errors)),
		zap.Int("outputs", len(res.Outputs)))
	return res, nil
}
