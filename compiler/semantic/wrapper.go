package semantic

import (
	"errors"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
)

// The wrapper validators cover statements that produce no rows of their
// own: EXPLAIN/PROFILE, assignment, and the set operations.  Each builds
// its inner validator(s) through the factory at construction, validates
// them against the same QueryContext, and propagates or merges their
// outputs per the statement's semantics.

// explainValidator is schema-transparent: its outputs are exactly the
// wrapped statement's outputs.  EXPLAIN of EXPLAIN composes through the
// factory recursion.
type explainValidator struct {
	base
	stmt  *ast.ExplainStmt
	inner Validator
}

var explainFormats = map[string]bool{"": true, "row": true, "dot": true, "tck": true}

func newExplainValidator(stmt *ast.ExplainStmt, qctx *QueryContext) (*explainValidator, error) {
	if stmt.Stmt == nil {
		return nil, errors.New("EXPLAIN requires a statement")
	}
	inner, err := New(stmt.Stmt, qctx)
	if err != nil {
		return nil, err
	}
	v := &explainValidator{stmt: stmt, inner: inner}
	v.base = newBase(qctx, StExplain, inner.IsGlobal())
	return v, nil
}

func (v *explainValidator) validate() error {
	if !explainFormats[v.stmt.Format] {
		return semanticErrorf("invalid explain format %q", v.stmt.Format)
	}
	res := Run(v.inner)
	if !res.Success {
		v.errs = append(v.errs, res.Errors...)
		return nil
	}
	v.inputs = res.Inputs
	v.outputs = res.Outputs
	v.vars = v.inner.UserDefinedVars()
	v.props.Merge(v.inner.ExprProps())
	return nil
}

// assignmentValidator validates "$var = <stmt>".  It is schema-transparent
// and additionally binds the variable to the inner statement's output
// columns for later pipe stages.
type assignmentValidator struct {
	base
	stmt  *ast.AssignmentStmt
	inner Validator
}

func newAssignmentValidator(stmt *ast.AssignmentStmt, qctx *QueryContext) (*assignmentValidator, error) {
	if stmt.Stmt == nil {
		return nil, errors.New("assignment requires a statement")
	}
	inner, err := New(stmt.Stmt, qctx)
	if err != nil {
		return nil, err
	}
	v := &assignmentValidator{stmt: stmt, inner: inner}
	v.base = newBase(qctx, StAssignment, inner.IsGlobal())
	return v, nil
}

func (v *assignmentValidator) validate() error {
	if v.stmt.Var == "" {
		return semanticErrorf("variable name must not be empty")
	}
	res := Run(v.inner)
	if !res.Success {
		v.errs = append(v.errs, res.Errors...)
		return nil
	}
	v.inputs = res.Inputs
	v.outputs = res.Outputs
	v.vars = mergeVars(v.inner.UserDefinedVars(), []string{v.stmt.Var})
	v.props.Merge(v.inner.ExprProps())
	v.qctx.DefineVar(v.stmt.Var, res.Outputs)
	return nil
}

// setOpValidator validates UNION/INTERSECT/MINUS.  Both sides validate
// independently; the merged output takes the left side's column names and
// the widened type of each pair.
type setOpValidator struct {
	base
	stmt  *ast.SetOpStmt
	left  Validator
	right Validator
}

func newSetOpValidator(stmt *ast.SetOpStmt, qctx *QueryContext) (*setOpValidator, error) {
	if stmt.Left == nil || stmt.Right == nil {
		return nil, errors.New("set operation requires both sides")
	}
	left, err := New(stmt.Left, qctx)
	if err != nil {
		return nil, err
	}
	right, err := New(stmt.Right, qctx)
	if err != nil {
		return nil, err
	}
	v := &setOpValidator{stmt: stmt, left: left, right: right}
	// The whole operation is global only when both sides are.
	v.base = newBase(qctx, StSetOp, left.IsGlobal() && right.IsGlobal())
	return v, nil
}

func (v *setOpValidator) validate() error {
	leftRes := Run(v.left)
	rightRes := Run(v.right)
	v.errs = append(v.errs, leftRes.Errors...)
	v.errs = append(v.errs, rightRes.Errors...)
	if len(v.errs) > 0 {
		return nil
	}
	lcols, rcols := leftRes.Outputs, rightRes.Outputs
	if len(lcols) != len(rcols) {
		return semanticErrorf(
			"number of columns of the %s sides must be the same, %d on the left but %d on the right",
			v.stmt.Op, len(lcols), len(rcols))
	}
	merged := make([]ColumnDef, len(lcols))
	for i := range lcols {
		widened := volta.Widen(lcols[i].Type, rcols[i].Type)
		if widened == volta.TypeUnknown &&
			lcols[i].Type != volta.TypeUnknown && rcols[i].Type != volta.TypeUnknown {
			return typeErrorf("incompatible column types for %s: %q is %s on the left and %s on the right",
				v.stmt.Op, lcols[i].Name, lcols[i].Type, rcols[i].Type)
		}
		merged[i] = ColumnDef{Name: lcols[i].Name, Type: widened}
	}
	v.outputs = merged
	v.vars = mergeVars(v.left.UserDefinedVars(), v.right.UserDefinedVars())
	v.props.Merge(v.left.ExprProps())
	v.props.Merge(v.right.ExprProps())
	return nil
}
