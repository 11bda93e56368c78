package semantic

import (
	"errors"

	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
)

// sequentialValidator validates a script of ';'-separated statements.  Each
// statement validates in order against the shared QueryContext; a USE that
// validates successfully selects its space for the statements after it.
// The script's outputs are the last statement's outputs.
type sequentialValidator struct {
	base
	stmt   *ast.SequentialStmt
	inners []Validator
}

func newSequentialValidator(stmt *ast.SequentialStmt, qctx *QueryContext) (*sequentialValidator, error) {
	v := &sequentialValidator{stmt: stmt}
	for _, inner := range stmt.Stmts {
		iv, err := New(inner, qctx)
		if err != nil {
			return nil, err
		}
		v.inners = append(v.inners, iv)
	}
	// The script itself is global: each inner Run enforces the scope rule
	// against the space selected so far, so a leading USE can satisfy it
	// for the statements after it.
	v.base = newBase(qctx, StSequential, true)
	return v, nil
}

func (v *sequentialValidator) validate() error {
	if len(v.inners) == 0 {
		return semanticErrorf("empty statement sequence")
	}
	for i, inner := range v.inners {
		res := Run(inner)
		if !res.Success {
			v.errs = append(v.errs, res.Errors...)
			return nil
		}
		if use, ok := inner.(*useValidator); ok {
			if err := v.qctx.UseSpace(use.stmt.Space); err != nil {
				return asError(err)
			}
		}
		v.vars = mergeVars(v.vars, inner.UserDefinedVars())
		v.props.Merge(inner.ExprProps())
		if i == len(v.inners)-1 {
			v.outputs = res.Outputs
		}
	}
	return nil
}

// pipeValidator validates "left | right": the left side's output columns
// become the right side's input columns before the right side validates, so
// $-.column references resolve.
type pipeValidator struct {
	base
	stmt  *ast.PipeStmt
	left  Validator
	right Validator
}

func newPipeValidator(stmt *ast.PipeStmt, qctx *QueryContext) (*pipeValidator, error) {
	if stmt.Left == nil || stmt.Right == nil {
		return nil, errors.New("pipe statement requires both sides")
	}
	left, err := New(stmt.Left, qctx)
	if err != nil {
		return nil, err
	}
	right, err := New(stmt.Right, qctx)
	if err != nil {
		return nil, err
	}
	v := &pipeValidator{stmt: stmt, left: left, right: right}
	v.base = newBase(qctx, StPipe, left.IsGlobal() && right.IsGlobal())
	return v, nil
}

func (v *pipeValidator) validate() error {
	leftRes := Run(v.left)
	if !leftRes.Success {
		v.errs = append(v.errs, leftRes.Errors...)
		return nil
	}
	v.right.core().inputs = leftRes.Outputs
	rightRes := Run(v.right)
	if !rightRes.Success {
		v.errs = append(v.errs, rightRes.Errors...)
		return nil
	}
	v.inputs = leftRes.Inputs
	v.outputs = rightRes.Outputs
	v.vars = mergeVars(v.left.UserDefinedVars(), v.right.UserDefinedVars())
	v.props.Merge(v.left.ExprProps())
	v.props.Merge(v.right.ExprProps())
	return nil
}

// useValidator checks that the named space exists.  Selecting it for the
// rest of a script is the sequential validator's job.
type useValidator struct {
	base
	stmt *ast.UseStmt
}

func newUseValidator(stmt *ast.UseStmt, qctx *QueryContext) *useValidator {
	v := &useValidator{stmt: stmt}
	v.base = newBase(qctx, StUse, true)
	return v
}

func (v *useValidator) validate() error {
	if v.stmt.Space == "" {
		return semanticErrorf("space name must not be empty")
	}
	if _, err := v.qctx.Schema().GetSpace(v.stmt.Space); err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			return semanticErrorf("space %q does not exist", v.stmt.Space)
		}
		return err
	}
	return nil
}

func mergeVars(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, vars := range [][]string{a, b} {
		for _, name := range vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
