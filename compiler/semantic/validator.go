package semantic

import (
	"errors"
	"strings"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
)

// StatementType discriminates validator kinds; there is one constant per
// statement shape in the grammar.
type StatementType int

const (
	StUnknown StatementType = iota
	StSequential
	StPipe
	StUse
	StGo
	StLookup
	StFetchVertices
	StFetchEdges
	StMatch
	StYield
	StOrderBy
	StLimit
	StGroupBy
	StFindPath
	StSubgraph
	StInsertVertices
	StInsertEdges
	StDeleteVertices
	StDeleteEdges
	StDeleteTags
	StUpdateVertex
	StUpdateEdge
	StCreateSpace
	StDropSpace
	StDescSpace
	StCreateTag
	StAlterTag
	StDropTag
	StDescTag
	StCreateEdge
	StAlterEdge
	StDropEdge
	StDescEdge
	StCreateIndex
	StDropIndex
	StDescIndex
	StRebuildIndex
	StShowSpaces
	StShowTags
	StShowEdges
	StShowTagIndexes
	StShowEdgeIndexes
	StShowCreateSpace
	StShowCreateTag
	StShowCreateEdge
	StShowHosts
	StShowUsers
	StShowRoles
	StShowSnapshots
	StShowConfigs
	StCreateUser
	StDropUser
	StAlterUser
	StChangePassword
	StGrantRole
	StRevokeRole
	StCreateSnapshot
	StDropSnapshot
	StBalance
	StSetConfig
	StGetConfig
	StExplain
	StAssignment
	StSetOp
)

var statementNames = map[StatementType]string{
	StSequential:      "SEQUENTIAL",
	StPipe:            "PIPE",
	StUse:             "USE",
	StGo:              "GO",
	StLookup:          "LOOKUP",
	StFetchVertices:   "FETCH VERTICES",
	StFetchEdges:      "FETCH EDGES",
	StMatch:           "MATCH",
	StYield:           "YIELD",
	StOrderBy:         "ORDER BY",
	StLimit:           "LIMIT",
	StGroupBy:         "GROUP BY",
	StFindPath:        "FIND PATH",
	StSubgraph:        "GET SUBGRAPH",
	StInsertVertices:  "INSERT VERTEX",
	StInsertEdges:     "INSERT EDGE",
	StDeleteVertices:  "DELETE VERTICES",
	StDeleteEdges:     "DELETE EDGES",
	StDeleteTags:      "DELETE TAG",
	StUpdateVertex:    "UPDATE VERTEX",
	StUpdateEdge:      "UPDATE EDGE",
	StCreateSpace:     "CREATE SPACE",
	StDropSpace:       "DROP SPACE",
	StDescSpace:       "DESCRIBE SPACE",
	StCreateTag:       "CREATE TAG",
	StAlterTag:        "ALTER TAG",
	StDropTag:         "DROP TAG",
	StDescTag:         "DESCRIBE TAG",
	StCreateEdge:      "CREATE EDGE",
	StAlterEdge:       "ALTER EDGE",
	StDropEdge:        "DROP EDGE",
	StDescEdge:        "DESCRIBE EDGE",
	StCreateIndex:     "CREATE INDEX",
	StDropIndex:       "DROP INDEX",
	StDescIndex:       "DESCRIBE INDEX",
	StRebuildIndex:    "REBUILD INDEX",
	StShowSpaces:      "SHOW SPACES",
	StShowTags:        "SHOW TAGS",
	StShowEdges:       "SHOW EDGES",
	StShowTagIndexes:  "SHOW TAG INDEXES",
	StShowEdgeIndexes: "SHOW EDGE INDEXES",
	StShowCreateSpace: "SHOW CREATE SPACE",
	StShowCreateTag:   "SHOW CREATE TAG",
	StShowCreateEdge:  "SHOW CREATE EDGE",
	StShowHosts:       "SHOW HOSTS",
	StShowUsers:       "SHOW USERS",
	StShowRoles:       "SHOW ROLES",
	StShowSnapshots:   "SHOW SNAPSHOTS",
	StShowConfigs:     "SHOW CONFIGS",
	StCreateUser:      "CREATE USER",
	StDropUser:        "DROP USER",
	StAlterUser:       "ALTER USER",
	StChangePassword:  "CHANGE PASSWORD",
	StGrantRole:       "GRANT ROLE",
	StRevokeRole:      "REVOKE ROLE",
	StCreateSnapshot:  "CREATE SNAPSHOT",
	StDropSnapshot:    "DROP SNAPSHOT",
	StBalance:         "BALANCE",
	StSetConfig:       "UPDATE CONFIGS",
	StGetConfig:       "GET CONFIGS",
	StExplain:         "EXPLAIN",
	StAssignment:      "ASSIGNMENT",
	StSetOp:           "SET OPERATION",
}

func (t StatementType) String() string {
	if name, ok := statementNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validator is the per-statement validation contract.  Implementations are
// the closed set of concrete validators in this package; New builds the
// right one for a parsed statement, recursively for statements that wrap
// other statements.  A validator accumulates only its own state; it never
// mutates the shared QueryContext beyond variable definition for its own
// statement, and never another validator's state.
type Validator interface {
	// StatementType is the constant discriminant of the validator's kind.
	StatementType() StatementType
	// Inputs lists the columns consumed from an upstream pipe or
	// variable binding; empty before validation runs.
	Inputs() []ColumnDef
	// Outputs lists the columns produced for downstream consumers; empty
	// before validation runs.
	Outputs() []ColumnDef
	// IsGlobal reports whether the statement is valid with no space
	// selected.  DDL on spaces, SHOW/DESCRIBE, and user administration
	// are global; everything touching graph data is not.
	IsGlobal() bool
	// ExprProps aggregates the storage properties referenced by the
	// statement's expressions.
	ExprProps() *ExprProps
	// UserDefinedVars names the variables the statement binds for later
	// pipe stages.
	UserDefinedVars() []string

	validate() error
	core() *base
}

// base carries the state shared by every concrete validator.
type base struct {
	qctx    *QueryContext
	stype   StatementType
	global  bool
	inputs  []ColumnDef
	outputs []ColumnDef
	errs    []Error
	props   *ExprProps
	vars    []string
}

func newBase(qctx *QueryContext, stype StatementType, global bool) base {
	return base{qctx: qctx, stype: stype, global: global, props: NewExprProps()}
}

func (b *base) StatementType() StatementType { return b.stype }
func (b *base) Inputs() []ColumnDef          { return b.inputs }
func (b *base) Outputs() []ColumnDef         { return b.outputs }
func (b *base) IsGlobal() bool               { return b.global }
func (b *base) ExprProps() *ExprProps        { return b.props }
func (b *base) UserDefinedVars() []string    { return b.vars }
func (b *base) core() *base                  { return b }

func (b *base) addError(err error) {
	b.errs = append(b.errs, *asError(err))
}

// deref resolves a handle, mapping a stale or foreign id to a semantic
// error instead of a crash.
func (b *base) deref(ce ast.ContextualExpr) (ast.Expr, error) {
	if !ce.Valid() {
		return nil, semanticErrorf("internal: expression handle is unbound")
	}
	e := ce.Expr()
	if e == nil {
		return nil, semanticErrorf("internal: expression #%d not found in this query context", ce.ID)
	}
	return e, nil
}

// checkExpr dereferences and structurally checks one optional expression,
// collecting its property references.  The zero handle (absent clause) is
// fine.
func (b *base) checkExpr(ce ast.ContextualExpr) (ast.Expr, error) {
	if !ce.Valid() {
		return nil, nil
	}
	e, err := b.deref(ce)
	if err != nil {
		return nil, err
	}
	if err := newChecker(b.qctx).check(e); err != nil {
		return nil, err
	}
	b.props.Collect(e)
	return e, nil
}

// space returns the selected space.  Non-global validators only run after
// the scope check, so it is non-nil there.
func (b *base) space() *schema.Space { return b.qctx.Space() }

// yieldOutputs resolves a YIELD/RETURN column list into output columns.
// Unaliased columns take the rendered expression as their name.
func (b *base) yieldOutputs(cols []ast.YieldColumn) error {
	if len(cols) == 0 {
		return semanticErrorf("yield clause must not be empty")
	}
	seen := make(map[string]bool, len(cols))
	outs := make([]ColumnDef, 0, len(cols))
	for _, col := range cols {
		e, err := b.checkExpr(col.Expr)
		if err != nil {
			return err
		}
		if e == nil {
			return semanticErrorf("yield column must not be empty")
		}
		name := col.Alias
		if name == "" {
			name = ast.Format(e)
		}
		if seen[name] {
			return newError(ErrDuplicateKey, "duplicate column name %q", name)
		}
		seen[name] = true
		outs = append(outs, ColumnDef{Name: name, Type: b.deduceType(e)})
	}
	b.outputs = outs
	return nil
}

// deduceType infers the result type of an expression as far as statically
// possible; anything schema- or runtime-dependent that cannot be resolved
// is Unknown, which downstream checks treat as a wildcard.
func (b *base) deduceType(e ast.Expr) volta.ValueType {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Value.Type
	case *ast.CastExpr:
		return e.Type
	case *ast.ListExpr, *ast.RangeExpr, *ast.ListComprehension:
		return volta.TypeList
	case *ast.PathBuild:
		return volta.TypePath
	case *ast.MapExpr:
		return volta.TypeMap
	case *ast.UnaryExpr:
		if e.Op == "!" || e.Op == "not" {
			return volta.TypeBool
		}
		return b.deduceType(e.Operand)
	case *ast.BinaryExpr:
		switch e.Op {
		case "==", "!=", "<", "<=", ">", ">=", "and", "or", "xor", "in",
			"like", "starts with", "ends with", "contains":
			return volta.TypeBool
		case "+", "-", "*", "/", "%":
			lhs, rhs := b.deduceType(e.LHS), b.deduceType(e.RHS)
			return volta.Widen(lhs, rhs)
		}
		return volta.TypeUnknown
	case *ast.Agg:
		switch strings.ToLower(e.Name) {
		case "count":
			return volta.TypeInt64
		case "avg", "stddev":
			return volta.TypeDouble
		case "collect":
			return volta.TypeList
		}
		if e.Arg != nil {
			return b.deduceType(e.Arg)
		}
		return volta.TypeUnknown
	case *ast.EdgeRank:
		return volta.TypeInt64
	case *ast.TagProp:
		return b.lookupTagPropType(e.Tag, e.Prop)
	case *ast.SrcProp:
		return b.lookupTagPropType(e.Tag, e.Prop)
	case *ast.DstProp:
		return b.lookupTagPropType(e.Tag, e.Prop)
	case *ast.EdgeProp:
		if space := b.space(); space != nil {
			if edge, err := b.qctx.Schema().GetEdge(space.Name, e.Edge); err == nil {
				if prop := edge.Prop(e.Prop); prop != nil {
					return prop.Type
				}
			}
		}
		return volta.TypeUnknown
	case *ast.InputProp:
		for _, col := range b.inputs {
			if col.Name == e.Prop {
				return col.Type
			}
		}
		return volta.TypeUnknown
	case *ast.VarProp:
		if cols, ok := b.qctx.VarColumns(e.Var); ok {
			for _, col := range cols {
				if col.Name == e.Prop {
					return col.Type
				}
			}
		}
		return volta.TypeUnknown
	}
	return volta.TypeUnknown
}

func (b *base) lookupTagPropType(tag, prop string) volta.ValueType {
	if space := b.space(); space != nil {
		if t, err := b.qctx.Schema().GetTag(space.Name, tag); err == nil {
			if p := t.Prop(prop); p != nil {
				return p.Type
			}
		}
	}
	return volta.TypeUnknown
}

// requireTag resolves a tag of the selected space.
func (b *base) requireTag(name string) (*schema.Tag, error) {
	tag, err := b.qctx.Schema().GetTag(b.space().Name, name)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			return nil, semanticErrorf("tag %q does not exist in space %q", name, b.space().Name)
		}
		return nil, err
	}
	return tag, nil
}

// requireEdge resolves an edge type of the selected space.
func (b *base) requireEdge(name string) (*schema.Edge, error) {
	edge, err := b.qctx.Schema().GetEdge(b.space().Name, name)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			return nil, semanticErrorf("edge %q does not exist in space %q", name, b.space().Name)
		}
		return nil, err
	}
	return edge, nil
}

// Run executes a validator: the scope rule first, then the statement rules,
// normalizing both error channels into one Result.  Validators that fail
// fast return an error from validate; validators that collect append to the
// internal error list and return nil.  Either way callers only ever see the
// Result.
func Run(v Validator) *Result {
	b := v.core()
	if !v.IsGlobal() && b.qctx.Space() == nil {
		return Failure(Error{
			Kind: ErrSemantic,
			Msg:  `no space selected, use the "USE <space>" statement first`,
		})
	}
	if err := v.validate(); err != nil {
		b.addError(err)
	}
	if len(b.errs) > 0 {
		return &Result{Inputs: b.inputs, Outputs: b.outputs, Errors: b.errs}
	}
	return success(b.inputs, b.outputs)
}
