package semantic

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
	"go.uber.org/zap"
)

// A QueryContext carries everything one query's validation needs: the
// selected space (if any), session identity, the expression arena the
// query's AST was registered in, the schema manager, and the column
// bindings of user-defined variables.  Validators read it; only variable
// definition mutates it, and only for the validator's own statement tree.
type QueryContext struct {
	sessionID ksuid.KSUID
	queryID   uuid.UUID
	space     *schema.Space
	sm        schema.Manager
	arena     *ast.ExprContext
	varCols   map[string][]ColumnDef
	varExprs  map[string]ast.Expr
	params     map[string]volta.Value
	logger     *zap.Logger
	limits     Limits
	autoSchema bool
}

// Limits bounds worst-case validation cost.
type Limits struct {
	// MaxExprDepth caps expression nesting; see the expression checker.
	MaxExprDepth int
	// MaxFunctionArgs caps the argument list of one call.
	MaxFunctionArgs int
	// MaxContainerElems caps list and map literal sizes.
	MaxContainerElems int
}

// DefaultLimits mirror the engine defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxExprDepth:      100,
		MaxFunctionArgs:   256,
		MaxContainerElems: 65535,
	}
}

// Option configures a QueryContext.
type Option func(*QueryContext)

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(q *QueryContext) { q.logger = logger }
}

// WithSessionID pins the session identity, e.g. when one session issues
// many queries.
func WithSessionID(id ksuid.KSUID) Option {
	return func(q *QueryContext) { q.sessionID = id }
}

// WithLimits overrides the default validation limits.
func WithLimits(limits Limits) Option {
	return func(q *QueryContext) { q.limits = limits }
}

// WithParams binds client-supplied parameter values.
func WithParams(params map[string]volta.Value) Option {
	return func(q *QueryContext) { q.params = params }
}

// WithAutoSchema lets inserts into an undeclared tag or edge type create
// the schema on the fly, inferred from the first row.
func WithAutoSchema() Option {
	return func(q *QueryContext) { q.autoSchema = true }
}

// NewQueryContext builds a context with a fresh arena and no selected
// space.
func NewQueryContext(sm schema.Manager, opts ...Option) *QueryContext {
	q := &QueryContext{
		sessionID: ksuid.New(),
		queryID:   uuid.New(),
		sm:        sm,
		arena:     ast.NewExprContext(),
		varCols:   make(map[string][]ColumnDef),
		varExprs:  make(map[string]ast.Expr),
		logger:    zap.NewNop(),
		limits:    DefaultLimits(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// UseSpace resolves name through the schema manager and selects it.
func (q *QueryContext) UseSpace(name string) error {
	space, err := q.sm.GetSpace(name)
	if err != nil {
		return fmt.Errorf("use space: %w", err)
	}
	q.space = space
	q.logger.Debug("space selected",
		zap.String("space", name),
		zap.Stringer("session", q.sessionID))
	return nil
}

// Space returns the selected space, or nil when none is selected.
func (q *QueryContext) Space() *schema.Space { return q.space }

// Schema returns the metadata collaborator.
func (q *QueryContext) Schema() schema.Manager { return q.sm }

// Arena returns the query's shared expression arena.
func (q *QueryContext) Arena() *ast.ExprContext { return q.arena }

// AutoSchema reports whether schemaless inserts may create schemas.
func (q *QueryContext) AutoSchema() bool { return q.autoSchema }

// SessionID identifies the owning session.
func (q *QueryContext) SessionID() ksuid.KSUID { return q.sessionID }

// QueryID identifies this query.
func (q *QueryContext) QueryID() uuid.UUID { return q.queryID }

// Logger returns the attached logger (never nil).
func (q *QueryContext) Logger() *zap.Logger { return q.logger }

// Limits returns the validation limits in force.
func (q *QueryContext) Limits() Limits { return q.limits }

// Param resolves a client parameter.
func (q *QueryContext) Param(name string) (volta.Value, bool) {
	v, ok := q.params[name]
	return v, ok
}

// DefineVar records the output columns bound to a user-defined variable so
// later pipe stages can reference $var.column.  Redefinition replaces the
// previous binding, matching last-writer-wins script semantics.
func (q *QueryContext) DefineVar(name string, cols []ColumnDef) {
	q.varCols[name] = cols
}

// VarColumns resolves a user-defined variable to its bound columns.
func (q *QueryContext) VarColumns(name string) ([]ColumnDef, bool) {
	cols, ok := q.varCols[name]
	return cols, ok
}

// BindVarExpr associates a variable name with a defining expression; the
// cyclic-reference checker follows these bindings.
func (q *QueryContext) BindVarExpr(name string, e ast.Expr) {
	q.varExprs[name] = e
}

// VarExpr resolves a variable's defining expression.
func (q *QueryContext) VarExpr(name string) (ast.Expr, bool) {
	e, ok := q.varExprs[name]
	return e, ok
}
