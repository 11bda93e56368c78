package ast

import "github.com/voltadb/volta"

// ExprID identifies one registered expression within its owning ExprContext.
// IDs are assigned sequentially, never reused, and are meaningless outside
// the arena that issued them.
type ExprID int

// Meta wraps one registered expression together with facts deduced about it
// during validation.  A Meta is built once at registration; later passes
// that need a changed expression register a new entry instead of editing
// this one.
type Meta struct {
	expr Expr
	typ  volta.ValueType
}

// NewMeta wraps expr with no deduced type yet.
func NewMeta(expr Expr) *Meta {
	return &Meta{expr: expr, typ: volta.TypeUnknown}
}

// NewTypedMeta wraps expr with a type already deduced by the caller.
func NewTypedMeta(expr Expr, typ volta.ValueType) *Meta {
	return &Meta{expr: expr, typ: typ}
}

// Expr returns the wrapped expression tree.
func (m *Meta) Expr() Expr { return m.expr }

// DeducedType returns the cached type, or TypeUnknown when none was deduced.
func (m *Meta) DeducedType() volta.ValueType { return m.typ }

// An ExprContext owns every expression allocated while compiling one query.
// It manages a flat, append-only table of Meta entries so that each handle
// resolves to exactly one entry and handle copies never clone trees.  One
// arena is created per query and dropped with it; registration is the only
// mutation, and validation is single-threaded per query, so no locking is
// needed.
type ExprContext struct {
	metas []*Meta
}

// NewExprContext returns an empty arena.
func NewExprContext() *ExprContext {
	return &ExprContext{}
}

// Register appends meta and returns its fresh id.  There is no update or
// delete: entries live until the whole arena is dropped at end of query.
func (c *ExprContext) Register(meta *Meta) ExprID {
	c.metas = append(c.metas, meta)
	return ExprID(len(c.metas) - 1)
}

// Lookup resolves id without mutating the arena.  An id from a different
// arena resolves to false, not a panic; callers map that to a semantic
// error.
func (c *ExprContext) Lookup(id ExprID) (*Meta, bool) {
	if id < 0 || int(id) >= len(c.metas) {
		return nil, false
	}
	return c.metas[int(id)], true
}

// Len returns the number of registered expressions.
func (c *ExprContext) Len() int { return len(c.metas) }

// A ContextualExpr pairs an ExprID with its owning arena.  It is the unit
// statements and validators actually pass around: copying one is O(1) and
// two handles with the same id from the same arena denote the same
// expression.  Construction does not check that the id is legal for the
// arena; validity is established at first dereference.
type ContextualExpr struct {
	ID  ExprID
	Ctx *ExprContext
}

// NewContextualExpr binds id to arena without validation.
func NewContextualExpr(id ExprID, arena *ExprContext) ContextualExpr {
	return ContextualExpr{ID: id, Ctx: arena}
}

// Register is shorthand for registering expr in arena and returning the
// handle in one step.
func Register(arena *ExprContext, expr Expr) ContextualExpr {
	return NewContextualExpr(arena.Register(NewMeta(expr)), arena)
}

// Valid reports whether the handle is bound to an arena at all.  A zero
// ContextualExpr stands for "no expression" (e.g., an absent WHERE clause).
func (ce ContextualExpr) Valid() bool { return ce.Ctx != nil }

// Meta resolves the handle to its arena entry.
func (ce ContextualExpr) Meta() (*Meta, bool) {
	if ce.Ctx == nil {
		return nil, false
	}
	return ce.Ctx.Lookup(ce.ID)
}

// Expr resolves the handle to the underlying expression tree, or nil if the
// handle is unbound or stale.
func (ce ContextualExpr) Expr() Expr {
	meta, ok := ce.Meta()
	if !ok {
		return nil
	}
	return meta.Expr()
}
