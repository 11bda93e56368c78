// Package ast defines the statement and expression tree produced by the
// parser and consumed by the semantic analyzer.  Expression nodes are
// immutable: traversal and transformation build new trees rather than
// editing in place.  Statements reference expressions through ContextualExpr
// handles into a per-query arena (see arena.go) so that handle copies stay
// O(1) no matter how large the underlying tree is.
package ast

import "github.com/voltadb/volta"

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// The type definitions of all entities that implement the Expr interface.
type (
	// A Literal holds a constant written directly in the query text.
	Literal struct {
		Value volta.Value
	}
	// A Variable references a user-defined variable ($var).
	Variable struct {
		Name string
	}
	// A Parameter references a client-supplied parameter bound at
	// execution time.
	Parameter struct {
		Name string
	}
	// A UnaryExpr is any expression of the form "op operand", including
	// negation ("-") and logical not ("!").
	UnaryExpr struct {
		Op      string
		Operand Expr
	}
	// A BinaryExpr is any expression of the form "lhs op rhs", including
	// arithmetic (+, -, *, /, %), comparisons (==, !=, <, <=, >, >=),
	// logical operators (and, or, xor), containment (in), and string
	// predicates (like, starts with, ends with, contains).
	BinaryExpr struct {
		Op  string
		LHS Expr
		RHS Expr
	}
	// A Call invokes a built-in scalar function.
	Call struct {
		Name string
		Args []Expr
	}
	// An Agg invokes an aggregate function over grouped input.  Arg is nil
	// for count(*).
	Agg struct {
		Name     string
		Distinct bool
		Arg      Expr
	}
	ListExpr struct {
		Elems []Expr
	}
	MapExpr struct {
		Entries []MapEntry
	}
	CaseExpr struct {
		// Expr is the comparison operand of a simple CASE; nil for a
		// searched CASE whose When conditions are booleans.
		Expr  Expr
		Whens []When
		Else  Expr
	}
	CastExpr struct {
		Type volta.ValueType
		Expr Expr
	}
	// A SubscriptExpr indexes a list or map: expr[index].
	SubscriptExpr struct {
		Expr  Expr
		Index Expr
	}
	// A RangeExpr slices a list: expr[start..end].  Start and End may be
	// nil for open ends.
	RangeExpr struct {
		Expr  Expr
		Start Expr
		End   Expr
	}
	// A PathBuild assembles a path value from alternating vertex and edge
	// expressions.
	PathBuild struct {
		Elems []Expr
	}
	// A Label is a bare identifier whose meaning is resolved during
	// validation (a tag name, an alias, or a column reference).
	Label struct {
		Name string
	}
	// A ListComprehension is [v IN coll WHERE filter | mapping].  Filter
	// and Mapping may be nil.
	ListComprehension struct {
		Var        string
		Collection Expr
		Filter     Expr
		Mapping    Expr
	}
	// A Reduce is reduce(acc = init, v IN coll | body).
	Reduce struct {
		Accum      string
		Init       Expr
		Var        string
		Collection Expr
		Body       Expr
	}
	// A PropExpr accesses a property of a vertex, edge, or map value:
	// expr.prop.
	PropExpr struct {
		Expr Expr
		Prop string
	}
	// A TagProp references a tag property of the vertex at hand:
	// tag.prop in filter context.
	TagProp struct {
		Tag  string
		Prop string
	}
	// An EdgeProp references a property of the edge being traversed:
	// edge.prop.
	EdgeProp struct {
		Edge string
		Prop string
	}
	// An InputProp references a column piped in from the previous
	// statement: $-.prop.
	InputProp struct {
		Prop string
	}
	// A VarProp references a column of a user-defined variable: $var.prop.
	VarProp struct {
		Var  string
		Prop string
	}
	// A SrcProp references a tag property of the source vertex of the edge
	// being traversed: $^.tag.prop.
	SrcProp struct {
		Tag  string
		Prop string
	}
	// A DstProp references a tag property of the destination vertex:
	// $$.tag.prop.
	DstProp struct {
		Tag  string
		Prop string
	}
	// An EdgeRank references the rank of the edge being traversed.
	EdgeRank struct {
		Edge string
	}
)

type MapEntry struct {
	Key   string
	Value Expr
}

type When struct {
	Cond Expr
	Then Expr
}

func (*Literal) exprNode()           {}
func (*Variable) exprNode()          {}
func (*Parameter) exprNode()         {}
func (*UnaryExpr) exprNode()         {}
func (*BinaryExpr) exprNode()        {}
func (*Call) exprNode()              {}
func (*Agg) exprNode()               {}
func (*ListExpr) exprNode()          {}
func (*MapExpr) exprNode()           {}
func (*CaseExpr) exprNode()          {}
func (*CastExpr) exprNode()          {}
func (*SubscriptExpr) exprNode()     {}
func (*RangeExpr) exprNode()         {}
func (*PathBuild) exprNode()         {}
func (*Label) exprNode()             {}
func (*ListComprehension) exprNode() {}
func (*Reduce) exprNode()            {}
func (*PropExpr) exprNode()          {}
func (*TagProp) exprNode()           {}
func (*EdgeProp) exprNode()          {}
func (*InputProp) exprNode()         {}
func (*VarProp) exprNode()           {}
func (*SrcProp) exprNode()           {}
func (*DstProp) exprNode()           {}
func (*EdgeRank) exprNode()          {}

// NewLiteral is shorthand for wrapping a constant.
func NewLiteral(v volta.Value) *Literal {
	return &Literal{Value: v}
}

// NewBinaryExpr assembles a binary expression node.
func NewBinaryExpr(op string, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
}

// NewUnaryExpr assembles a unary expression node.
func NewUnaryExpr(op string, operand Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand}
}
