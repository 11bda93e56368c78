package ast

import (
	"fmt"
	"strings"
)

// Format renders e as query text.  The rendering is canonical rather than a
// reproduction of the original source: every binary expression is
// parenthesized, so the output is unambiguous without precedence rules.
// Validators use it to quote offending expressions in error messages.
func Format(e Expr) string {
	var b strings.Builder
	formatExpr(&b, e)
	return b.String()
}

func formatExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		return
	case *Literal:
		b.WriteString(e.Value.String())
	case *Variable:
		b.WriteByte('$')
		b.WriteString(e.Name)
	case *Parameter:
		b.WriteByte('$')
		b.WriteString(e.Name)
	case *UnaryExpr:
		b.WriteByte('(')
		b.WriteString(e.Op)
		formatExpr(b, e.Operand)
		b.WriteByte(')')
	case *BinaryExpr:
		b.WriteByte('(')
		formatExpr(b, e.LHS)
		b.WriteByte(' ')
		b.WriteString(e.Op)
		b.WriteByte(' ')
		formatExpr(b, e.RHS)
		b.WriteByte(')')
	case *Call:
		b.WriteString(e.Name)
		b.WriteByte('(')
		formatExprs(b, e.Args)
		b.WriteByte(')')
	case *Agg:
		b.WriteString(e.Name)
		b.WriteByte('(')
		if e.Distinct {
			b.WriteString("DISTINCT ")
		}
		if e.Arg == nil {
			b.WriteByte('*')
		} else {
			formatExpr(b, e.Arg)
		}
		b.WriteByte(')')
	case *ListExpr:
		b.WriteByte('[')
		formatExprs(b, e.Elems)
		b.WriteByte(']')
	case *MapExpr:
		b.WriteByte('{')
		for i, entry := range e.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(entry.Key)
			b.WriteString(": ")
			formatExpr(b, entry.Value)
		}
		b.WriteByte('}')
	case *CaseExpr:
		b.WriteString("CASE")
		if e.Expr != nil {
			b.WriteByte(' ')
			formatExpr(b, e.Expr)
		}
		for _, w := range e.Whens {
			b.WriteString(" WHEN ")
			formatExpr(b, w.Cond)
			b.WriteString(" THEN ")
			formatExpr(b, w.Then)
		}
		if e.Else != nil {
			b.WriteString(" ELSE ")
			formatExpr(b, e.Else)
		}
		b.WriteString(" END")
	case *CastExpr:
		fmt.Fprintf(b, "(%s)", e.Type)
		formatExpr(b, e.Expr)
	case *SubscriptExpr:
		formatExpr(b, e.Expr)
		b.WriteByte('[')
		formatExpr(b, e.Index)
		b.WriteByte(']')
	case *RangeExpr:
		formatExpr(b, e.Expr)
		b.WriteByte('[')
		formatExpr(b, e.Start)
		b.WriteString("..")
		formatExpr(b, e.End)
		b.WriteByte(']')
	case *PathBuild:
		for i, elem := range e.Elems {
			if i > 0 {
				b.WriteString(" -- ")
			}
			formatExpr(b, elem)
		}
	case *Label:
		b.WriteString(e.Name)
	case *ListComprehension:
		b.WriteByte('[')
		b.WriteString(e.Var)
		b.WriteString(" IN ")
		formatExpr(b, e.Collection)
		if e.Filter != nil {
			b.WriteString(" WHERE ")
			formatExpr(b, e.Filter)
		}
		if e.Mapping != nil {
			b.WriteString(" | ")
			formatExpr(b, e.Mapping)
		}
		b.WriteByte(']')
	case *Reduce:
		fmt.Fprintf(b, "reduce(%s = ", e.Accum)
		formatExpr(b, e.Init)
		fmt.Fprintf(b, ", %s IN ", e.Var)
		formatExpr(b, e.Collection)
		b.WriteString(" | ")
		formatExpr(b, e.Body)
		b.WriteByte(')')
	case *PropExpr:
		formatExpr(b, e.Expr)
		b.WriteByte('.')
		b.WriteString(e.Prop)
	case *TagProp:
		fmt.Fprintf(b, "%s.%s", e.Tag, e.Prop)
	case *EdgeProp:
		fmt.Fprintf(b, "%s.%s", e.Edge, e.Prop)
	case *InputProp:
		fmt.Fprintf(b, "$-.%s", e.Prop)
	case *VarProp:
		fmt.Fprintf(b, "$%s.%s", e.Var, e.Prop)
	case *SrcProp:
		fmt.Fprintf(b, "$^.%s.%s", e.Tag, e.Prop)
	case *DstProp:
		fmt.Fprintf(b, "$$.%s.%s", e.Tag, e.Prop)
	case *EdgeRank:
		fmt.Fprintf(b, "rank(%s)", e.Edge)
	default:
		fmt.Fprintf(b, "%T", e)
	}
}

func formatExprs(b *strings.Builder, exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		formatExpr(b, e)
	}
}
