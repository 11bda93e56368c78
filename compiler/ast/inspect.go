package ast

import (
	"sort"
	"strings"
)

// aggregateNames is the closed set of aggregate function names, matched
// case-insensitively.
var aggregateNames = map[string]bool{
	"count":   true,
	"sum":     true,
	"avg":     true,
	"max":     true,
	"min":     true,
	"collect": true,
	"stddev":  true,
}

// IsAggregateName reports whether name identifies an aggregate function,
// ignoring case.
func IsAggregateName(name string) bool {
	return aggregateNames[strings.ToLower(name)]
}

// IsConstant reports whether e can be evaluated without any row context.
// Lists and maps are constant iff every element is; anything touching a
// variable, parameter, or a storage property reference never is.
func IsConstant(e Expr) bool {
	constant := true
	Walk(e, func(n Expr) bool {
		switch n.(type) {
		case *Variable, *Parameter, *Label,
			*TagProp, *EdgeProp, *InputProp, *VarProp,
			*SrcProp, *DstProp, *EdgeRank, *PropExpr, *Agg:
			constant = false
			return false
		}
		return constant
	})
	return constant
}

// ContainsAggregate reports whether any aggregate call appears in e,
// either as an Agg node or as a Call whose name is an aggregate.
func ContainsAggregate(e Expr) bool {
	return Find(e, func(n Expr) bool {
		switch n := n.(type) {
		case *Agg:
			return true
		case *Call:
			return IsAggregateName(n.Name)
		}
		return false
	}) != nil
}

// Variables collects the names of all user-defined variables referenced
// anywhere in e, including variable property accesses.  The result is
// sorted and deduplicated; callers rely on this ordering.
func Variables(e Expr) []string {
	seen := make(map[string]bool)
	Walk(e, func(n Expr) bool {
		switch n := n.(type) {
		case *Variable:
			seen[n.Name] = true
		case *VarProp:
			seen[n.Var] = true
		}
		return true
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
