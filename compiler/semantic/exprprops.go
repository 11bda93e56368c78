package semantic

import (
	"sort"

	"github.com/voltadb/volta/compiler/ast"
)

// ExprProps aggregates which storage properties the expressions of one
// statement reference, bucketed by accessor kind.  The planner uses it for
// dependency analysis and column pruning.
type ExprProps struct {
	tagProps   map[string]map[string]bool
	edgeProps  map[string]map[string]bool
	srcProps   map[string]map[string]bool
	dstProps   map[string]map[string]bool
	varProps   map[string]map[string]bool
	inputProps map[string]bool
}

func NewExprProps() *ExprProps {
	return &ExprProps{
		tagProps:   make(map[string]map[string]bool),
		edgeProps:  make(map[string]map[string]bool),
		srcProps:   make(map[string]map[string]bool),
		dstProps:   make(map[string]map[string]bool),
		varProps:   make(map[string]map[string]bool),
		inputProps: make(map[string]bool),
	}
}

func addProp(m map[string]map[string]bool, owner, prop string) {
	props, ok := m[owner]
	if !ok {
		props = make(map[string]bool)
		m[owner] = props
	}
	props[prop] = true
}

// Collect walks e and records every property accessor found.
func (p *ExprProps) Collect(e ast.Expr) {
	ast.Walk(e, func(n ast.Expr) bool {
		switch n := n.(type) {
		case *ast.TagProp:
			addProp(p.tagProps, n.Tag, n.Prop)
		case *ast.EdgeProp:
			addProp(p.edgeProps, n.Edge, n.Prop)
		case *ast.SrcProp:
			addProp(p.srcProps, n.Tag, n.Prop)
		case *ast.DstProp:
			addProp(p.dstProps, n.Tag, n.Prop)
		case *ast.VarProp:
			addProp(p.varProps, n.Var, n.Prop)
		case *ast.InputProp:
			p.inputProps[n.Prop] = true
		}
		return true
	})
}

// Merge folds other into p.
func (p *ExprProps) Merge(other *ExprProps) {
	if other == nil {
		return
	}
	mergeProps(p.tagProps, other.tagProps)
	mergeProps(p.edgeProps, other.edgeProps)
	mergeProps(p.srcProps, other.srcProps)
	mergeProps(p.dstProps, other.dstProps)
	mergeProps(p.varProps, other.varProps)
	for prop := range other.inputProps {
		p.inputProps[prop] = true
	}
}

func mergeProps(dst, src map[string]map[string]bool) {
	for owner, props := range src {
		for prop := range props {
			addProp(dst, owner, prop)
		}
	}
}

// TagProps returns the referenced properties of one tag, sorted.
func (p *ExprProps) TagProps(tag string) []string { return sortedKeys(p.tagProps[tag]) }

// EdgeProps returns the referenced properties of one edge type, sorted.
func (p *ExprProps) EdgeProps(edge string) []string { return sortedKeys(p.edgeProps[edge]) }

// SrcTagProps returns the referenced source-vertex properties of one tag.
func (p *ExprProps) SrcTagProps(tag string) []string { return sortedKeys(p.srcProps[tag]) }

// DstTagProps returns the referenced destination-vertex properties of one tag.
func (p *ExprProps) DstTagProps(tag string) []string { return sortedKeys(p.dstProps[tag]) }

// VarProps returns the referenced columns of one user-defined variable.
func (p *ExprProps) VarProps(v string) []string { return sortedKeys(p.varProps[v]) }

// InputProps returns the referenced pipe-input columns, sorted.
func (p *ExprProps) InputProps() []string { return sortedKeys(p.inputProps) }

// Tags returns every tag referenced through any accessor, sorted.
func (p *ExprProps) Tags() []string {
	seen := make(map[string]bool)
	for tag := range p.tagProps {
		seen[tag] = true
	}
	for tag := range p.srcProps {
		seen[tag] = true
	}
	for tag := range p.dstProps {
		seen[tag] = true
	}
	return sortedKeys(seen)
}

// Edges returns every edge type referenced, sorted.
func (p *ExprProps) Edges() []string {
	seen := make(map[string]bool)
	for edge := range p.edgeProps {
		seen[edge] = true
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
