package semantic

import (
	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
)

// goValidator validates the GO traversal.
type goValidator struct {
	base
	stmt *ast.GoStmt
}

func newGoValidator(stmt *ast.GoStmt, qctx *QueryContext) *goValidator {
	v := &goValidator{stmt: stmt}
	v.base = newBase(qctx, StGo, false)
	return v
}

func (v *goValidator) validate() error {
	s := v.stmt
	if s.StepsFrom < 0 || s.StepsTo < s.StepsFrom {
		return semanticErrorf("invalid step range %d..%d", s.StepsFrom, s.StepsTo)
	}
	if err := v.validateFrom(s.From, s.FromVar); err != nil {
		return err
	}
	if err := v.validateOver(s.Over, s.OverAll); err != nil {
		return err
	}
	if err := v.validateWhere(s.Where); err != nil {
		return err
	}
	if len(s.Yield) == 0 {
		// The bare GO yields the destination ids.
		v.outputs = []ColumnDef{{Name: "_dst", Type: v.space().VidType}}
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

func (v *goValidator) validateFrom(vids []ast.ContextualExpr, fromVar string) error {
	if fromVar != "" {
		if fromVar == "$-" {
			return nil
		}
		if _, ok := v.qctx.VarColumns(fromVar); !ok {
			return semanticErrorf("variable $%s is not defined", fromVar)
		}
		return nil
	}
	if len(vids) == 0 {
		return semanticErrorf("FROM clause must specify at least one vertex")
	}
	for _, ce := range vids {
		e, err := v.deref(ce)
		if err != nil {
			return err
		}
		if err := validateVID(e, v.space()); err != nil {
			return err
		}
	}
	return nil
}

func (v *goValidator) validateOver(over []string, overAll bool) error {
	if overAll {
		return nil
	}
	if len(over) == 0 {
		return semanticErrorf("OVER clause must specify at least one edge")
	}
	seen := make(map[string]bool, len(over))
	for _, name := range over {
		if name == "" {
			return semanticErrorf("edge name must not be empty")
		}
		if seen[name] {
			return newError(ErrDuplicateKey, "duplicate edge %q in OVER clause", name)
		}
		seen[name] = true
		if _, err := v.requireEdge(name); err != nil {
			return err
		}
	}
	return nil
}

func (v *goValidator) validateWhere(where ast.ContextualExpr) error {
	e, err := v.checkExpr(where)
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}
	if typ := v.deduceType(e); typ != volta.TypeBool && typ != volta.TypeUnknown && typ != volta.TypeNull {
		return typeErrorf("WHERE clause requires a boolean expression, %s is %s", ast.Format(e), typ)
	}
	if ast.ContainsAggregate(e) {
		return semanticErrorf("aggregate function is not allowed in a WHERE clause")
	}
	return nil
}

// lookupValidator validates LOOKUP ON, the index scan.
type lookupValidator struct {
	base
	stmt *ast.LookupStmt
}

func newLookupValidator(stmt *ast.LookupStmt, qctx *QueryContext) *lookupValidator {
	v := &lookupValidator{stmt: stmt}
	v.base = newBase(qctx, StLookup, false)
	return v
}

func (v *lookupValidator) validate() error {
	s := v.stmt
	if s.Source == "" {
		return semanticErrorf("LOOKUP requires a tag or edge name")
	}
	if s.IsEdge {
		if _, err := v.requireEdge(s.Source); err != nil {
			return err
		}
	} else {
		if _, err := v.requireTag(s.Source); err != nil {
			return err
		}
	}
	if e, err := v.checkExpr(s.Where); err != nil {
		return err
	} else if e != nil {
		if err := v.checkFilterSchema(e); err != nil {
			return err
		}
	}
	if len(s.Yield) == 0 {
		if s.IsEdge {
			v.outputs = []ColumnDef{
				{Name: "SrcVID", Type: v.space().VidType},
				{Name: "DstVID", Type: v.space().VidType},
				{Name: "Ranking", Type: volta.TypeInt64},
			}
		} else {
			v.outputs = []ColumnDef{{Name: "VertexID", Type: v.space().VidType}}
		}
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

// checkFilterSchema rejects filter references to schemas other than the one
// being looked up.
func (v *lookupValidator) checkFilterSchema(e ast.Expr) error {
	var bad string
	ast.Walk(e, func(n ast.Expr) bool {
		switch n := n.(type) {
		case *ast.TagProp:
			if n.Tag != v.stmt.Source {
				bad = n.Tag
				return false
			}
		case *ast.EdgeProp:
			if n.Edge != v.stmt.Source {
				bad = n.Edge
				return false
			}
		}
		return true
	})
	if bad != "" {
		return semanticErrorf("filter references schema %q, but LOOKUP is on %q", bad, v.stmt.Source)
	}
	return nil
}

// fetchVerticesValidator validates FETCH PROP ON <tag> <vids>.
type fetchVerticesValidator struct {
	base
	stmt *ast.FetchVerticesStmt
}

func newFetchVerticesValidator(stmt *ast.FetchVerticesStmt, qctx *QueryContext) *fetchVerticesValidator {
	v := &fetchVerticesValidator{stmt: stmt}
	v.base = newBase(qctx, StFetchVertices, false)
	return v
}

func (v *fetchVerticesValidator) validate() error {
	s := v.stmt
	if s.Tag != "" {
		if _, err := v.requireTag(s.Tag); err != nil {
			return err
		}
	}
	if s.FromVar == "" && len(s.VIDs) == 0 {
		return semanticErrorf("FETCH requires at least one vertex id")
	}
	if s.FromVar != "" && s.FromVar != "$-" {
		if _, ok := v.qctx.VarColumns(s.FromVar); !ok {
			return semanticErrorf("variable $%s is not defined", s.FromVar)
		}
	}
	for _, ce := range s.VIDs {
		e, err := v.deref(ce)
		if err != nil {
			return err
		}
		if err := validateVID(e, v.space()); err != nil {
			return err
		}
	}
	if len(s.Yield) == 0 {
		v.outputs = []ColumnDef{{Name: "vertices_", Type: volta.TypeVertex}}
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

// fetchEdgesValidator validates FETCH PROP ON <edge> <src>-><dst>@<rank>.
type fetchEdgesValidator struct {
	base
	stmt *ast.FetchEdgesStmt
}

func newFetchEdgesValidator(stmt *ast.FetchEdgesStmt, qctx *QueryContext) *fetchEdgesValidator {
	v := &fetchEdgesValidator{stmt: stmt}
	v.base = newBase(qctx, StFetchEdges, false)
	return v
}

func (v *fetchEdgesValidator) validate() error {
	s := v.stmt
	if s.Edge == "" {
		return semanticErrorf("FETCH requires an edge name")
	}
	if _, err := v.requireEdge(s.Edge); err != nil {
		return err
	}
	if len(s.Keys) == 0 {
		return semanticErrorf("FETCH requires at least one edge key")
	}
	for _, key := range s.Keys {
		if err := v.validateEdgeKey(key); err != nil {
			return err
		}
	}
	if len(s.Yield) == 0 {
		v.outputs = []ColumnDef{{Name: "edges_", Type: volta.TypeEdge}}
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

func (b *base) validateEdgeKey(key ast.EdgeKey) error {
	src, err := b.deref(key.Src)
	if err != nil {
		return err
	}
	if err := validateVID(src, b.space()); err != nil {
		return err
	}
	dst, err := b.deref(key.Dst)
	if err != nil {
		return err
	}
	if err := validateVID(dst, b.space()); err != nil {
		return err
	}
	if key.Rank.Valid() {
		rank, err := b.deref(key.Rank)
		if err != nil {
			return err
		}
		switch rank := rank.(type) {
		case *ast.Variable:
		case *ast.Literal:
			if !rank.Value.Type.IsIntFamily() {
				return typeErrorf("edge rank must be an integer, got %s", rank.Value.Type)
			}
		default:
			return semanticErrorf("edge rank must be a literal or variable, got %s", ast.Format(rank))
		}
	}
	return nil
}

// matchValidator validates the Cypher-style MATCH statement.
type matchValidator struct {
	base
	stmt    *ast.MatchStmt
	aliases map[string]bool
}

func newMatchValidator(stmt *ast.MatchStmt, qctx *QueryContext) *matchValidator {
	v := &matchValidator{stmt: stmt, aliases: make(map[string]bool)}
	v.base = newBase(qctx, StMatch, false)
	return v
}

func (v *matchValidator) validate() error {
	s := v.stmt
	if len(s.Patterns) == 0 {
		return semanticErrorf("MATCH requires at least one pattern")
	}
	for _, pattern := range s.Patterns {
		if err := v.validatePattern(pattern); err != nil {
			return err
		}
	}
	if _, err := v.checkExpr(s.Where); err != nil {
		return err
	}
	if len(s.Return) == 0 {
		return semanticErrorf("RETURN clause must not be empty")
	}
	if err := v.yieldOutputs(s.Return); err != nil {
		return err
	}
	for _, factor := range s.Order {
		if err := v.validateOrderFactor(factor); err != nil {
			return err
		}
	}
	if s.Skip < 0 {
		return semanticErrorf("SKIP must not be negative, got %d", s.Skip)
	}
	if s.Limit < -1 {
		return semanticErrorf("LIMIT must not be negative, got %d", s.Limit)
	}
	return nil
}

func (v *matchValidator) validatePattern(pattern ast.PathPattern) error {
	if len(pattern.Nodes) != len(pattern.Edges)+1 {
		return semanticErrorf("pattern must alternate vertices and edges")
	}
	if pattern.Var != "" {
		if err := v.defineAlias(pattern.Var); err != nil {
			return err
		}
	}
	for _, node := range pattern.Nodes {
		if node.Var != "" {
			if err := v.defineAlias(node.Var); err != nil {
				return err
			}
		}
		for _, label := range node.Labels {
			if _, err := v.requireTag(label); err != nil {
				return err
			}
		}
		for _, prop := range node.Props {
			if prop.Value == nil || !ast.IsConstant(prop.Value) {
				return semanticErrorf("property %q of a pattern must be a constant", prop.Key)
			}
		}
	}
	for _, edge := range pattern.Edges {
		if edge.Var != "" {
			if err := v.defineAlias(edge.Var); err != nil {
				return err
			}
		}
		for _, typ := range edge.Types {
			if _, err := v.requireEdge(typ); err != nil {
				return err
			}
		}
		if edge.MaxHops != -1 && edge.MaxHops < edge.MinHops {
			return semanticErrorf("invalid hop range %d..%d", edge.MinHops, edge.MaxHops)
		}
	}
	return nil
}

func (v *matchValidator) defineAlias(name string) error {
	if v.aliases[name] {
		return newError(ErrDuplicateKey, "alias %q is defined more than once", name)
	}
	v.aliases[name] = true
	return nil
}

func (v *matchValidator) validateOrderFactor(factor ast.OrderFactor) error {
	e, err := v.checkExpr(factor.Expr)
	if err != nil {
		return err
	}
	if label, ok := e.(*ast.Label); ok {
		for _, col := range v.outputs {
			if col.Name == label.Name {
				return nil
			}
		}
		return semanticErrorf("ORDER BY column %q is not part of the RETURN clause", label.Name)
	}
	return nil
}

// yieldValidator validates the standalone YIELD statement.
type yieldValidator struct {
	base
	stmt *ast.YieldStmt
}

func newYieldValidator(stmt *ast.YieldStmt, qctx *QueryContext) *yieldValidator {
	v := &yieldValidator{stmt: stmt}
	v.base = newBase(qctx, StYield, false)
	return v
}

func (v *yieldValidator) validate() error {
	if _, err := v.checkExpr(v.stmt.Where); err != nil {
		return err
	}
	return v.yieldOutputs(v.stmt.Columns)
}

// orderByValidator validates the ORDER BY pipe stage; it only reorders
// rows, so its outputs are its inputs.
type orderByValidator struct {
	base
	stmt *ast.OrderByStmt
}

func newOrderByValidator(stmt *ast.OrderByStmt, qctx *QueryContext) *orderByValidator {
	v := &orderByValidator{stmt: stmt}
	v.base = newBase(qctx, StOrderBy, false)
	return v
}

func (v *orderByValidator) validate() error {
	if len(v.stmt.Factors) == 0 {
		return semanticErrorf("ORDER BY requires at least one column")
	}
	for _, factor := range v.stmt.Factors {
		e, err := v.checkExpr(factor.Expr)
		if err != nil {
			return err
		}
		prop, ok := e.(*ast.InputProp)
		if !ok {
			return semanticErrorf("ORDER BY column must reference an input column, got %s", ast.Format(e))
		}
		if len(v.inputs) > 0 && !hasColumn(v.inputs, prop.Prop) {
			return semanticErrorf("ORDER BY column $-.%s is not an input column", prop.Prop)
		}
	}
	v.outputs = v.inputs
	return nil
}

// limitValidator validates the LIMIT pipe stage; outputs pass through.
type limitValidator struct {
	base
	stmt *ast.LimitStmt
}

func newLimitValidator(stmt *ast.LimitStmt, qctx *QueryContext) *limitValidator {
	v := &limitValidator{stmt: stmt}
	v.base = newBase(qctx, StLimit, false)
	return v
}

func (v *limitValidator) validate() error {
	if v.stmt.Offset < 0 {
		return semanticErrorf("LIMIT offset must not be negative, got %d", v.stmt.Offset)
	}
	if v.stmt.Count < 0 {
		return semanticErrorf("LIMIT count must not be negative, got %d", v.stmt.Count)
	}
	v.outputs = v.inputs
	return nil
}

// groupByValidator enforces the aggregate rules: every non-aggregate
// output must appear among the grouping keys, and no key may aggregate.
type groupByValidator struct {
	base
	stmt *ast.GroupByStmt
}

func newGroupByValidator(stmt *ast.GroupByStmt, qctx *QueryContext) *groupByValidator {
	v := &groupByValidator{stmt: stmt}
	v.base = newBase(qctx, StGroupBy, false)
	return v
}

func (v *groupByValidator) validate() error {
	s := v.stmt
	if len(s.Keys) == 0 {
		return semanticErrorf("GROUP BY requires at least one key")
	}
	keys := make([]ast.Expr, 0, len(s.Keys))
	for _, ce := range s.Keys {
		e, err := v.checkExpr(ce)
		if err != nil {
			return err
		}
		if ast.ContainsAggregate(e) {
			return semanticErrorf("aggregate function %s is not allowed in a GROUP BY key", ast.Format(e))
		}
		keys = append(keys, e)
	}
	if len(s.Yield) == 0 {
		return semanticErrorf("GROUP BY requires a YIELD clause")
	}
	for _, col := range s.Yield {
		e, err := v.deref(col.Expr)
		if err != nil {
			return err
		}
		if ast.ContainsAggregate(e) {
			continue
		}
		if !matchesAnyKey(e, keys) {
			return semanticErrorf("yield column %s must appear in the GROUP BY keys", ast.Format(e))
		}
	}
	return v.yieldOutputs(s.Yield)
}

func matchesAnyKey(e ast.Expr, keys []ast.Expr) bool {
	for _, key := range keys {
		if ast.Equal(e, key) {
			return true
		}
	}
	return false
}

// findPathValidator validates FIND PATH.
type findPathValidator struct {
	base
	stmt *ast.FindPathStmt
}

func newFindPathValidator(stmt *ast.FindPathStmt, qctx *QueryContext) *findPathValidator {
	v := &findPathValidator{stmt: stmt}
	v.base = newBase(qctx, StFindPath, false)
	return v
}

func (v *findPathValidator) validate() error {
	s := v.stmt
	if len(s.From) == 0 {
		return semanticErrorf("FROM clause must specify at least one vertex")
	}
	if len(s.To) == 0 {
		return semanticErrorf("TO clause must specify at least one vertex")
	}
	for _, group := range [][]ast.ContextualExpr{s.From, s.To} {
		for _, ce := range group {
			e, err := v.deref(ce)
			if err != nil {
				return err
			}
			if err := validateVID(e, v.space()); err != nil {
				return err
			}
		}
	}
	if !s.OverAll {
		for _, name := range s.Over {
			if _, err := v.requireEdge(name); err != nil {
				return err
			}
		}
	}
	if s.Steps <= 0 {
		return semanticErrorf("UPTO steps must be positive, got %d", s.Steps)
	}
	v.outputs = []ColumnDef{{Name: "path", Type: volta.TypePath}}
	return nil
}

// subgraphValidator validates GET SUBGRAPH.
type subgraphValidator struct {
	base
	stmt *ast.SubgraphStmt
}

func newSubgraphValidator(stmt *ast.SubgraphStmt, qctx *QueryContext) *subgraphValidator {
	v := &subgraphValidator{stmt: stmt}
	v.base = newBase(qctx, StSubgraph, false)
	return v
}

func (v *subgraphValidator) validate() error {
	s := v.stmt
	if len(s.From) == 0 {
		return semanticErrorf("FROM clause must specify at least one vertex")
	}
	for _, ce := range s.From {
		e, err := v.deref(ce)
		if err != nil {
			return err
		}
		if err := validateVID(e, v.space()); err != nil {
			return err
		}
	}
	if s.Steps < 0 {
		return semanticErrorf("steps must not be negative, got %d", s.Steps)
	}
	if !s.BothAll {
		for _, group := range [][]string{s.InEdges, s.OutEdges} {
			for _, name := range group {
				if _, err := v.requireEdge(name); err != nil {
					return err
				}
			}
		}
	}
	if len(s.Yield) == 0 {
		v.outputs = []ColumnDef{
			{Name: "_vertices", Type: volta.TypeList},
			{Name: "_edges", Type: volta.TypeList},
		}
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

func hasColumn(cols []ColumnDef, name string) bool {
	for _, col := range cols {
		if col.Name == name {
			return true
		}
	}
	return false
}
