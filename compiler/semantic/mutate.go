package semantic

import (
	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
)

// insertVerticesValidator validates INSERT VERTEX.  Each row's value list
// spans the property lists of every tag named by the statement, in order.
type insertVerticesValidator struct {
	base
	stmt *ast.InsertVerticesStmt
}

func newInsertVerticesValidator(stmt *ast.InsertVerticesStmt, qctx *QueryContext) *insertVerticesValidator {
	v := &insertVerticesValidator{stmt: stmt}
	v.base = newBase(qctx, StInsertVertices, false)
	return v
}

func (v *insertVerticesValidator) validate() error {
	s := v.stmt
	if len(s.Tags) == 0 {
		return semanticErrorf("INSERT VERTEX requires at least one tag")
	}
	if len(s.Rows) == 0 {
		return semanticErrorf("INSERT VERTEX requires at least one row")
	}
	if v.qctx.AutoSchema() {
		if err := v.ensureTagSchemas(); err != nil {
			return err
		}
	}
	var schemas []*schema.Tag
	total := 0
	seenTags := make(map[string]bool, len(s.Tags))
	for _, item := range s.Tags {
		if seenTags[item.Name] {
			return newError(ErrDuplicateKey, "duplicate tag %q", item.Name)
		}
		seenTags[item.Name] = true
		tag, err := v.requireTag(item.Name)
		if err != nil {
			return err
		}
		seenProps := make(map[string]bool, len(item.Props))
		for _, name := range item.Props {
			if seenProps[name] {
				return newError(ErrDuplicateKey, "duplicate property %q of tag %q", name, item.Name)
			}
			seenProps[name] = true
			if tag.Prop(name) == nil {
				return semanticErrorf("property %q not found in tag %q", name, item.Name)
			}
		}
		schemas = append(schemas, tag)
		total += len(item.Props)
	}
	for _, row := range s.Rows {
		if err := v.validateRow(row, schemas, total); err != nil {
			return err
		}
	}
	return nil
}

func (v *insertVerticesValidator) validateRow(row ast.VertexRow, schemas []*schema.Tag, total int) error {
	vid, err := v.deref(row.VID)
	if err != nil {
		return err
	}
	if err := validateVID(vid, v.space()); err != nil {
		return err
	}
	if len(row.Values) != total {
		return semanticErrorf("wrong number of values, expected %d but got %d", total, len(row.Values))
	}
	values, err := v.evalRow(row.Values)
	if err != nil {
		return err
	}
	offset := 0
	for i, item := range v.stmt.Tags {
		tag := schemas[i]
		slice := values[offset : offset+len(item.Props)]
		offset += len(item.Props)
		for j, name := range item.Props {
			prop := tag.Prop(name)
			if !TypeCompatible(prop.Type, slice[j].Type) {
				return typeErrorf("property %q of tag %q expects %s, got %s",
					name, item.Name, prop.Type, slice[j].Type)
			}
		}
		if _, err := fillDefaults(tag.Props, item.Props, slice); err != nil {
			return err
		}
	}
	return nil
}

// ensureTagSchemas creates any tag the statement names that does not exist
// yet, inferring its properties from the first row.  Rows the main pass
// would reject are skipped so its errors stay authoritative.
func (v *insertVerticesValidator) ensureTagSchemas() error {
	row := v.stmt.Rows[0]
	total := 0
	for _, item := range v.stmt.Tags {
		total += len(item.Props)
	}
	if len(row.Values) != total {
		return nil
	}
	values, err := v.evalRow(row.Values)
	if err != nil {
		return nil
	}
	offset := 0
	for _, item := range v.stmt.Tags {
		slice := values[offset : offset+len(item.Props)]
		offset += len(item.Props)
		if err := EnsureSchema(v.qctx.Schema(), v.space().Name, item.Name, false, item.Props, slice); err != nil {
			return asError(err)
		}
	}
	return nil
}

// evalRow folds each value expression, requiring constants.
func (b *base) evalRow(exprs []ast.ContextualExpr) ([]volta.Value, error) {
	values := make([]volta.Value, 0, len(exprs))
	for _, ce := range exprs {
		e, err := b.checkExpr(ce)
		if err != nil {
			return nil, err
		}
		val, err := EvalConst(e)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// insertEdgesValidator validates INSERT EDGE.
type insertEdgesValidator struct {
	base
	stmt *ast.InsertEdgesStmt
}

func newInsertEdgesValidator(stmt *ast.InsertEdgesStmt, qctx *QueryContext) *insertEdgesValidator {
	v := &insertEdgesValidator{stmt: stmt}
	v.base = newBase(qctx, StInsertEdges, false)
	return v
}

func (v *insertEdgesValidator) validate() error {
	s := v.stmt
	if v.qctx.AutoSchema() && len(s.Rows) > 0 {
		if err := v.ensureEdgeSchema(); err != nil {
			return err
		}
	}
	edge, err := v.requireEdge(s.Edge)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.Props))
	for _, name := range s.Props {
		if seen[name] {
			return newError(ErrDuplicateKey, "duplicate property %q of edge %q", name, s.Edge)
		}
		seen[name] = true
		if edge.Prop(name) == nil {
			return semanticErrorf("property %q not found in edge %q", name, s.Edge)
		}
	}
	if len(s.Rows) == 0 {
		return semanticErrorf("INSERT EDGE requires at least one row")
	}
	for _, row := range s.Rows {
		if err := v.validateEdgeKey(row.Key); err != nil {
			return err
		}
		if len(row.Values) != len(s.Props) {
			return semanticErrorf("wrong number of values, expected %d but got %d",
				len(s.Props), len(row.Values))
		}
		values, err := v.evalRow(row.Values)
		if err != nil {
			return err
		}
		for j, name := range s.Props {
			prop := edge.Prop(name)
			if !TypeCompatible(prop.Type, values[j].Type) {
				return typeErrorf("property %q of edge %q expects %s, got %s",
					name, s.Edge, prop.Type, values[j].Type)
			}
		}
		if _, err := fillDefaults(edge.Props, s.Props, values); err != nil {
			return err
		}
	}
	return nil
}

// ensureEdgeSchema is the edge counterpart of ensureTagSchemas.
func (v *insertEdgesValidator) ensureEdgeSchema() error {
	row := v.stmt.Rows[0]
	if len(row.Values) != len(v.stmt.Props) {
		return nil
	}
	values, err := v.evalRow(row.Values)
	if err != nil {
		return nil
	}
	if err := EnsureSchema(v.qctx.Schema(), v.space().Name, v.stmt.Edge, true, v.stmt.Props, values); err != nil {
		return asError(err)
	}
	return nil
}

// deleteVerticesValidator validates DELETE VERTEX.
type deleteVerticesValidator struct {
	base
	stmt *ast.DeleteVerticesStmt
}

func newDeleteVerticesValidator(stmt *ast.DeleteVerticesStmt, qctx *QueryContext) *deleteVerticesValidator {
	v := &deleteVerticesValidator{stmt: stmt}
	v.base = newBase(qctx, StDeleteVertices, false)
	return v
}

func (v *deleteVerticesValidator) validate() error {
	if len(v.stmt.VIDs) == 0 {
		return semanticErrorf("DELETE VERTICES must specify at least one vertex")
	}
	for _, ce := range v.stmt.VIDs {
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

// deleteEdgesValidator validates DELETE EDGE.
type deleteEdgesValidator struct {
	base
	stmt *ast.DeleteEdgesStmt
}

func newDeleteEdgesValidator(stmt *ast.DeleteEdgesStmt, qctx *QueryContext) *deleteEdgesValidator {
	v := &deleteEdgesValidator{stmt: stmt}
	v.base = newBase(qctx, StDeleteEdges, false)
	return v
}

func (v *deleteEdgesValidator) validate() error {
	s := v.stmt
	if _, err := v.requireEdge(s.Edge); err != nil {
		return err
	}
	if len(s.Keys) == 0 {
		return semanticErrorf("DELETE EDGE must specify at least one edge key")
	}
	for _, key := range s.Keys {
		if err := v.validateEdgeKey(key); err != nil {
			return err
		}
	}
	return nil
}

// deleteTagsValidator validates DELETE TAG, which removes tag data from
// vertices without deleting the vertices themselves.
type deleteTagsValidator struct {
	base
	stmt *ast.DeleteTagsStmt
}

func newDeleteTagsValidator(stmt *ast.DeleteTagsStmt, qctx *QueryContext) *deleteTagsValidator {
	v := &deleteTagsValidator{stmt: stmt}
	v.base = newBase(qctx, StDeleteTags, false)
	return v
}

func (v *deleteTagsValidator) validate() error {
	s := v.stmt
	for _, name := range s.Tags {
		if _, err := v.requireTag(name); err != nil {
			return err
		}
	}
	if len(s.VIDs) == 0 {
		return semanticErrorf("DELETE TAG must specify at least one vertex")
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
	return nil
}

// updateVertexValidator validates UPDATE/UPSERT VERTEX.
type updateVertexValidator struct {
	base
	stmt *ast.UpdateVertexStmt
}

func newUpdateVertexValidator(stmt *ast.UpdateVertexStmt, qctx *QueryContext) *updateVertexValidator {
	v := &updateVertexValidator{stmt: stmt}
	v.base = newBase(qctx, StUpdateVertex, false)
	return v
}

func (v *updateVertexValidator) validate() error {
	s := v.stmt
	vid, err := v.deref(s.VID)
	if err != nil {
		return err
	}
	if err := validateVID(vid, v.space()); err != nil {
		return err
	}
	tag, err := v.requireTag(s.Tag)
	if err != nil {
		return err
	}
	if err := v.validateItems(s.Items, tag.Props, "tag", s.Tag); err != nil {
		return err
	}
	if _, err := v.checkExpr(s.When); err != nil {
		return err
	}
	if len(s.Yield) == 0 {
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

// updateEdgeValidator validates UPDATE/UPSERT EDGE.
type updateEdgeValidator struct {
	base
	stmt *ast.UpdateEdgeStmt
}

func newUpdateEdgeValidator(stmt *ast.UpdateEdgeStmt, qctx *QueryContext) *updateEdgeValidator {
	v := &updateEdgeValidator{stmt: stmt}
	v.base = newBase(qctx, StUpdateEdge, false)
	return v
}

func (v *updateEdgeValidator) validate() error {
	s := v.stmt
	edge, err := v.requireEdge(s.Edge)
	if err != nil {
		return err
	}
	if err := v.validateEdgeKey(s.Key); err != nil {
		return err
	}
	if err := v.validateItems(s.Items, edge.Props, "edge", s.Edge); err != nil {
		return err
	}
	if _, err := v.checkExpr(s.When); err != nil {
		return err
	}
	if len(s.Yield) == 0 {
		return nil
	}
	return v.yieldOutputs(s.Yield)
}

// validateItems checks every SET assignment against the declared schema.
func (b *base) validateItems(items []ast.UpdateItem, props []schema.Property, kind, name string) error {
	if len(items) == 0 {
		return semanticErrorf("UPDATE requires at least one assignment")
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Field] {
			return newError(ErrDuplicateKey, "duplicate assignment to %q", item.Field)
		}
		seen[item.Field] = true
		var prop *schema.Property
		for i := range props {
			if props[i].Name == item.Field {
				prop = &props[i]
				break
			}
		}
		if prop == nil {
			return semanticErrorf("property %q not found in %s %q", item.Field, kind, name)
		}
		e, err := b.checkExpr(item.Value)
		if err != nil {
			return err
		}
		// Non-constant right sides (e.g. field + 1) are resolved at
		// execution time.
		if !ast.IsConstant(e) {
			continue
		}
		val, err := EvalConst(e)
		if err != nil {
			return err
		}
		if !TypeCompatible(prop.Type, val.Type) {
			return typeErrorf("property %q of %s %q expects %s, got %s",
				item.Field, kind, name, prop.Type, val.Type)
		}
	}
	return nil
}
