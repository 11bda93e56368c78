package semantic

import (
	"errors"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
)

// The schema statements collect every problem they find instead of
// stopping at the first one, so a single round trip reports the whole
// DDL's worth of mistakes.

// createSpaceValidator validates CREATE SPACE.
type createSpaceValidator struct {
	base
	stmt *ast.CreateSpaceStmt
}

func newCreateSpaceValidator(stmt *ast.CreateSpaceStmt, qctx *QueryContext) *createSpaceValidator {
	v := &createSpaceValidator{stmt: stmt}
	v.base = newBase(qctx, StCreateSpace, true)
	return v
}

func (v *createSpaceValidator) validate() error {
	s := v.stmt
	if s.Name == "" {
		v.addError(semanticErrorf("space name must not be empty"))
	}
	if s.Partitions <= 0 {
		v.addError(semanticErrorf("partition_num must be positive, got %d", s.Partitions))
	}
	if s.Replicas <= 0 {
		v.addError(semanticErrorf("replica_factor must be positive, got %d", s.Replicas))
	}
	switch s.VidType {
	case volta.TypeFixedString:
		if s.VidLen <= 0 {
			v.addError(semanticErrorf("fixed_string vid requires a positive length, got %d", s.VidLen))
		}
	case volta.TypeInt64, volta.TypeInt:
	default:
		v.addError(typeErrorf("vid_type must be INT64 or FIXED_STRING, got %s", s.VidType))
	}
	if s.Name != "" && !s.IfNotExists {
		if _, err := v.qctx.Schema().GetSpace(s.Name); err == nil {
			v.addError(newError(ErrConstraint, "space %q already exists", s.Name))
		} else if !errors.Is(err, schema.ErrNotFound) {
			v.addError(asError(err))
		}
	}
	return nil
}

// dropSpaceValidator validates DROP SPACE.
type dropSpaceValidator struct {
	base
	stmt *ast.DropSpaceStmt
}

func newDropSpaceValidator(stmt *ast.DropSpaceStmt, qctx *QueryContext) *dropSpaceValidator {
	v := &dropSpaceValidator{stmt: stmt}
	v.base = newBase(qctx, StDropSpace, true)
	return v
}

func (v *dropSpaceValidator) validate() error {
	s := v.stmt
	if s.Name == "" {
		v.addError(semanticErrorf("space name must not be empty"))
		return nil
	}
	if !s.IfExists {
		if _, err := v.qctx.Schema().GetSpace(s.Name); errors.Is(err, schema.ErrNotFound) {
			v.addError(semanticErrorf("space %q does not exist", s.Name))
		}
	}
	return nil
}

// schemaDefValidator is the shared body of CREATE TAG and CREATE EDGE.
type schemaDefValidator struct {
	base
	name        string
	kind        string // "tag" or "edge"
	props       []ast.PropertySpec
	ttlCol      string
	ttlDuration int64
	ifNotExists bool
}

func (v *schemaDefValidator) validate() error {
	if v.name == "" {
		v.addError(semanticErrorf("%s name must not be empty", v.kind))
		return nil
	}
	seen := make(map[string]bool, len(v.props))
	for _, prop := range v.props {
		if seen[prop.Name] {
			v.addError(newError(ErrDuplicateKey, "duplicate property %q", prop.Name))
			continue
		}
		seen[prop.Name] = true
		v.checkPropertySpec(prop)
	}
	v.checkTTL(seen)
	if !v.ifNotExists && v.exists(v.name) {
		v.addError(newError(ErrConstraint, "%s %q already exists", v.kind, v.name))
	}
	return nil
}

func (v *schemaDefValidator) exists(name string) bool {
	var err error
	if v.kind == "edge" {
		_, err = v.qctx.Schema().GetEdge(v.space().Name, name)
	} else {
		_, err = v.qctx.Schema().GetTag(v.space().Name, name)
	}
	return err == nil
}

func (b *base) checkPropertySpec(prop ast.PropertySpec) {
	if prop.Type == volta.TypeUnknown {
		b.addError(typeErrorf("property %q has no type", prop.Name))
	}
	if prop.Type == volta.TypeFixedString && prop.Len <= 0 {
		b.addError(typeErrorf("fixed_string property %q requires a positive length", prop.Name))
	}
	if !prop.Default.Valid() {
		return
	}
	e, err := b.checkExpr(prop.Default)
	if err != nil {
		b.addError(err)
		return
	}
	if !ast.IsConstant(e) {
		b.addError(semanticErrorf("default value of property %q must be a constant", prop.Name))
		return
	}
	val, err := EvalConst(e)
	if err != nil {
		b.addError(err)
		return
	}
	if !TypeCompatible(prop.Type, val.Type) {
		b.addError(typeErrorf("default value of property %q expects %s, got %s",
			prop.Name, prop.Type, val.Type))
	}
}

func (v *schemaDefValidator) checkTTL(declared map[string]bool) {
	if v.ttlCol == "" {
		if v.ttlDuration != 0 {
			v.addError(semanticErrorf("ttl_duration requires ttl_col"))
		}
		return
	}
	if !declared[v.ttlCol] {
		v.addError(semanticErrorf("ttl_col %q is not a declared property", v.ttlCol))
		return
	}
	for _, prop := range v.props {
		if prop.Name != v.ttlCol {
			continue
		}
		if !prop.Type.IsIntFamily() && prop.Type != volta.TypeTimestamp {
			v.addError(typeErrorf("ttl_col %q must be an integer or timestamp, got %s",
				v.ttlCol, prop.Type))
		}
	}
	if v.ttlDuration < 0 {
		v.addError(semanticErrorf("ttl_duration must not be negative, got %d", v.ttlDuration))
	}
}

func newCreateTagValidator(stmt *ast.CreateTagStmt, qctx *QueryContext) *schemaDefValidator {
	v := &schemaDefValidator{
		name:        stmt.Name,
		kind:        "tag",
		props:       stmt.Props,
		ttlCol:      stmt.TTLCol,
		ttlDuration: stmt.TTLDuration,
		ifNotExists: stmt.IfNotExists,
	}
	v.base = newBase(qctx, StCreateTag, false)
	return v
}

func newCreateEdgeValidator(stmt *ast.CreateEdgeStmt, qctx *QueryContext) *schemaDefValidator {
	v := &schemaDefValidator{
		name:        stmt.Name,
		kind:        "edge",
		props:       stmt.Props,
		ttlCol:      stmt.TTLCol,
		ttlDuration: stmt.TTLDuration,
		ifNotExists: stmt.IfNotExists,
	}
	v.base = newBase(qctx, StCreateEdge, false)
	return v
}

// schemaAlterValidator is the shared body of ALTER TAG and ALTER EDGE.
type schemaAlterValidator struct {
	base
	name    string
	kind    string
	adds    []ast.PropertySpec
	changes []ast.PropertySpec
	drops   []string
}

func (v *schemaAlterValidator) validate() error {
	var props []schema.Property
	if v.kind == "edge" {
		edge, err := v.requireEdge(v.name)
		if err != nil {
			return err
		}
		props = edge.Props
	} else {
		tag, err := v.requireTag(v.name)
		if err != nil {
			return err
		}
		props = tag.Props
	}
	declared := make(map[string]bool, len(props))
	for _, prop := range props {
		declared[prop.Name] = true
	}
	for _, prop := range v.adds {
		if declared[prop.Name] {
			v.addError(newError(ErrDuplicateKey, "property %q already exists in %s %q",
				prop.Name, v.kind, v.name))
			continue
		}
		declared[prop.Name] = true
		v.checkPropertySpec(prop)
	}
	for _, prop := range v.changes {
		if !declared[prop.Name] {
			v.addError(semanticErrorf("property %q not found in %s %q", prop.Name, v.kind, v.name))
			continue
		}
		v.checkPropertySpec(prop)
	}
	for _, name := range v.drops {
		if !declared[name] {
			v.addError(semanticErrorf("property %q not found in %s %q", name, v.kind, v.name))
		}
	}
	return nil
}

func newAlterTagValidator(stmt *ast.AlterTagStmt, qctx *QueryContext) *schemaAlterValidator {
	v := &schemaAlterValidator{
		name:    stmt.Name,
		kind:    "tag",
		adds:    stmt.Adds,
		changes: stmt.Changes,
		drops:   stmt.Drops,
	}
	v.base = newBase(qctx, StAlterTag, false)
	return v
}

func newAlterEdgeValidator(stmt *ast.AlterEdgeStmt, qctx *QueryContext) *schemaAlterValidator {
	v := &schemaAlterValidator{
		name:    stmt.Name,
		kind:    "edge",
		adds:    stmt.Adds,
		changes: stmt.Changes,
		drops:   stmt.Drops,
	}
	v.base = newBase(qctx, StAlterEdge, false)
	return v
}

// schemaDropValidator is the shared body of DROP TAG and DROP EDGE.
type schemaDropValidator struct {
	base
	name     string
	kind     string
	ifExists bool
}

func (v *schemaDropValidator) validate() error {
	if v.name == "" {
		v.addError(semanticErrorf("%s name must not be empty", v.kind))
		return nil
	}
	if v.ifExists {
		return nil
	}
	if v.kind == "edge" {
		if _, err := v.requireEdge(v.name); err != nil {
			v.addError(err)
		}
	} else {
		if _, err := v.requireTag(v.name); err != nil {
			v.addError(err)
		}
	}
	return nil
}

func newDropTagValidator(stmt *ast.DropTagStmt, qctx *QueryContext) *schemaDropValidator {
	v := &schemaDropValidator{name: stmt.Name, kind: "tag", ifExists: stmt.IfExists}
	v.base = newBase(qctx, StDropTag, false)
	return v
}

func newDropEdgeValidator(stmt *ast.DropEdgeStmt, qctx *QueryContext) *schemaDropValidator {
	v := &schemaDropValidator{name: stmt.Name, kind: "edge", ifExists: stmt.IfExists}
	v.base = newBase(qctx, StDropEdge, false)
	return v
}

// createIndexValidator validates CREATE TAG/EDGE INDEX.
type createIndexValidator struct {
	base
	stmt *ast.CreateIndexStmt
}

func newCreateIndexValidator(stmt *ast.CreateIndexStmt, qctx *QueryContext) *createIndexValidator {
	v := &createIndexValidator{stmt: stmt}
	v.base = newBase(qctx, StCreateIndex, false)
	return v
}

func (v *createIndexValidator) validate() error {
	s := v.stmt
	if s.Name == "" {
		v.addError(semanticErrorf("index name must not be empty"))
	}
	var props []schema.Property
	if s.IsEdge {
		edge, err := v.requireEdge(s.Schema)
		if err != nil {
			return err
		}
		props = edge.Props
	} else {
		tag, err := v.requireTag(s.Schema)
		if err != nil {
			return err
		}
		props = tag.Props
	}
	if len(s.Fields) == 0 {
		v.addError(semanticErrorf("index requires at least one field"))
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, field := range s.Fields {
		if seen[field] {
			v.addError(newError(ErrDuplicateKey, "duplicate index field %q", field))
			continue
		}
		seen[field] = true
		found := false
		for i := range props {
			if props[i].Name == field {
				found = true
				break
			}
		}
		if !found {
			v.addError(semanticErrorf("property %q not found in %q", field, s.Schema))
		}
	}
	if s.Name != "" && !s.IfNotExists {
		if _, err := v.qctx.Schema().GetIndex(v.space().Name, s.Name); err == nil {
			v.addError(newError(ErrConstraint, "index %q already exists", s.Name))
		}
	}
	return nil
}

// dropIndexValidator validates DROP TAG/EDGE INDEX.
type dropIndexValidator struct {
	base
	stmt *ast.DropIndexStmt
}

func newDropIndexValidator(stmt *ast.DropIndexStmt, qctx *QueryContext) *dropIndexValidator {
	v := &dropIndexValidator{stmt: stmt}
	v.base = newBase(qctx, StDropIndex, false)
	return v
}

func (v *dropIndexValidator) validate() error {
	s := v.stmt
	if s.Name == "" {
		v.addError(semanticErrorf("index name must not be empty"))
		return nil
	}
	if s.IfExists {
		return nil
	}
	if _, err := v.qctx.Schema().GetIndex(v.space().Name, s.Name); errors.Is(err, schema.ErrNotFound) {
		v.addError(semanticErrorf("index %q does not exist", s.Name))
	}
	return nil
}

// rebuildIndexValidator validates REBUILD TAG/EDGE INDEX.
type rebuildIndexValidator struct {
	base
	stmt *ast.RebuildIndexStmt
}

func newRebuildIndexValidator(stmt *ast.RebuildIndexStmt, qctx *QueryContext) *rebuildIndexValidator {
	v := &rebuildIndexValidator{stmt: stmt}
	v.base = newBase(qctx, StRebuildIndex, false)
	return v
}

func (v *rebuildIndexValidator) validate() error {
	s := v.stmt
	if s.Name == "" {
		v.addError(semanticErrorf("index name must not be empty"))
		return nil
	}
	index, err := v.qctx.Schema().GetIndex(v.space().Name, s.Name)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			v.addError(semanticErrorf("index %q does not exist", s.Name))
			return nil
		}
		return asError(err)
	}
	if index.IsEdge != s.IsEdge {
		kind := "tag"
		if index.IsEdge {
			kind = "edge"
		}
		v.addError(semanticErrorf("index %q is a %s index", s.Name, kind))
	}
	v.outputs = []ColumnDef{{Name: "New Job Id", Type: volta.TypeInt64}}
	return nil
}

// descValidator serves DESCRIBE SPACE, TAG, EDGE and INDEX.  All
// DESCRIBE statements are global; existence is only checked once a
// space is selected where one is needed.
type descValidator struct {
	base
	name   string
	isEdge bool
}

func newDescValidator(stype StatementType, name string, isEdge bool, qctx *QueryContext) *descValidator {
	v := &descValidator{name: name, isEdge: isEdge}
	v.base = newBase(qctx, stype, true)
	return v
}

func (v *descValidator) validate() error {
	if v.name == "" {
		v.addError(semanticErrorf("name must not be empty"))
		return nil
	}
	switch v.stype {
	case StDescSpace:
		if _, err := v.qctx.Schema().GetSpace(v.name); errors.Is(err, schema.ErrNotFound) {
			v.addError(semanticErrorf("space %q does not exist", v.name))
			return nil
		}
		v.outputs = []ColumnDef{
			{Name: "ID", Type: volta.TypeString},
			{Name: "Name", Type: volta.TypeString},
			{Name: "Partition Number", Type: volta.TypeInt64},
			{Name: "Replica Factor", Type: volta.TypeInt64},
			{Name: "Vid Type", Type: volta.TypeString},
		}
	case StDescTag, StDescEdge:
		if space := v.space(); space != nil {
			if v.stype == StDescEdge {
				if _, err := v.requireEdge(v.name); err != nil {
					v.addError(err)
					return nil
				}
			} else {
				if _, err := v.requireTag(v.name); err != nil {
					v.addError(err)
					return nil
				}
			}
		}
		v.outputs = []ColumnDef{
			{Name: "Field", Type: volta.TypeString},
			{Name: "Type", Type: volta.TypeString},
			{Name: "Null", Type: volta.TypeString},
			{Name: "Default", Type: volta.TypeString},
		}
	case StDescIndex:
		if space := v.space(); space != nil {
			if _, err := v.qctx.Schema().GetIndex(space.Name, v.name); errors.Is(err, schema.ErrNotFound) {
				v.addError(semanticErrorf("index %q does not exist", v.name))
				return nil
			}
		}
		v.outputs = []ColumnDef{
			{Name: "Field", Type: volta.TypeString},
			{Name: "Type", Type: volta.TypeString},
		}
	}
	return nil
}

// showValidator serves the SHOW statements that take no argument.  The
// output header of each is fixed.
type showValidator struct {
	base
}

func newShowValidator(stype StatementType, qctx *QueryContext) *showValidator {
	v := &showValidator{}
	v.base = newBase(qctx, stype, true)
	return v
}

var showHeaders = map[StatementType][]ColumnDef{
	StShowSpaces:      {{Name: "Name", Type: volta.TypeString}},
	StShowTags:        {{Name: "Name", Type: volta.TypeString}},
	StShowEdges:       {{Name: "Name", Type: volta.TypeString}},
	StShowTagIndexes:  {{Name: "Index Name", Type: volta.TypeString}, {Name: "By Tag", Type: volta.TypeString}, {Name: "Columns", Type: volta.TypeList}},
	StShowEdgeIndexes: {{Name: "Index Name", Type: volta.TypeString}, {Name: "By Edge", Type: volta.TypeString}, {Name: "Columns", Type: volta.TypeList}},
	StShowHosts:       {{Name: "Host", Type: volta.TypeString}, {Name: "Port", Type: volta.TypeInt64}, {Name: "Status", Type: volta.TypeString}},
	StShowUsers:       {{Name: "Account", Type: volta.TypeString}},
	StShowSnapshots:   {{Name: "Name", Type: volta.TypeString}, {Name: "Status", Type: volta.TypeString}, {Name: "Hosts", Type: volta.TypeString}},
	StShowConfigs:     {{Name: "module", Type: volta.TypeString}, {Name: "name", Type: volta.TypeString}, {Name: "value", Type: volta.TypeString}},
}

func (v *showValidator) validate() error {
	v.outputs = showHeaders[v.stype]
	return nil
}

// showCreateValidator serves SHOW CREATE SPACE, TAG and EDGE.
type showCreateValidator struct {
	base
	name string
}

func newShowCreateValidator(stype StatementType, name string, qctx *QueryContext) *showCreateValidator {
	v := &showCreateValidator{name: name}
	v.base = newBase(qctx, stype, true)
	return v
}

func (v *showCreateValidator) validate() error {
	if v.name == "" {
		v.addError(semanticErrorf("name must not be empty"))
		return nil
	}
	var kind string
	switch v.stype {
	case StShowCreateSpace:
		kind = "Space"
		if _, err := v.qctx.Schema().GetSpace(v.name); errors.Is(err, schema.ErrNotFound) {
			v.addError(semanticErrorf("space %q does not exist", v.name))
			return nil
		}
	case StShowCreateTag:
		kind = "Tag"
		if space := v.space(); space != nil {
			if _, err := v.requireTag(v.name); err != nil {
				v.addError(err)
				return nil
			}
		}
	case StShowCreateEdge:
		kind = "Edge"
		if space := v.space(); space != nil {
			if _, err := v.requireEdge(v.name); err != nil {
				v.addError(err)
				return nil
			}
		}
	}
	v.outputs = []ColumnDef{
		{Name: kind, Type: volta.TypeString},
		{Name: "Create " + kind, Type: volta.TypeString},
	}
	return nil
}

// showRolesValidator validates SHOW ROLES IN <space>.
type showRolesValidator struct {
	base
	stmt *ast.ShowRolesStmt
}

func newShowRolesValidator(stmt *ast.ShowRolesStmt, qctx *QueryContext) *showRolesValidator {
	v := &showRolesValidator{stmt: stmt}
	v.base = newBase(qctx, StShowRoles, true)
	return v
}

func (v *showRolesValidator) validate() error {
	if v.stmt.Space == "" {
		v.addError(semanticErrorf("SHOW ROLES requires a space name"))
		return nil
	}
	if _, err := v.qctx.Schema().GetSpace(v.stmt.Space); errors.Is(err, schema.ErrNotFound) {
		v.addError(semanticErrorf("space %q does not exist", v.stmt.Space))
		return nil
	}
	v.outputs = []ColumnDef{
		{Name: "Account", Type: volta.TypeString},
		{Name: "Role Type", Type: volta.TypeString},
	}
	return nil
}
