package ast

import "github.com/voltadb/volta"

// Stmt is implemented by every parsed statement.  The set of statement
// kinds is closed: it is fixed by the grammar, and the semantic analyzer
// dispatches over it exhaustively.
type Stmt interface {
	stmtNode()
}

// A YieldColumn is one output column of a YIELD or RETURN clause.  Alias is
// empty when the column is unnamed and takes the rendered expression as its
// name.
type YieldColumn struct {
	Expr  ContextualExpr
	Alias string
}

// An EdgeKey identifies one edge instance by endpoints and rank.  Rank is
// the zero handle when unspecified and defaults to 0.
type EdgeKey struct {
	Src  ContextualExpr
	Dst  ContextualExpr
	Rank ContextualExpr
}

// An OrderFactor is one sort key of an ORDER BY stage.
type OrderFactor struct {
	Expr ContextualExpr
	Desc bool
}

// An UpdateItem is one "field = value" assignment of an UPDATE statement.
type UpdateItem struct {
	Field string
	Value ContextualExpr
}

// A PropertySpec declares one property in CREATE/ALTER TAG or EDGE.
type PropertySpec struct {
	Name     string
	Type     volta.ValueType
	Len      int // bounded length for fixed_string
	Nullable bool
	Default  ContextualExpr
}

// EdgeDirection selects which edges a traversal follows.
type EdgeDirection int

const (
	DirOut EdgeDirection = iota
	DirIn
	DirBoth
)

// A NodePattern is one vertex element of a MATCH pattern.
type NodePattern struct {
	Var    string
	Labels []string
	Props  []MapEntry
}

// An EdgePattern is one relationship element of a MATCH pattern.
type EdgePattern struct {
	Var       string
	Types     []string
	Direction EdgeDirection
	MinHops   int
	MaxHops   int // 0 means single hop; -1 means unbounded
}

// A PathPattern alternates nodes and edges; Nodes has exactly one more
// element than Edges.
type PathPattern struct {
	Var   string
	Nodes []NodePattern
	Edges []EdgePattern
}

// SetOpKind discriminates set-operation statements.
type SetOpKind int

const (
	SetOpUnion SetOpKind = iota
	SetOpIntersect
	SetOpMinus
)

func (k SetOpKind) String() string {
	switch k {
	case SetOpIntersect:
		return "INTERSECT"
	case SetOpMinus:
		return "MINUS"
	default:
		return "UNION"
	}
}

// RoleKind enumerates the privilege roles grantable on a space.
type RoleKind int

const (
	RoleGod RoleKind = iota
	RoleAdmin
	RoleDBA
	RoleUser
	RoleGuest
)

// Statement nodes.  Expressions are held as ContextualExpr handles so that
// nodes stay cheap to copy; the zero handle stands for an absent optional
// clause.
type (
	// SequentialStmt is a script of statements separated by ';'.
	SequentialStmt struct {
		Stmts []Stmt
	}
	// PipeStmt feeds the output columns of Left into Right as its input.
	PipeStmt struct {
		Left  Stmt
		Right Stmt
	}
	// UseStmt selects the working space for the session.
	UseStmt struct {
		Space string
	}

	// GoStmt is the nGQL GO traversal.
	GoStmt struct {
		StepsFrom int
		StepsTo   int // equal to StepsFrom for a fixed step count
		From      []ContextualExpr
		FromVar   string // "$-" input or a user variable; empty when From is used
		Over      []string
		OverAll   bool
		Direction EdgeDirection
		Where     ContextualExpr
		Yield     []YieldColumn
	}
	// LookupStmt scans a tag or edge index with a filter.
	LookupStmt struct {
		Source string
		IsEdge bool
		Where  ContextualExpr
		Yield  []YieldColumn
	}
	FetchVerticesStmt struct {
		Tag  string // empty means all tags of the vertex
		VIDs []ContextualExpr
		// FromVar pipes vids in from $- or a user variable.
		FromVar string
		Yield   []YieldColumn
	}
	FetchEdgesStmt struct {
		Edge  string
		Keys  []EdgeKey
		Yield []YieldColumn
	}
	MatchStmt struct {
		Patterns []PathPattern
		Where    ContextualExpr
		Return   []YieldColumn
		Order    []OrderFactor
		Skip     int64
		Limit    int64 // -1 when absent
	}
	YieldStmt struct {
		Columns  []YieldColumn
		Distinct bool
		Where    ContextualExpr
	}
	OrderByStmt struct {
		Factors []OrderFactor
	}
	LimitStmt struct {
		Offset int64
		Count  int64
	}
	GroupByStmt struct {
		Keys  []ContextualExpr
		Yield []YieldColumn
	}
	FindPathStmt struct {
		Shortest bool
		NoLoop   bool
		From     []ContextualExpr
		To       []ContextualExpr
		Over     []string
		OverAll  bool
		Steps    int
	}
	SubgraphStmt struct {
		From     []ContextualExpr
		Steps    int
		InEdges  []string
		OutEdges []string
		BothAll  bool
		Yield    []YieldColumn
	}

	// TagItem names one tag and its property list in INSERT VERTEX.
	TagItem struct {
		Name  string
		Props []string
	}
	// VertexRow is "vid: (values...)".  Values span the property lists of
	// all tags of the statement, in declaration order.
	VertexRow struct {
		VID    ContextualExpr
		Values []ContextualExpr
	}
	InsertVerticesStmt struct {
		Tags        []TagItem
		Rows        []VertexRow
		IfNotExists bool
	}
	EdgeRow struct {
		Key    EdgeKey
		Values []ContextualExpr
	}
	InsertEdgesStmt struct {
		Edge        string
		Props       []string
		Rows        []EdgeRow
		IfNotExists bool
	}
	DeleteVerticesStmt struct {
		VIDs     []ContextualExpr
		WithEdge bool
	}
	DeleteEdgesStmt struct {
		Edge string
		Keys []EdgeKey
	}
	DeleteTagsStmt struct {
		Tags []string // empty means all tags
		VIDs []ContextualExpr
	}
	UpdateVertexStmt struct {
		VID    ContextualExpr
		Tag    string
		Items  []UpdateItem
		When   ContextualExpr
		Yield  []YieldColumn
		Upsert bool
	}
	UpdateEdgeStmt struct {
		Edge   string
		Key    EdgeKey
		Items  []UpdateItem
		When   ContextualExpr
		Yield  []YieldColumn
		Upsert bool
	}

	CreateSpaceStmt struct {
		Name        string
		Partitions  int
		Replicas    int
		VidType     volta.ValueType
		VidLen      int
		IfNotExists bool
	}
	DropSpaceStmt struct {
		Name     string
		IfExists bool
	}
	DescSpaceStmt struct {
		Name string
	}
	CreateTagStmt struct {
		Name        string
		Props       []PropertySpec
		TTLCol      string
		TTLDuration int64
		IfNotExists bool
	}
	AlterTagStmt struct {
		Name    string
		Adds    []PropertySpec
		Changes []PropertySpec
		Drops   []string
	}
	DropTagStmt struct {
		Name     string
		IfExists bool
	}
	DescTagStmt struct {
		Name string
	}
	CreateEdgeStmt struct {
		Name        string
		Props       []PropertySpec
		TTLCol      string
		TTLDuration int64
		IfNotExists bool
	}
	AlterEdgeStmt struct {
		Name    string
		Adds    []PropertySpec
		Changes []PropertySpec
		Drops   []string
	}
	DropEdgeStmt struct {
		Name     string
		IfExists bool
	}
	DescEdgeStmt struct {
		Name string
	}
	CreateIndexStmt struct {
		Name        string
		Schema      string // tag or edge type name
		IsEdge      bool
		Fields      []string
		IfNotExists bool
	}
	DropIndexStmt struct {
		Name     string
		IsEdge   bool
		IfExists bool
	}
	DescIndexStmt struct {
		Name   string
		IsEdge bool
	}
	RebuildIndexStmt struct {
		Name   string
		IsEdge bool
	}

	ShowSpacesStmt      struct{}
	ShowTagsStmt        struct{}
	ShowEdgesStmt       struct{}
	ShowTagIndexesStmt  struct{}
	ShowEdgeIndexesStmt struct{}
	ShowCreateSpaceStmt struct{ Name string }
	ShowCreateTagStmt   struct{ Name string }
	ShowCreateEdgeStmt  struct{ Name string }
	ShowHostsStmt       struct{}
	ShowUsersStmt       struct{}
	ShowRolesStmt       struct{ Space string }
	ShowSnapshotsStmt   struct{}
	ShowConfigsStmt     struct{ Module string }

	CreateUserStmt struct {
		User        string
		Password    string
		IfNotExists bool
	}
	DropUserStmt struct {
		User     string
		IfExists bool
	}
	AlterUserStmt struct {
		User     string
		Password string
	}
	ChangePasswordStmt struct {
		User        string
		OldPassword string
		NewPassword string
	}
	GrantRoleStmt struct {
		User  string
		Space string
		Role  RoleKind
	}
	RevokeRoleStmt struct {
		User  string
		Space string
		Role  RoleKind
	}
	CreateSnapshotStmt struct{}
	DropSnapshotStmt   struct{ Name string }
	BalanceStmt        struct{ Stop bool }
	SetConfigStmt      struct {
		Module string
		Name   string
		Value  ContextualExpr
	}
	GetConfigStmt struct {
		Module string
		Name   string
	}

	// ExplainStmt wraps a statement to report its plan; Profile also runs
	// it.  Both are schema-transparent.
	ExplainStmt struct {
		Profile bool
		Format  string
		Stmt    Stmt
	}
	// AssignmentStmt binds the wrapped statement's output to a variable:
	// $var = <stmt>.
	AssignmentStmt struct {
		Var  string
		Stmt Stmt
	}
	// SetOpStmt combines two row-producing statements.
	SetOpStmt struct {
		Op       SetOpKind
		Distinct bool
		Left     Stmt
		Right    Stmt
	}
)

func (*SequentialStmt) stmtNode()     {}
func (*PipeStmt) stmtNode()           {}
func (*UseStmt) stmtNode()            {}
func (*GoStmt) stmtNode()             {}
func (*LookupStmt) stmtNode()         {}
func (*FetchVerticesStmt) stmtNode()  {}
func (*FetchEdgesStmt) stmtNode()     {}
func (*MatchStmt) stmtNode()          {}
func (*YieldStmt) stmtNode()          {}
func (*OrderByStmt) stmtNode()        {}
func (*LimitStmt) stmtNode()          {}
func (*GroupByStmt) stmtNode()        {}
func (*FindPathStmt) stmtNode()       {}
func (*SubgraphStmt) stmtNode()       {}
func (*InsertVerticesStmt) stmtNode() {}
func (*InsertEdgesStmt) stmtNode()    {}
func (*DeleteVerticesStmt) stmtNode() {}
func (*DeleteEdgesStmt) stmtNode()    {}
func (*DeleteTagsStmt) stmtNode()     {}
func (*UpdateVertexStmt) stmtNode()   {}
func (*UpdateEdgeStmt) stmtNode()     {}
func (*CreateSpaceStmt) stmtNode()    {}
func (*DropSpaceStmt) stmtNode()      {}
func (*DescSpaceStmt) stmtNode()      {}
func (*CreateTagStmt) stmtNode()      {}
func (*AlterTagStmt) stmtNode()       {}
func (*DropTagStmt) stmtNode()        {}
func (*DescTagStmt) stmtNode()        {}
func (*CreateEdgeStmt) stmtNode()     {}
func (*AlterEdgeStmt) stmtNode()      {}
func (*DropEdgeStmt) stmtNode()       {}
func (*DescEdgeStmt) stmtNode()       {}
func (*CreateIndexStmt) stmtNode()    {}
func (*DropIndexStmt) stmtNode()      {}
func (*DescIndexStmt) stmtNode()      {}
func (*RebuildIndexStmt) stmtNode()   {}
func (*ShowSpacesStmt) stmtNode()     {}
func (*ShowTagsStmt) stmtNode()       {}
func (*ShowEdgesStmt) stmtNode()      {}
func (*ShowTagIndexesStmt) stmtNode() {}
func (*ShowEdgeIndexesStmt) stmtNode() {}
func (*ShowCreateSpaceStmt) stmtNode() {}
func (*ShowCreateTagStmt) stmtNode()   {}
func (*ShowCreateEdgeStmt) stmtNode()  {}
func (*ShowHostsStmt) stmtNode()       {}
func (*ShowUsersStmt) stmtNode()       {}
func (*ShowRolesStmt) stmtNode()       {}
func (*ShowSnapshotsStmt) stmtNode()   {}
func (*ShowConfigsStmt) stmtNode()     {}
func (*CreateUserStmt) stmtNode()      {}
func (*DropUserStmt) stmtNode()        {}
func (*AlterUserStmt) stmtNode()       {}
func (*ChangePasswordStmt) stmtNode()  {}
func (*GrantRoleStmt) stmtNode()       {}
func (*RevokeRoleStmt) stmtNode()      {}
func (*CreateSnapshotStmt) stmtNode()  {}
func (*DropSnapshotStmt) stmtNode()    {}
func (*BalanceStmt) stmtNode()         {}
func (*SetConfigStmt) stmtNode()       {}
func (*GetConfigStmt) stmtNode()       {}
func (*ExplainStmt) stmtNode()         {}
func (*AssignmentStmt) stmtNode()      {}
func (*SetOpStmt) stmtNode()           {}
