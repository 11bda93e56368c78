// Package schema holds the graph metadata model (spaces, tags, edge types,
// indexes) and the Manager interface through which the semantic analyzer
// reads it.  Three implementations are provided: an in-memory store, a
// Badger-backed persistent store, and a read-through ARC cache that wraps
// any other Manager.
package schema

import (
	"errors"

	"github.com/google/uuid"
	"github.com/voltadb/volta"
)

var (
	// ErrNotFound is returned when the named space, tag, edge type, or
	// index does not exist.
	ErrNotFound = errors.New("schema: not found")
	// ErrExists is returned by Create calls when the name is taken.
	ErrExists = errors.New("schema: already exists")
)

// A Space is an isolated graph instance with its own schema namespace and
// vertex-id type.
type Space struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Partitions int             `json:"partitions"`
	Replicas   int             `json:"replicas"`
	VidType    volta.ValueType `json:"vid_type"`
	VidLen     int             `json:"vid_len"`
}

// A Property is one declared column of a tag or edge schema.  Default is
// nil when the property has no default.
type Property struct {
	Name     string          `json:"name"`
	Type     volta.ValueType `json:"type"`
	Len      int             `json:"len,omitempty"`
	Nullable bool            `json:"nullable"`
	Default  *volta.Value    `json:"default,omitempty"`
}

// A Tag is a vertex label with its property schema.
type Tag struct {
	Name        string     `json:"name"`
	Props       []Property `json:"props"`
	TTLCol      string     `json:"ttl_col,omitempty"`
	TTLDuration int64      `json:"ttl_duration,omitempty"`
}

// An Edge is an edge type with its property schema.
type Edge struct {
	Name        string     `json:"name"`
	Props       []Property `json:"props"`
	TTLCol      string     `json:"ttl_col,omitempty"`
	TTLDuration int64      `json:"ttl_duration,omitempty"`
}

// An Index covers some fields of one tag or edge type.
type Index struct {
	Name   string   `json:"name"`
	Schema string   `json:"schema"`
	IsEdge bool     `json:"is_edge"`
	Fields []string `json:"fields"`
}

// Property lookup helpers.  Both return nil when the name is absent.

func (t *Tag) Prop(name string) *Property { return findProp(t.Props, name) }

func (e *Edge) Prop(name string) *Property { return findProp(e.Props, name) }

func findProp(props []Property, name string) *Property {
	for i := range props {
		if props[i].Name == name {
			return &props[i]
		}
	}
	return nil
}

// Manager is the metadata collaborator the semantic analyzer validates
// against.  Every call is synchronous and fallible; implementations must be
// safe for concurrent readers.  Lookups return ErrNotFound rather than nil
// results.
type Manager interface {
	GetSpace(name string) (*Space, error)
	ListSpaces() ([]*Space, error)
	CreateSpace(space *Space) error
	DropSpace(name string) error

	GetTag(space, name string) (*Tag, error)
	ListTags(space string) ([]*Tag, error)
	CreateTag(space string, tag *Tag) error
	DropTag(space, name string) error

	GetEdge(space, name string) (*Edge, error)
	ListEdges(space string) ([]*Edge, error)
	CreateEdge(space string, edge *Edge) error
	DropEdge(space, name string) error

	GetIndex(space, name string) (*Index, error)
	ListIndexes(space string, edge bool) ([]*Index, error)
	CreateIndex(space string, index *Index) error
	DropIndex(space, name string) error
}
